package billing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Merchant details printed on every bill header.
const (
	MerchantName    = "FOOD BILLING SYSTEM"
	MerchantAddress = "123 Food Street, Cityville"
	MerchantPhone   = "(555) 123-4567"
	SupportEmail    = "support@foodbilling.com"
)

const (
	dateLayout = "January 2, 2006"
	timeLayout = "3:04 PM"
)

// Encoding selects one of the three bill output formats. All encodings of
// the same snapshot carry identical line items and totals.
type Encoding string

const (
	// EncodingPrint is the receipt layout sent to the print subsystem.
	EncodingPrint Encoding = "print"
	// EncodingDownload is a standalone HTML document saved as Filename().
	EncodingDownload Encoding = "download"
	// EncodingClipboard is the plain text summary copied to the clipboard.
	EncodingClipboard Encoding = "clipboard"
)

// Render serializes the snapshot into the requested encoding.
func Render(s *Snapshot, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingPrint:
		return renderHTML(s, printTmpl)
	case EncodingDownload:
		return renderHTML(s, downloadTmpl)
	case EncodingClipboard:
		return renderClipboard(s), nil
	default:
		return nil, fmt.Errorf("unknown bill encoding %q", enc)
	}
}

func renderClipboard(s *Snapshot) []byte {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(MerchantName)
	line("Order ID: %s", s.OrderID)
	line("Date: %s %s", s.IssuedAt.Format(dateLayout), s.IssuedAt.Format(timeLayout))
	line("")
	line("Customer: %s", s.Customer.Name)
	if s.Customer.Phone != "" {
		line("Phone: %s", s.Customer.Phone)
	}
	line("")
	line("ITEMS:")
	for _, li := range s.Lines {
		line("%s x%d - %s%s", li.Name, li.Quantity, Currency, li.Amount.StringFixed(2))
	}
	line("")
	line("Subtotal: %s%s", Currency, s.Subtotal.StringFixed(2))
	line("Tax (8%%): %s%s", Currency, s.Tax.StringFixed(2))
	line("Total: %s%s", Currency, s.GrandTotal.StringFixed(2))
	line("")
	b.WriteString("Thank you for your order!")

	return []byte(b.String())
}

// billView is the template model; all amounts are preformatted so the
// templates never do arithmetic of their own.
type billView struct {
	Merchant      string
	Address       string
	Phone         string
	Support       string
	Currency      string
	OrderID       string
	Date          string
	Time          string
	CustomerName  string
	CustomerPhone string
	Lines         []lineView
	Subtotal      string
	Tax           string
	GrandTotal    string
}

type lineView struct {
	Name      string
	Category  string
	Quantity  int
	UnitPrice string
	Amount    string
}

func newBillView(s *Snapshot) billView {
	name := s.Customer.Name
	if name == "" {
		name = "Guest Customer"
	}
	v := billView{
		Merchant:      MerchantName,
		Address:       MerchantAddress,
		Phone:         MerchantPhone,
		Support:       SupportEmail,
		Currency:      Currency,
		OrderID:       s.OrderID,
		Date:          s.IssuedAt.Format(dateLayout),
		Time:          s.IssuedAt.Format(timeLayout),
		CustomerName:  name,
		CustomerPhone: s.Customer.Phone,
		Subtotal:      s.Subtotal.StringFixed(2),
		Tax:           s.Tax.StringFixed(2),
		GrandTotal:    s.GrandTotal.StringFixed(2),
	}
	for _, li := range s.Lines {
		v.Lines = append(v.Lines, lineView{
			Name:      li.Name,
			Category:  li.CategoryName,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.StringFixed(2),
			Amount:    li.Amount.StringFixed(2),
		})
	}
	return v
}

func renderHTML(s *Snapshot, tmpl *template.Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newBillView(s)); err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}
	return buf.Bytes(), nil
}

const receiptBody = `<div class="bill-container">
  <div class="bill-header">
    <h1>{{.Merchant}}</h1>
    <p>{{.Address}}</p>
    <p>Phone: {{.Phone}}</p>
  </div>
  <div class="bill-meta">
    <div>
      <p><strong>Bill To:</strong></p>
      <p>{{.CustomerName}}</p>
      {{if .CustomerPhone}}<p>Phone: {{.CustomerPhone}}</p>{{end}}
      <p>Address: FF Foods</p>
    </div>
    <div>
      <p><strong>Order #: {{.OrderID}}</strong></p>
      <p>Date: {{.Date}}</p>
      <p>Time: {{.Time}}</p>
    </div>
  </div>
  <h2>Order Summary</h2>
  <table>
    <thead>
      <tr><th>Item</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
    </thead>
    <tbody>
      {{range .Lines}}<tr>
        <td>{{.Name}}<br><small>{{.Category}}</small></td>
        <td>{{.Quantity}}</td>
        <td>{{$.Currency}}{{.UnitPrice}}</td>
        <td>{{$.Currency}}{{.Amount}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="3">Subtotal:</td><td>{{.Currency}}{{.Subtotal}}</td></tr>
      <tr><td colspan="3">Tax (8%):</td><td>{{.Currency}}{{.Tax}}</td></tr>
      <tr class="total-row"><td colspan="3">Total:</td><td>{{.Currency}}{{.GrandTotal}}</td></tr>
    </tfoot>
  </table>
  <div class="bill-footer">
    <p>Thank you for your order!</p>
    <p>For any queries, please contact customer service at {{.Support}}</p>
  </div>
</div>`

const downloadBody = `<!DOCTYPE html>
<html>
  <head>
    <title>Bill-{{.OrderID}}</title>
    <style>
      body { font-family: Arial, sans-serif; padding: 20px; }
      .bill-container { max-width: 800px; margin: 0 auto; }
      table { width: 100%; border-collapse: collapse; margin: 20px 0; }
      th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
      th { border-top: 1px solid #ddd; }
      .total-row td { font-weight: bold; }
    </style>
  </head>
  <body>
` + receiptBody + `
  </body>
</html>`

var (
	printTmpl    = template.Must(template.New("print").Parse(receiptBody))
	downloadTmpl = template.Must(template.New("download").Parse(downloadBody))
)
