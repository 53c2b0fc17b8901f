package checkout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/billing"
)

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, snap *billing.Snapshot, enc billing.Encoding, doc []byte) error

func (f ExporterFunc) Export(ctx context.Context, snap *billing.Snapshot, enc billing.Encoding, doc []byte) error {
	return f(ctx, snap, enc, doc)
}

// FileExporter archives terminal bills (print and download encodings) as
// Bill-<orderID>.html under Dir. Clipboard copies are not archived.
type FileExporter struct {
	Dir string
}

func (e *FileExporter) Export(ctx context.Context, snap *billing.Snapshot, enc billing.Encoding, doc []byte) error {
	if enc == billing.EncodingClipboard {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("create bill archive dir: %w", err)
	}
	path := filepath.Join(e.Dir, snap.Filename())
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write bill archive: %w", err)
	}
	logrus.WithField("path", path).Info("bill archived")
	return nil
}
