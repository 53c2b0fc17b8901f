package checkout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ffoods/quickbill/billing"
)

func TestFileExporterArchivesBill(t *testing.T) {
	dir := t.TempDir()
	e := &FileExporter{Dir: filepath.Join(dir, "bills")}
	snap := &billing.Snapshot{OrderID: "ORD-123456"}

	if err := e.Export(context.Background(), snap, billing.EncodingDownload, []byte("<html>")); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bills", "Bill-ORD-123456.html"))
	if err != nil {
		t.Fatalf("archived bill missing: %v", err)
	}
	if string(data) != "<html>" {
		t.Errorf("archived content = %q", data)
	}
}

func TestFileExporterSkipsClipboard(t *testing.T) {
	dir := t.TempDir()
	e := &FileExporter{Dir: dir}
	snap := &billing.Snapshot{OrderID: "ORD-654321"}

	if err := e.Export(context.Background(), snap, billing.EncodingClipboard, []byte("text")); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Bill-ORD-654321.html")); !os.IsNotExist(err) {
		t.Error("clipboard copies must not be archived")
	}
}

func TestFileExporterHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &FileExporter{Dir: t.TempDir()}
	snap := &billing.Snapshot{OrderID: "ORD-999999"}
	if err := e.Export(ctx, snap, billing.EncodingPrint, []byte("doc")); err == nil {
		t.Error("export with a dead context must fail")
	}
}
