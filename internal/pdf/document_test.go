package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no-existe.pdf"))
	if err == nil {
		t.Fatalf("expected error opening a missing file")
	}
	if !strings.Contains(err.Error(), "no se pudo abrir el PDF") {
		t.Errorf("expected wrapped open error, got %q", err.Error())
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(path, []byte("not pdf syntax"), 0o644); err != nil {
		t.Fatalf("failed to create corrupt PDF: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatalf("expected error opening a corrupt file")
	}
}
