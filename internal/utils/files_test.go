package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/edustats-cli/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "informe.md")
	if err := utils.SafeWriteFile(path, []byte("uno")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte("dos")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "dos" {
		t.Fatalf("content = %q, want %q", b, "dos")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "file.csv")
	if err := utils.SafeWriteFile(path, []byte("x")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.png")
	if err := utils.EnsureParentDir(path); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte("x")); err != nil {
		t.Fatalf("write after ensure: %v", err)
	}
	if err := utils.EnsureParentDir("plain.png"); err != nil {
		t.Fatalf("bare filename: %v", err)
	}
}
