package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSpool_SaveCreatesUniqueFiles(t *testing.T) {
	dir := t.TempDir()
	spool, err := NewSpool(dir)
	if err != nil {
		t.Fatalf("new spool: %v", err)
	}

	first, err := spool.Save(strings.NewReader("one"), "scan.jpg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := spool.Save(strings.NewReader("two"), "scan.jpg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if first == second {
		t.Error("concurrent uploads of the same name must not collide")
	}
	if filepath.Ext(first) != ".jpg" {
		t.Errorf("extension must be preserved, got %q", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read spooled file: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestSpool_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewSpool(dir); err != nil {
		t.Fatalf("new spool: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("spool directory must exist: %v", err)
	}
}
