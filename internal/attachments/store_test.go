package attachments

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

func TestSaveWritesFileAndReturnsLocator(t *testing.T) {
	store := NewStore(t.TempDir(), 0)

	locator, err := store.Save("report.pdf", []byte("pdf-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(locator)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(data, []byte("pdf-bytes")) {
		t.Error("stored content differs")
	}
	if !strings.HasSuffix(locator, "report.pdf") {
		t.Errorf("locator should keep the original name suffix: %s", locator)
	}
}

func TestSaveRejectsEmptyFile(t *testing.T) {
	store := NewStore(t.TempDir(), 0)

	_, err := store.Save("empty.txt", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Errorf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestSaveEnforcesSizeLimit(t *testing.T) {
	store := NewStore(t.TempDir(), 16)

	if _, err := store.Save("small.bin", make([]byte, 16)); err != nil {
		t.Fatalf("at-limit save should succeed: %v", err)
	}
	_, err := store.Save("big.bin", make([]byte, 17))
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Errorf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestSaveSanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 0)

	locator, err := store.Save("../../etc/pass wd;$(rm).txt", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(locator) != mustAbs(t, dir) {
		t.Errorf("file escaped the store dir: %s", locator)
	}
	name := filepath.Base(locator)
	for _, forbidden := range []string{"..", "/", " ", ";", "$", "("} {
		if strings.Contains(name, forbidden) {
			t.Errorf("name %q contains %q", name, forbidden)
		}
	}
}

func TestSaveSameNameTwiceDoesNotCollide(t *testing.T) {
	store := NewStore(t.TempDir(), 0)

	first, err := store.Save("dup.txt", []byte("a"))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save("dup.txt", []byte("b"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first == second {
		t.Error("locators must differ for concurrent same-name uploads")
	}
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	return abs
}
