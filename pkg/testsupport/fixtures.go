// Package testsupport holds golden-file helpers shared by tests.
package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reprgen/pkg/render"
	"github.com/goliatone/go-reprgen/pkg/specfile"
)

// LoadDocument reads a declaration fixture. Testing helpers fail the test on
// error to keep callers concise.
func LoadDocument(t *testing.T, path string) *specfile.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (*specfile.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	doc, err := specfile.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load document: %w", err)
	}
	return doc, nil
}

// RenderDocument renders every instance of doc, one "name: repr" line each,
// in declaration order.
func RenderDocument(t *testing.T, doc *specfile.Document) string {
	t.Helper()

	r := render.New(render.WithStyles(doc.Styles()))
	var b strings.Builder
	for _, inst := range doc.Instances() {
		text, err := r.RenderInstance(inst.Record)
		if err != nil {
			t.Fatalf("render %s: %v", inst.Name, err)
		}
		fmt.Fprintf(&b, "%s: %s\n", inst.Name, text)
	}
	return b.String()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
