// Package book extracts plain text from e-book files.
//
// Supported inputs are FB2 (bare, zipped, or xz-compressed), EPUB, and plain
// text. Extraction produces paragraphs joined by double newlines; everything
// downstream of this package works on that single decoded string.
package book

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// Book is a decoded book: its display title and raw extracted text.
type Book struct {
	Title  string
	Text   string
	Format string
}

// Load reads and extracts the book at path.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerrors.NewIO("read", path, err)
	}
	return Extract(filepath.Base(path), data)
}

// Extract decodes book data, routing on the file name's extension.
// Unknown extensions return ErrUnsupported (wrapped).
func Extract(name string, data []byte) (*Book, error) {
	lower := strings.ToLower(name)

	if strings.HasSuffix(lower, ".xz") {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, kerrors.NewParse("xz", name, err.Error())
		}
		plain, err := io.ReadAll(r)
		if err != nil {
			return nil, kerrors.NewParse("xz", name, err.Error())
		}
		return Extract(name[:len(name)-len(".xz")], plain)
	}

	switch {
	case strings.HasSuffix(lower, ".fb2"):
		return extractFB2(name, data)
	case strings.HasSuffix(lower, ".zip"):
		return extractZippedFB2(name, data)
	case strings.HasSuffix(lower, ".epub"):
		return extractEPUB(name, data)
	case strings.HasSuffix(lower, ".txt"):
		return &Book{Title: TitleFromName(name), Text: string(data), Format: "txt"}, nil
	default:
		return nil, kerrors.NewUnsupported("format "+filepath.Ext(lower),
			"supported: fb2, fb2.zip, epub, txt")
	}
}

// TitleFromName derives a fallback title from a file name: extensions and
// filesystem-hostile characters are dropped.
func TitleFromName(name string) string {
	base := filepath.Base(name)
	for {
		ext := filepath.Ext(base)
		switch strings.ToLower(ext) {
		case ".fb2", ".epub", ".txt", ".zip", ".xz":
			base = strings.TrimSuffix(base, ext)
			continue
		}
		break
	}
	var sb strings.Builder
	for _, r := range base {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
