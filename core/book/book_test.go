package book

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

const sampleFB2 = `<?xml version="1.0" encoding="utf-8"?>
<FictionBook xmlns="http://www.gribuser.ru/xml/fictionbook/2.0">
  <description>
    <title-info>
      <book-title>Steppe Nights</book-title>
      <annotation><p>Annotation text must not leak into the body.</p></annotation>
    </title-info>
  </description>
  <body>
    <section>
      <p>First paragraph of the story.</p>
      <p>Second paragraph follows.</p>
      <poem><stanza><v>A verse line</v><v>another verse line</v></stanza></poem>
    </section>
  </body>
</FictionBook>`

func TestExtractFB2(t *testing.T) {
	b, err := Extract("steppe.fb2", []byte(sampleFB2))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Title != "Steppe Nights" {
		t.Errorf("Title = %q, want %q", b.Title, "Steppe Nights")
	}
	if b.Format != "fb2" {
		t.Errorf("Format = %q, want fb2", b.Format)
	}
	want := []string{
		"First paragraph of the story.",
		"Second paragraph follows.",
		"A verse line",
		"another verse line",
	}
	got := strings.Split(b.Text, "\n\n")
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
	if strings.Contains(b.Text, "Annotation") {
		t.Error("annotation text leaked into body")
	}
}

func TestExtractFB2TitleFallback(t *testing.T) {
	src := `<FictionBook><body><p>Only text.</p></body></FictionBook>`
	b, err := Extract("my:book?.fb2", []byte(src))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Title != "mybook" {
		t.Errorf("Title = %q, want sanitized file name", b.Title)
	}
}

func TestExtractZippedFB2(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range []struct{ name, body string }{
		{"cover.jpg", "not xml"},
		{"steppe.fb2", sampleFB2},
	} {
		w, err := zw.Create(m.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(m.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Extract("steppe.fb2.zip", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Title != "Steppe Nights" {
		t.Errorf("Title = %q, want %q", b.Title, "Steppe Nights")
	}
	if !strings.Contains(b.Text, "First paragraph") {
		t.Errorf("body missing: %q", b.Text)
	}
}

func TestExtractZipWithoutFB2(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("readme.txt")
	w.Write([]byte("nothing here"))
	zw.Close()

	_, err := Extract("empty.zip", buf.Bytes())
	if !errors.Is(err, kerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestExtractEPUB(t *testing.T) {
	members := map[string]string{
		"mimetype": "application/epub+zip",
		"META-INF/container.xml": `<?xml version="1.0"?>
<container xmlns="urn:oasis:names:tc:opendocument:xmlns:container" version="1.0">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`,
		"OEBPS/content.opf": `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Night Train</dc:title>
  </metadata>
  <manifest>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="css" href="style.css" media-type="text/css"/>
  </manifest>
  <spine><itemref idref="ch1"/><itemref idref="ch2"/></spine>
</package>`,
		"OEBPS/ch1.xhtml": `<html xmlns="http://www.w3.org/1999/xhtml"><body><p>Chapter one text.</p></body></html>`,
		"OEBPS/ch2.xhtml": `<html xmlns="http://www.w3.org/1999/xhtml"><body><p>Chapter two text.</p></body></html>`,
		"OEBPS/style.css": `p { margin: 0 }`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Extract("train.epub", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Title != "Night Train" {
		t.Errorf("Title = %q, want %q", b.Title, "Night Train")
	}
	if b.Format != "epub" {
		t.Errorf("Format = %q, want epub", b.Format)
	}
	// Spine order, not manifest order.
	want := "Chapter one text.\n\nChapter two text."
	if b.Text != want {
		t.Errorf("Text = %q, want %q", b.Text, want)
	}
}

func TestExtractTXT(t *testing.T) {
	b, err := Extract("notes.txt", []byte("plain text body"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Text != "plain text body" || b.Title != "notes" || b.Format != "txt" {
		t.Errorf("got %+v", b)
	}
}

func TestExtractXZ(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write([]byte("compressed body")); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Extract("notes.txt.xz", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.Text != "compressed body" {
		t.Errorf("Text = %q", b.Text)
	}
	if b.Title != "notes" {
		t.Errorf("Title = %q, want notes", b.Title)
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract("book.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, kerrors.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(p, []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Text != "from disk" {
		t.Errorf("Text = %q", b.Text)
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestTitleFromName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"war_and_peace.fb2", "war_and_peace"},
		{"book.fb2.zip", "book"},
		{"notes.txt.xz", "notes"},
		{`we<ird|na*me.txt`, "weirdname"},
		{"/some/dir/deep.epub", "deep"},
	}
	for _, tt := range tests {
		if got := TitleFromName(tt.in); got != tt.want {
			t.Errorf("TitleFromName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
