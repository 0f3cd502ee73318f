package book

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// extractFB2 decodes a FictionBook 2 document. Body paragraphs come from
// <p> elements; poems contribute their <v> verse lines. The title is taken
// from <book-title>, falling back to the file name.
func extractFB2(name string, data []byte) (*Book, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, kerrors.NewParse("fb2", name, err.Error())
	}

	var paras []string
	for _, n := range xmlquery.Find(doc, "//body//p") {
		if t := strings.TrimSpace(n.InnerText()); t != "" {
			paras = append(paras, t)
		}
	}
	for _, n := range xmlquery.Find(doc, "//body//v") {
		if t := strings.TrimSpace(n.InnerText()); t != "" {
			paras = append(paras, t)
		}
	}

	title := TitleFromName(name)
	if n := xmlquery.FindOne(doc, "//book-title"); n != nil {
		if t := strings.TrimSpace(n.InnerText()); t != "" {
			title = t
		}
	}

	return &Book{Title: title, Text: strings.Join(paras, "\n\n"), Format: "fb2"}, nil
}

// extractZippedFB2 unwraps the first .fb2 member of a zip archive.
func extractZippedFB2(name string, data []byte) (*Book, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, kerrors.NewParse("zip", name, err.Error())
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".fb2") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, kerrors.NewParse("zip", name, err.Error())
		}
		inner, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, kerrors.NewParse("zip", name, err.Error())
		}
		return extractFB2(f.Name, inner)
	}
	return nil, kerrors.NewParse("zip", name, "no .fb2 member in archive")
}
