package book

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// extractEPUB walks an EPUB container: META-INF/container.xml names the OPF
// package document, whose spine fixes the reading order of the XHTML chapter
// files. Each chapter contributes its <p> paragraphs.
func extractEPUB(name string, data []byte) (*Book, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, kerrors.NewParse("epub", name, err.Error())
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	container, err := readZipMember(files, "META-INF/container.xml")
	if err != nil {
		return nil, kerrors.NewParse("epub", name, "missing META-INF/container.xml")
	}
	cdoc, err := xmlquery.Parse(bytes.NewReader(container))
	if err != nil {
		return nil, kerrors.NewParse("epub", name, err.Error())
	}
	root := xmlquery.FindOne(cdoc, "//rootfile")
	if root == nil {
		return nil, kerrors.NewParse("epub", name, "container.xml has no rootfile")
	}
	opfPath := root.SelectAttr("full-path")
	opfData, err := readZipMember(files, opfPath)
	if err != nil {
		return nil, kerrors.NewParse("epub", name, "missing package document "+opfPath)
	}
	opf, err := xmlquery.Parse(bytes.NewReader(opfData))
	if err != nil {
		return nil, kerrors.NewParse("epub", name, err.Error())
	}
	opfDir := path.Dir(opfPath)

	// Manifest id -> chapter path, restricted to XHTML content.
	hrefs := make(map[string]string)
	for _, item := range xmlquery.Find(opf, "//item") {
		media := item.SelectAttr("media-type")
		if media != "application/xhtml+xml" && media != "text/html" {
			continue
		}
		id := item.SelectAttr("id")
		href := item.SelectAttr("href")
		if id != "" && href != "" {
			hrefs[id] = resolveHref(opfDir, href)
		}
	}

	var paras []string
	for _, ref := range xmlquery.Find(opf, "//itemref") {
		p, ok := hrefs[ref.SelectAttr("idref")]
		if !ok {
			continue
		}
		chapter, err := readZipMember(files, p)
		if err != nil {
			continue
		}
		paras = append(paras, chapterParagraphs(chapter)...)
	}
	if len(paras) == 0 {
		return nil, kerrors.NewParse("epub", name, "spine yielded no text")
	}

	title := TitleFromName(name)
	if n := xmlquery.FindOne(opf, "//title"); n != nil {
		if t := strings.TrimSpace(n.InnerText()); t != "" {
			title = t
		}
	}

	return &Book{Title: title, Text: strings.Join(paras, "\n\n"), Format: "epub"}, nil
}

// chapterParagraphs pulls <p> text out of one XHTML chapter. Files that do not
// parse as XML (stray entities, legacy HTML) fall back to tag stripping so a
// single bad chapter does not sink the whole book.
func chapterParagraphs(data []byte) []string {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err == nil {
		var paras []string
		for _, n := range xmlquery.Find(doc, "//p") {
			if t := strings.TrimSpace(n.InnerText()); t != "" {
				paras = append(paras, t)
			}
		}
		return paras
	}
	if t := strings.TrimSpace(stripTags(string(data))); t != "" {
		return []string{t}
	}
	return nil
}

// stripTags removes anything between angle brackets. Crude, but only reached
// for chapters the XML parser rejected.
func stripTags(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
				sb.WriteByte(' ')
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func resolveHref(dir, href string) string {
	if dir == "." || dir == "" {
		return href
	}
	return path.Join(dir, href)
}

func readZipMember(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
