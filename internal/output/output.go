// Package output writes split portions as one text file per reading day.
//
// File names encode everything the reader needs at a glance:
//
//	{book}_{date}_{words}-{unit}_{wpm}wpm.txt
//
// where date starts at the configured first reading day and advances one day
// per portion.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/split"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/words"
)

// Writer emits portion files into Dir.
type Writer struct {
	Dir       string
	BookName  string    // sanitized book name used as the file name prefix
	WPM       int       // reading speed recorded in file names
	StartDate time.Time // date of the first portion
	WordsUnit string    // localized "words" unit for file names
}

// Sanitize strips characters that are unsafe in file names on common
// filesystems.
func Sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

// DirFor returns the default output directory for a book: a "{name} {wpm}wpm"
// folder beside the input file.
func DirFor(inputPath, bookName string, wpm int) string {
	folder := fmt.Sprintf("%s %dwpm", Sanitize(bookName), wpm)
	return filepath.Join(filepath.Dir(inputPath), folder)
}

// EnsureDir creates the output directory if needed and reports whether it
// already held files, so callers can warn before overwriting a previous run.
func EnsureDir(dir string) (existed bool, err error) {
	entries, err := os.ReadDir(dir)
	if err == nil {
		return len(entries) > 0, nil
	}
	if !os.IsNotExist(err) {
		return false, kerrors.NewIO("read", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, kerrors.NewIO("create", dir, err)
	}
	return false, nil
}

// FileName renders the name for one portion. index is the 1-based portion
// index; portion 1 gets StartDate. The word count in the name is the count of
// the trimmed text actually written, not the packer's raw count.
func (w *Writer) FileName(index, wordCount int) string {
	date := w.StartDate.AddDate(0, 0, index-1).Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%d-%s_%dwpm.txt",
		Sanitize(w.BookName), date, wordCount, w.WordsUnit, w.WPM)
}

// WritePortion trims and writes one portion, returning the file path.
// Portions whose text trims to nothing are skipped with an empty path.
func (w *Writer) WritePortion(p split.Portion) (string, error) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return "", nil
	}
	name := w.FileName(p.Index, words.Count(text))
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return "", kerrors.NewIO("write", path, err)
	}
	return path, nil
}
