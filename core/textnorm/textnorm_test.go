package textnorm

import (
	"errors"
	"strings"
	"testing"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "collapses spaces and tabs",
			raw:  "one   two\tthree",
			want: "one two three",
		},
		{
			name: "single newline becomes space",
			raw:  "line one\nline two",
			want: "line one line two",
		},
		{
			name: "double newline becomes paragraph marker",
			raw:  "para one\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "many newlines collapse to one marker",
			raw:  "para one\n\n\n\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "blank lines with spaces still separate paragraphs",
			raw:  "para one\n   \npara two",
			want: "para one\n\npara two",
		},
		{
			name: "crlf input",
			raw:  "para one\r\n\r\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "leading and trailing whitespace trimmed",
			raw:  "\n\n  hello world  \n\n",
			want: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, Options{})
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if got.Body != tt.want {
				t.Errorf("Body = %q, want %q", got.Body, tt.want)
			}
		})
	}
}

func TestNormalizeWordCount(t *testing.T) {
	got, err := Normalize("self-development takes time", Options{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", got.WordCount)
	}
}

func TestStripNoise(t *testing.T) {
	raw := "The result[12] was clear.¹\n\nFigure 3: growth over time\n\nРис. 2. Схема\n\nAnd the text continues here."
	got, err := Normalize(raw, Options{StripNoise: true})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for _, noise := range []string{"[12]", "¹", "Figure 3", "Рис. 2"} {
		if strings.Contains(got.Body, noise) {
			t.Errorf("noise %q survived cleanup: %q", noise, got.Body)
		}
	}
	if !strings.Contains(got.Body, "The result was clear.") {
		t.Errorf("content around footnote marker damaged: %q", got.Body)
	}
	if !strings.Contains(got.Body, "And the text continues here.") {
		t.Errorf("trailing paragraph lost: %q", got.Body)
	}
}

func TestStripNoiseInlineCaption(t *testing.T) {
	raw := "See Таблица 4. for details of the schedule."
	got, err := Normalize(raw, Options{StripNoise: true})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if strings.Contains(got.Body, "Таблица") {
		t.Errorf("inline caption marker survived: %q", got.Body)
	}
}

func TestStripNoiseDisabled(t *testing.T) {
	got, err := Normalize("kept marker [7] here", Options{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !strings.Contains(got.Body, "[7]") {
		t.Errorf("marker should be kept without StripNoise: %q", got.Body)
	}
}

func TestCustomCaptionPrefixes(t *testing.T) {
	raw := "Abb. 1: ein Diagramm\n\nDer Text geht weiter."
	got, err := Normalize(raw, Options{StripNoise: true, CaptionPrefixes: []string{"Abb."}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if strings.Contains(got.Body, "Abb.") {
		t.Errorf("custom caption prefix survived: %q", got.Body)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\n\t  ", "... --- !!!"} {
		if _, err := Normalize(raw, Options{}); !errors.Is(err, kerrors.ErrEmptyInput) {
			t.Errorf("Normalize(%q) error = %v, want ErrEmptyInput", raw, err)
		}
	}
}

func TestEmptyAfterCleanup(t *testing.T) {
	raw := "[1][2][3]\n\nFigure 1: something\n\nTable 2: something else"
	_, err := Normalize(raw, Options{StripNoise: true})
	if !errors.Is(err, kerrors.ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}
