package locale

import (
	"strings"
	"testing"
)

func TestLoadEnglish(t *testing.T) {
	c, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Lang() != "en" {
		t.Errorf("Lang = %q, want en", c.Lang())
	}
	got := c.Format("total_words", 12345)
	if got != "Total words in book: 12345" {
		t.Errorf("Format(total_words) = %q", got)
	}
}

func TestLoadRussian(t *testing.T) {
	c, err := Load("ru")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := c.Format("done", 7)
	if !strings.Contains(got, "7") {
		t.Errorf("Format(done) = %q, want the count interpolated", got)
	}
}

func TestLoadUnknownFallsBackToEnglish(t *testing.T) {
	c, err := Load("de")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Lang() != "en" {
		t.Errorf("Lang = %q, want en fallback", c.Lang())
	}
}

func TestGetMissingKeyReturnsKey(t *testing.T) {
	c, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Get("no_such_key"); got != "no_such_key" {
		t.Errorf("Get = %q, want the key itself", got)
	}
}

// Every English key must exist in Russian and vice versa, with the same fmt
// verbs, so switching languages never changes interpolation behavior.
func TestCatalogsAreParallel(t *testing.T) {
	en, err := Load("en")
	if err != nil {
		t.Fatal(err)
	}
	ru, err := Load("ru")
	if err != nil {
		t.Fatal(err)
	}
	for key := range en.messages {
		if _, ok := ru.messages[key]; !ok {
			t.Errorf("ru catalog missing key %q", key)
		}
	}
	for key := range ru.messages {
		if _, ok := en.messages[key]; !ok {
			t.Errorf("en catalog missing key %q", key)
		}
	}
	for key, tmpl := range en.messages {
		if countVerbs(tmpl) != countVerbs(ru.messages[key]) {
			t.Errorf("key %q: verb count differs between en and ru", key)
		}
	}
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+1 < len(s) && s[i+1] != '%' {
			n++
		}
	}
	return n
}
