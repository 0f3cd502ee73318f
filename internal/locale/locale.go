// Package locale provides the CLI's user-facing messages in English and
// Russian. Catalogs are embedded JSON files keyed by message name; values use
// fmt verbs for interpolation.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog maps message keys to localized templates.
type Catalog struct {
	lang     string
	messages map[string]string
}

// Load returns the catalog for lang, falling back to English when the
// language has no catalog.
func Load(lang string) (*Catalog, error) {
	data, err := localeFS.ReadFile("locales/" + lang + ".json")
	if err != nil {
		lang = "en"
		data, err = localeFS.ReadFile("locales/en.json")
		if err != nil {
			return nil, kerrors.NewIO("read embedded catalog", "locales/en.json", err)
		}
	}
	msgs := make(map[string]string)
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, kerrors.NewParse("locale", lang, err.Error())
	}
	return &Catalog{lang: lang, messages: msgs}, nil
}

// Lang reports which catalog was actually loaded.
func (c *Catalog) Lang() string { return c.lang }

// Get returns the raw template for key, or the key itself when missing so a
// broken catalog degrades to readable output instead of empty lines.
func (c *Catalog) Get(key string) string {
	if m, ok := c.messages[key]; ok {
		return m
	}
	return key
}

// Format renders the template for key with fmt.Sprintf.
func (c *Catalog) Format(key string, args ...any) string {
	return fmt.Sprintf(c.Get(key), args...)
}
