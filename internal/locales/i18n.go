// Package locales holds the user-facing texts of the bot.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed *.json
var localeFS embed.FS

// Catalog resolves message IDs to texts for one language.
type Catalog struct {
	localizer *i18n.Localizer
}

// New loads the embedded message files and returns a Russian catalog.
func New() (*Catalog, error) {
	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := localeFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, f.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", f.Name(), err)
		}
	}
	return &Catalog{localizer: i18n.NewLocalizer(bundle, language.Russian.String())}, nil
}

// Text returns the message without template data.
func (c *Catalog) Text(id string) string {
	return c.Format(id, nil)
}

// Format renders the message with template data. Unknown IDs come back as is
// so a missing translation is visible instead of empty.
func (c *Catalog) Format(id string, data map[string]interface{}) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
