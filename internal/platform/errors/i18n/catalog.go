// Package i18n provides localized user-facing copy for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// BaseLocale is the fallback locale when a requested one is unavailable.
const BaseLocale = "en"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// NewCatalog builds a catalog for the given locale.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	return &Catalog{locale: locale, messages: messages}
}

// RegisterCatalog registers a catalog for the given locale. Locale files call
// this from init.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// GetCatalog returns the catalog for the given locale.
// Falls back to the base locale if the requested one is not registered.
func GetCatalog(locale string) *Catalog {
	requested := normalizeLocale(locale)

	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	if c, ok := catalogs[requested]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata so template
// variables without metadata render as empty.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	if c == nil {
		return code
	}
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

func normalizeLocale(locale string) string {
	value := strings.ToLower(strings.TrimSpace(locale))
	if value == "" {
		return BaseLocale
	}
	// "ru-RU" and "ru_RU" both resolve to "ru".
	for _, sep := range []string{"-", "_"} {
		if idx := strings.Index(value, sep); idx > 0 {
			value = value[:idx]
		}
	}
	return value
}
