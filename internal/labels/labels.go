// Package labels renders localized user-facing text from message keys
// and named parameters. Placeholders use {name} syntax.
package labels

import (
	"strings"

	"golang.org/x/text/language"
)

var catalogs = map[string]map[string]string{
	"en": en,
	"fr": fr,
}

var supported = []language.Tag{
	language.English, // first tag is the fallback
	language.French,
}

// Formatter resolves message keys against the catalog for one locale.
type Formatter struct {
	catalog  map[string]string
	fallback map[string]string
}

// NewFormatter picks the closest supported locale for the given tag
// string ("en", "fr-CA", ...) and falls back to English for unknown
// locales and missing keys.
func NewFormatter(locale string) *Formatter {
	matcher := language.NewMatcher(supported)
	tag, _ := language.MatchStrings(matcher, locale)

	base, _ := tag.Base()
	catalog, ok := catalogs[base.String()]
	if !ok {
		catalog = en
	}

	return &Formatter{
		catalog:  catalog,
		fallback: en,
	}
}

// Format substitutes params into the message for key. An unknown key
// returns the key itself so a missing translation stays visible instead
// of vanishing.
func (f *Formatter) Format(key string, params map[string]string) string {
	msg, ok := f.catalog[key]
	if !ok {
		msg, ok = f.fallback[key]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}

	return msg
}
