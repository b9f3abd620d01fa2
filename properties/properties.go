// Package properties turns parsed links into key=value entries.
//
// By default entries are emitted verbatim, so link text containing '=' or a
// line break produces a line that cannot be read back unambiguously. Enable
// escaping to emit keys and values using the java.util.Properties rules.
package properties

import (
	"strings"

	"wml-taglinks/models"
)

// Entry is a single key=value line
type Entry struct {
	Key   string
	Value string
}

// String renders the entry without a trailing newline
func (e Entry) String() string {
	return e.Key + "=" + e.Value
}

// Format builds one entry per link, keeping input order. The value is
// baseURL followed by the raw href; no URL joining is done.
func Format(baseURL string, links []models.Link, escape bool) []Entry {
	entries := make([]Entry, 0, len(links))
	for _, link := range links {
		entry := Entry{Key: link.Text, Value: baseURL + link.Href}
		if escape {
			entry.Key = EscapeKey(entry.Key)
			entry.Value = EscapeValue(entry.Value)
		}
		entries = append(entries, entry)
	}
	return entries
}

// EscapeKey escapes a key so that java.util.Properties reads it back unchanged
func EscapeKey(s string) string {
	return escape(s, true)
}

// EscapeValue escapes a value. Only a leading space needs escaping in values.
func EscapeValue(s string) string {
	return escape(s, false)
}

func escape(s string, isKey bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '=', ':', '#', '!':
			b.WriteByte('\\')
			b.WriteRune(r)
		case ' ':
			if isKey || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(' ')
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
