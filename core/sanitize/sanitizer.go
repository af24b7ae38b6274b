// Package sanitize maps arbitrary input text into the character repertoire
// the document's single-byte font encoding (cp1252) can represent.
// The policy is lossy but visible: known typographic characters get their
// plain equivalents, anything else unrepresentable becomes a '?' placeholder.
// Nothing is silently dropped and no input errors.
package sanitize

import "strings"

// typographic substitutes the "smart" punctuation that dictation and
// word processors produce. Applied before the encodability scan so these
// never hit the placeholder path.
var typographic = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "--", // em dash
	"…", "...", // ellipsis
	"\u00a0", " ", // no-break space
)

// cp1252Extra covers the codepoints cp1252 maps into 0x80-0x9F beyond
// what the typographic replacer already handles.
var cp1252Extra = map[rune]bool{
	'€': true, '‚': true, 'ƒ': true, '„': true, '†': true,
	'‡': true, 'ˆ': true, '‰': true, 'Š': true, '‹': true,
	'Œ': true, 'Ž': true, '•': true, '˜': true, '™': true,
	'š': true, '›': true, 'œ': true, 'ž': true, 'Ÿ': true,
}

// Sanitize returns text containing only characters the output encoding can
// represent. Empty input yields empty output; the function is total.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	// Uniform newlines first so downstream line math is consistent.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = typographic.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		case r >= 0xa0 && r <= 0xff:
			b.WriteRune(r)
		case cp1252Extra[r]:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
