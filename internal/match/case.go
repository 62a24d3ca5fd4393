package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokens splits an identifier into lowercase words. Separators ('_', '-',
// ' ') and lower-to-upper transitions start a new word, and an acronym ends
// before a capital followed by a lowercase letter:
//   - "avatarURL" -> [avatar url]
//   - "XMLParser" -> [xml parser]
//   - "is_new" -> [is new]
func Tokens(s string) []string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}

	return ws
}

// SnakeCase converts an identifier to snake_case. Acronyms stay one word:
// "isNew" -> "is_new", "avatarURL" -> "avatar_url".
func SnakeCase(s string) string {
	return strings.Join(Tokens(s), "_")
}

// LowerCamel converts an identifier to lowerCamelCase, the form used for
// property names. The first word is lowercased, the others keep their case
// behind a capital: "UID" -> "uid", "AvatarURL" -> "avatarURL",
// "is_new" -> "isNew".
func LowerCamel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}

	var b strings.Builder

	b.Grow(len(s))
	b.WriteString(strings.ToLower(ws[0]))

	for _, w := range ws[1:] {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}

	return b.String()
}

// fold reduces an identifier to its lowercase words without separators, so
// "OrderID", "order_id" and "orderId" compare equal.
func fold(s string) string {
	return strings.Join(Tokens(s), "")
}

// words splits s keeping the original case of every word.
func words(s string) []string {
	var (
		out   []string
		start = -1
	)

	runes := []rune(s)

	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush(i)
		case start < 0:
			start = i
		case boundary(runes, i):
			flush(i)
			start = i
		}
	}

	flush(len(runes))

	return out
}

// boundary reports whether a new word starts at runes[i], i > 0.
func boundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
