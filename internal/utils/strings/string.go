package strings

import "strings"

var unescaper = strings.NewReplacer(
	`\b`, "\b",
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\'`, "'",
	`\"`, `"`,
	`\\`, `\`,
)

// Unescape resolves the escape sequences allowed in character and string
// literals. The input must already be lexically valid.
func Unescape(literal string) string {
	return unescaper.Replace(literal)
}

// escape renders r using the same escape set, quoting the given delimiter.
func escape(b *strings.Builder, r rune, delimiter rune) {
	switch r {
	case '\b':
		b.WriteString(`\b`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\\':
		b.WriteString(`\\`)
	case delimiter:
		b.WriteRune('\\')
		b.WriteRune(r)
	default:
		b.WriteRune(r)
	}
}

// Quote renders s as a double-quoted literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		escape(&b, r, '"')
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteRune renders r as a single-quoted literal.
func QuoteRune(r rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	escape(&b, r, '\'')
	b.WriteByte('\'')
	return b.String()
}

func Pluralize(singular, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}
