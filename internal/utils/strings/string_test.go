package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`tab\there`, "tab\there"},
		{`\'q\'`, "'q'"},
		{`\"q\"`, `"q"`},
		{`back\\slash`, `back\slash`},
		{`\\n`, `\n`},
		{`\b\r`, "\b\r"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, Unescape(test.input))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"Hello, World!"`, Quote("Hello, World!"))
	assert.Equal(t, `"line\n"`, Quote("line\n"))
	assert.Equal(t, `"say \"hi\" it's"`, Quote(`say "hi" it's`))
	assert.Equal(t, `"\\"`, Quote(`\`))
}

func TestQuoteRune(t *testing.T) {
	assert.Equal(t, `'c'`, QuoteRune('c'))
	assert.Equal(t, `'\''`, QuoteRune('\''))
	assert.Equal(t, `'"'`, QuoteRune('"'))
	assert.Equal(t, `'\t'`, QuoteRune('\t'))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "argument", Pluralize("argument", "arguments", 1))
	assert.Equal(t, "arguments", Pluralize("argument", "arguments", 0))
	assert.Equal(t, "arguments", Pluralize("argument", "arguments", 2))
}
