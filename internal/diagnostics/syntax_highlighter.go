package diagnostics

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Chris-Enlow/PLC-Project/colors"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// SyntaxHighlighter colors source snippets shown under diagnostics.
type SyntaxHighlighter struct {
	enabled bool
}

func NewSyntaxHighlighter(enabled bool) *SyntaxHighlighter {
	return &SyntaxHighlighter{enabled: enabled}
}

func (sh *SyntaxHighlighter) IsEnabled() bool {
	return sh.enabled
}

// Span is a run of text drawn in one color. A nil Color is plain text.
type Span struct {
	Text  string
	Color *color.Color
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// quoted returns the end of the literal opened by line[start], stopping at
// the line end when it is unterminated.
func quoted(line string, start int) int {
	delimiter := line[start]
	i := start + 1
	for i < len(line) && line[i] != delimiter {
		if line[i] == '\\' && i+1 < len(line) {
			i++
		}
		i++
	}
	if i < len(line) {
		i++
	}
	return i
}

// Highlight splits line into colored spans. It never fails; text it does not
// recognize is left plain.
func (sh *SyntaxHighlighter) Highlight(line string) []Span {
	if !sh.enabled {
		return []Span{{Text: line}}
	}

	var spans []Span
	i := 0
	for i < len(line) {
		start := i
		var c *color.Color
		switch ch := line[i]; {
		case ch == '"':
			i = quoted(line, i)
			c = colors.GREEN
		case ch == '\'':
			i = quoted(line, i)
			c = colors.YELLOW
		case isDigit(ch):
			for i < len(line) && (isDigit(line[i]) || line[i] == '.') {
				i++
			}
			c = colors.YELLOW
		case isIdentStart(ch):
			for i < len(line) && isIdentPart(line[i]) {
				i++
			}
			word := line[start:i]
			if tokens.IsKeyword(word) {
				c = colors.PURPLE
			} else if _, err := types.Lookup(word); err == nil {
				c = colors.ORANGE
			}
		default:
			i++
		}
		spans = append(spans, Span{Text: line[start:i], Color: c})
	}
	return spans
}

// HighlightLine returns line with color escapes applied.
func (sh *SyntaxHighlighter) HighlightLine(line string) string {
	var b strings.Builder
	sh.HighlightTo(&b, line)
	return b.String()
}

func (sh *SyntaxHighlighter) HighlightTo(w io.Writer, line string) {
	for _, span := range sh.Highlight(line) {
		if span.Color == nil {
			io.WriteString(w, span.Text)
			continue
		}
		span.Color.Fprint(w, span.Text)
	}
}
