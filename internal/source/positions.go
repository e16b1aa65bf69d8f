package source

// Position represents a specific location in the source code with line, column, and index information.
type Position struct {
	Line   int // Line number in the source code, 1-based.
	Column int // Byte column in the line, 1-based.
	Index  int // Byte offset in the source code.
}

// Start is the position of the first byte of any input.
func Start() Position {
	return Position{Line: 1, Column: 1, Index: 0}
}

// Advance moves the Position past every byte of toSkip, starting a new line
// after each '\n'.
func (p *Position) Advance(toSkip string) *Position {
	for i := 0; i < len(toSkip); i++ {
		if toSkip[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Index++
	}
	return p
}

// PositionAt converts a byte offset into a line/column position within text.
// Offsets past the end are clamped to the end of text.
func PositionAt(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	pos := Start()
	pos.Advance(text[:offset])
	return pos
}

// Range is the half-open byte range [Start, End) of a construct.
type Range struct {
	Start int
	End   int
}

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Location resolves the range against the text it was taken from.
func (r Range) Location(filename, text string) *Location {
	return Span(filename, text, r.Start, r.Len())
}
