package source

import (
	"fmt"
	"strings"
)

// Location represents a span of source code with start and end positions
type Location struct {
	Start    *Position
	End      *Position
	Filename *string
}

// NewLocation creates a new Location with the given start and end positions
func NewLocation(filename *string, start, end *Position) *Location {
	return &Location{
		Filename: filename,
		Start:    start,
		End:      end,
	}
}

// Span builds the Location covering [offset, offset+length) of text.
func Span(filename string, text string, offset, length int) *Location {
	start := PositionAt(text, offset)
	end := PositionAt(text, offset+length)
	return NewLocation(&filename, &start, &end)
}

// Contains checks if the given position is within this location
func (l *Location) Contains(pos *Position) bool {
	if l.Start.Line > pos.Line || (l.Start.Line == pos.Line && l.Start.Column > pos.Column) {
		return false
	}
	if l.End.Line < pos.Line || (l.End.Line == pos.Line && l.End.Column < pos.Column) {
		return false
	}
	return true
}

func (l *Location) String() string {
	if l.Start == nil || l.End == nil {
		return "location(unknown)"
	}

	return fmt.Sprintf("location(%d:%d - %d:%d)", l.Start.Line, l.Start.Column, l.End.Line, l.End.Column)
}

// GetText extracts the text covered by this location from the given source.
// Returns empty string if the location is invalid.
func (l *Location) GetText(text string) string {
	if l.Start == nil || l.End == nil {
		return ""
	}
	if l.Start.Index < 0 || l.End.Index > len(text) || l.Start.Index > l.End.Index {
		return ""
	}
	return text[l.Start.Index:l.End.Index]
}

// Lines splits source text the way diagnostics number it: on '\n', with a
// trailing '\r' dropped from each line.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
