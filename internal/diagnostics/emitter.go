package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Chris-Enlow/PLC-Project/colors"
)

const (
	STR_MULTIPLIER = "%*d | "
	LINE_POS       = "%s--> %s:%d:%d\n"
)

// Emitter renders diagnostics as Rust-style snippets.
type Emitter struct {
	cache       *SourceCache
	writer      io.Writer
	highlighter *SyntaxHighlighter
	gutter      int // line number width for the diagnostic being emitted
}

func NewEmitter(w io.Writer) *Emitter {
	return NewEmitterWithCache(w, NewSourceCache())
}

func NewEmitterWithCache(w io.Writer, cache *SourceCache) *Emitter {
	return &Emitter{
		cache:       cache,
		writer:      w,
		highlighter: NewSyntaxHighlighter(colors.Enabled()),
	}
}

func (e *Emitter) gutterWidth(diag *Diagnostic) int {
	maxLine := 1
	for _, label := range diag.Labels {
		if label.Location == nil || label.Location.End == nil {
			continue
		}
		if label.Location.End.Line > maxLine {
			maxLine = label.Location.End.Line
		}
	}
	return len(fmt.Sprintf("%d", maxLine))
}

func (e *Emitter) Emit(diag *Diagnostic) {
	e.gutter = e.gutterWidth(diag)
	e.printHeader(diag)
	for _, label := range diag.Labels {
		e.printLabel(diag.FilePath, label, diag.Severity)
	}
	for _, note := range diag.Notes {
		e.printNote(note)
	}
	if diag.Help != "" {
		e.printHelp(diag.Help)
	}
	fmt.Fprintln(e.writer)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	c := boldSeverityColor(diag.Severity)
	c.Fprint(e.writer, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.writer, "[%s]", diag.Code)
	}
	fmt.Fprint(e.writer, ": ")
	c.Fprintln(e.writer, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	if label.Location == nil || label.Location.Start == nil {
		return
	}
	start := label.Location.Start
	end := label.Location.End
	if end == nil {
		end = start
	}

	colors.BLUE.Fprintf(e.writer, LINE_POS, strings.Repeat(" ", e.gutter), filepath, start.Line, start.Column)
	e.printSeparator()

	underline := severityColor(severity)
	char := "~"
	if label.Style == Secondary {
		underline = colors.BLUE
		char = "-"
	}

	if start.Line == end.Line {
		e.printSourceLine(filepath, start.Line-1, true)
		e.printSourceLine(filepath, start.Line, false)
		length := end.Column - start.Column
		if length <= 1 {
			length = 1
			if label.Style == Primary {
				char = "^"
			}
		}
		e.printUnderline(start.Column-1, strings.Repeat(char, length), label.Message, underline)
	} else {
		e.printSourceLine(filepath, start.Line, false)
		e.printUnderline(start.Column-1, char, "", underline)
		if end.Line-start.Line > 5 {
			fmt.Fprint(e.writer, strings.Repeat(" ", e.gutter))
			colors.GREY.Fprintln(e.writer, "...")
		} else {
			for line := start.Line + 1; line < end.Line; line++ {
				e.printSourceLine(filepath, line, false)
			}
		}
		e.printSourceLine(filepath, end.Line, false)
		e.printUnderline(end.Column-2, "^", label.Message, underline)
	}
	e.printSeparator()
}

// printSourceLine writes one numbered line. Context lines are grey and skipped
// when blank or missing.
func (e *Emitter) printSourceLine(filepath string, line int, context bool) {
	if line < 1 {
		return
	}
	text, err := e.cache.GetLine(filepath, line)
	if err != nil || (context && strings.TrimSpace(text) == "") {
		return
	}
	colors.GREY.Fprintf(e.writer, STR_MULTIPLIER, e.gutter, line)
	if context {
		colors.GREY.Fprintln(e.writer, text)
		return
	}
	e.highlighter.HighlightTo(e.writer, text)
	fmt.Fprintln(e.writer)
}

func (e *Emitter) printUnderline(padding int, marks, message string, c *color.Color) {
	if padding < 0 {
		padding = 0
	}
	fmt.Fprint(e.writer, strings.Repeat(" ", e.gutter))
	colors.GREY.Fprint(e.writer, " | ")
	fmt.Fprint(e.writer, strings.Repeat(" ", padding))
	c.Fprint(e.writer, marks)
	if message != "" {
		c.Fprintf(e.writer, " %s", message)
	}
	fmt.Fprintln(e.writer)
}

func (e *Emitter) printSeparator() {
	fmt.Fprint(e.writer, strings.Repeat(" ", e.gutter))
	colors.GREY.Fprintln(e.writer, " |")
}

func (e *Emitter) printNote(note Note) {
	fmt.Fprint(e.writer, strings.Repeat(" ", e.gutter+1))
	colors.CYAN.Fprint(e.writer, "= note: ")
	fmt.Fprintln(e.writer, note.Message)
}

func (e *Emitter) printHelp(help string) {
	fmt.Fprint(e.writer, strings.Repeat(" ", e.gutter+1))
	colors.GREEN.Fprint(e.writer, "= help: ")
	fmt.Fprintln(e.writer, help)
}

func severityColor(severity Severity) *color.Color {
	switch severity {
	case Warning:
		return colors.YELLOW
	case Info:
		return colors.BLUE
	case Hint:
		return colors.PURPLE
	default:
		return colors.RED
	}
}

func boldSeverityColor(severity Severity) *color.Color {
	switch severity {
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	case Hint:
		return colors.BOLD_PURPLE
	default:
		return colors.BOLD_RED
	}
}
