package diagnostics

import (
	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Label marks a span of the source with a short message.
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // underlined with ^ or ~
	Secondary                   // underlined with -
)

type Note struct {
	Message string
}

// Diagnostic is a rendered-ready report of one problem in one file.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // e.g. "P0001"
	FilePath string
	Labels   []Label
	Notes    []Note
	Help     string
}

func newDiagnostic(severity Severity, message string) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

func NewError(message string) *Diagnostic {
	return newDiagnostic(Error, message)
}

func NewWarning(message string) *Diagnostic {
	return newDiagnostic(Warning, message)
}

func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

func (d *Diagnostic) hasPrimary() bool {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return true
		}
	}
	return false
}

// WithPrimaryLabel sets the main location. A diagnostic has at most one; later
// calls are ignored.
func (d *Diagnostic) WithPrimaryLabel(filepath string, loc *source.Location, message string) *Diagnostic {
	if d.hasPrimary() {
		return d
	}
	if d.FilePath == "" {
		d.FilePath = filepath
	}
	d.Labels = append([]Label{{Location: loc, Message: message, Style: Primary}}, d.Labels...)
	return d
}

// WithSecondaryLabel adds context to a diagnostic that already has a primary
// label.
func (d *Diagnostic) WithSecondaryLabel(loc *source.Location, message string) *Diagnostic {
	if !d.hasPrimary() {
		panic("secondary label added before primary label")
	}
	d.Labels = append(d.Labels, Label{Location: loc, Message: message, Style: Secondary})
	return d
}

func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Primary returns the primary label, if any.
func (d *Diagnostic) Primary() (Label, bool) {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label, true
		}
	}
	return Label{}, false
}
