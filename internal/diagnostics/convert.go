package diagnostics

import (
	"errors"

	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

// FromError converts a stage error into a Diagnostic labelled against text.
// Errors from outside the pipeline become a plain error without a label.
func FromError(filename, text string, err error) *Diagnostic {
	var (
		lexErr      *lexer.LexError
		parseErr    *parser.ParseError
		analysisErr *analyzer.AnalysisError
		runtimeErr  *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return NewError(lexErr.Message).
			WithCode(ErrMalformedToken).
			WithPrimaryLabel(filename, source.Span(filename, text, lexErr.At, 1), "here")

	case errors.As(err, &parseErr):
		return NewError(parseErr.Message).
			WithCode(ErrUnexpectedToken).
			WithPrimaryLabel(filename, source.Span(filename, text, parseErr.At, 1), "here")

	case errors.As(err, &analysisErr):
		code := analysisCodes[analysisErr.Kind]
		return withHelp(NewError(analysisErr.Message).
			WithCode(code).
			WithPrimaryLabel(filename, analysisErr.At.Location(filename, text), ""), code)

	case errors.As(err, &runtimeErr):
		code := ErrRuntime
		if runtimeErr.Kind == interpreter.CallDepthExceeded {
			code = ErrCallDepthExceeded
		}
		return withHelp(NewError(runtimeErr.Message).
			WithCode(code).
			WithPrimaryLabel(filename, runtimeErr.At.Location(filename, text), "while evaluating this"), code)
	}
	diag := NewError(err.Error())
	diag.FilePath = filename
	return diag
}

func withHelp(diag *Diagnostic, code string) *Diagnostic {
	if help, ok := helpByCode[code]; ok {
		diag.WithHelp(help)
	}
	return diag
}
