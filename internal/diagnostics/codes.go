package diagnostics

import "github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"

// Error codes, one prefix per stage
const (
	// Lexer errors (L prefix)
	ErrMalformedToken = "L0001"

	// Parser errors (P prefix)
	ErrUnexpectedToken = "P0001"

	// Analyzer errors (T prefix)
	ErrInvalidOperation     = "T0001"
	ErrUndefinedSymbol      = "T0002"
	ErrRedeclaredSymbol     = "T0003"
	ErrTypeMismatch         = "T0004"
	ErrInvalidStatement     = "T0005"
	ErrInvalidAssignment    = "T0006"
	ErrConstantReassignment = "T0007"
	ErrInvalidReturn        = "T0008"
	ErrInvalidType          = "T0009"
	ErrInvalidDeclaration   = "T0010"
	ErrLiteralOutOfRange    = "T0011"
	ErrMissingEntryPoint    = "T0012"

	// Runtime errors (R prefix)
	ErrRuntime           = "R0001"
	ErrCallDepthExceeded = "R0002"

	// Control flow warnings (W prefix)
	WarnUnreachableCode = "W0001"
	WarnMissingReturn   = "W0002"
)

var analysisCodes = map[analyzer.Kind]string{
	analyzer.InvalidOperation:     ErrInvalidOperation,
	analyzer.UndefinedSymbol:      ErrUndefinedSymbol,
	analyzer.RedeclaredSymbol:     ErrRedeclaredSymbol,
	analyzer.TypeMismatch:         ErrTypeMismatch,
	analyzer.InvalidStatement:     ErrInvalidStatement,
	analyzer.InvalidAssignment:    ErrInvalidAssignment,
	analyzer.ConstantReassignment: ErrConstantReassignment,
	analyzer.InvalidReturn:        ErrInvalidReturn,
	analyzer.InvalidType:          ErrInvalidType,
	analyzer.InvalidDeclaration:   ErrInvalidDeclaration,
	analyzer.LiteralOutOfRange:    ErrLiteralOutOfRange,
	analyzer.MissingEntryPoint:    ErrMissingEntryPoint,
}

var helpByCode = map[string]string{
	ErrMissingEntryPoint:    "declare DEF main(): Integer DO ... END",
	ErrConstantReassignment: "declare the field without CONST to allow assignment",
	ErrInvalidStatement:     "only function calls may stand alone as statements",
	ErrCallDepthExceeded:    "check for recursion without a base case",
}
