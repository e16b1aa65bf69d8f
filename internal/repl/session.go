package repl

import (
	"io"

	"github.com/inconshreveable/log15"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// Session keeps the analyzer and interpreter state of one interactive run.
// Every input is analyzed before it is executed, so the two scope chains
// stay in step.
type Session struct {
	analyzer    *analyzer.Analyzer
	interpreter *interpreter.Interpreter
	log         log15.Logger
}

// NewSession prints program output to out.
func NewSession(out io.Writer, opts ...interpreter.Option) *Session {
	logger := log15.New("module", "repl")
	return &Session{
		analyzer:    analyzer.New(environment.NewBuiltins(out)),
		interpreter: interpreter.New(environment.NewBuiltins(out), append([]interpreter.Option{interpreter.WithLogger(logger)}, opts...)...),
		log:         logger,
	}
}

// Complete reports whether input closes every block it opens. Input that
// does not lex is complete so the error can be reported.
func Complete(input string) bool {
	toks, err := lexer.Lex(input)
	if err != nil {
		return true
	}
	depth := 0
	for _, tok := range toks {
		if tok.Kind != tokens.IDENTIFIER {
			continue
		}
		switch {
		case tokens.OpensBlock(tok.Literal):
			depth++
		case tok.Literal == tokens.END_KEYWORD:
			depth--
		}
	}
	return depth <= 0
}

// Eval runs one complete input. Declarations (LET, DEF) extend the session;
// statements are executed; a bare expression is evaluated and its value
// rendered. The returned text is empty for anything but an expression.
func (s *Session) Eval(input string) (string, error) {
	toks, err := lexer.Lex(input)
	if err != nil {
		return "", err
	}
	if len(toks) == 0 {
		return "", nil
	}

	switch toks[0].Literal {
	case tokens.LET_KEYWORD, tokens.DEF_KEYWORD:
		src, err := parser.Parse(toks)
		if err != nil {
			return "", err
		}
		return "", s.declare(src)
	}

	if isExpression(toks) {
		expr, err := parser.ParseExpression(toks)
		if err != nil {
			return "", err
		}
		return s.evaluate(expr)
	}

	stmt, err := parser.ParseStatement(toks)
	if err != nil {
		return "", err
	}
	if err := s.analyzer.AnalyzeStatement(stmt); err != nil {
		return "", err
	}
	return "", s.interpreter.Execute(stmt)
}

// isExpression reports whether toks read as a bare expression: no statement
// keyword up front and no terminating semicolon.
func isExpression(toks []tokens.Token) bool {
	first, last := toks[0], toks[len(toks)-1]
	return !last.Is(";") && !first.Is(tokens.RETURN_KEYWORD) && !tokens.OpensBlock(first.Literal)
}

// declare binds each declaration in both scope chains. A declaration that
// fails in either one is bound in neither.
func (s *Session) declare(src *ast.Source) error {
	for _, field := range src.Fields {
		if err := s.analyzer.AnalyzeField(field); err != nil {
			return err
		}
		if err := s.interpreter.DefineField(field); err != nil {
			s.analyzer.Scope().RemoveVariable(field.Name)
			return err
		}
		s.log.Debug("Defined field", "name", field.Name)
	}
	for _, method := range src.Methods {
		if err := s.analyzer.AnalyzeMethod(method); err != nil {
			return err
		}
		if err := s.interpreter.DefineMethod(method); err != nil {
			s.analyzer.Scope().RemoveFunction(method.Name, len(method.Parameters))
			return err
		}
		s.log.Debug("Defined method", "name", method.Name, "arity", len(method.Parameters))
	}
	return nil
}

func (s *Session) evaluate(expr ast.Expression) (string, error) {
	if err := s.analyzer.AnalyzeExpression(expr); err != nil {
		return "", err
	}
	value, err := s.interpreter.Evaluate(expr)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

// Names lists everything the session has defined, most recent scope first.
func (s *Session) Names() []string {
	return s.interpreter.Scope().Names()
}
