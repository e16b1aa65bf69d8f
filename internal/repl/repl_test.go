package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-Enlow/PLC-Project/colors"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
)

func TestComplete(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"expression", "1 + 2", true},
		{"open method", "DEF f(): Integer DO", false},
		{"closed method", "DEF f(): Integer DO\n  RETURN 1;\nEND", true},
		{"nested open", "DEF f() DO\n  IF TRUE DO\n    print(1);\n  END", false},
		{"one line if", "IF TRUE DO print(1); END", true},
		{"keyword inside string", `print("DEF");`, true},
		{"lex error", `"unterminated`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Complete(tt.input))
		})
	}
}

func TestSessionEval(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)

	steps := []struct {
		input string
		value string
	}{
		{"LET x: Integer = 2;", ""},
		{"x + 3", "5"},
		{"DEF square(n: Integer): Integer DO RETURN n * n; END", ""},
		{"square(x)", "4"},
		{"x = 10;", ""},
		{"square(x)", "100"},
		{"1.5 * 2.0", "3.00"},
		{`"abc".slice(1, 3)`, "bc"},
		{`print("hi");`, ""},
		{"IF x > 5 DO print(x); END", ""},
	}
	for _, step := range steps {
		value, err := s.Eval(step.input)
		require.NoError(t, err, step.input)
		assert.Equal(t, step.value, value, step.input)
	}
	assert.Equal(t, "hi\n10\n", out.String())
	assert.Contains(t, s.Names(), "x")
	assert.Contains(t, s.Names(), "square/1")
}

func TestSessionErrors(t *testing.T) {
	s := NewSession(&bytes.Buffer{})

	_, err := s.Eval("y + 1")
	var analysisErr *analyzer.AnalysisError
	assert.True(t, errors.As(err, &analysisErr), "got %v", err)

	_, err = s.Eval("1 / 0")
	var runtimeErr *interpreter.RuntimeError
	assert.True(t, errors.As(err, &runtimeErr), "got %v", err)

	_, err = s.Eval("LET a = 01;")
	var lexErr *lexer.LexError
	assert.True(t, errors.As(err, &lexErr), "got %v", err)

	_, err = s.Eval("RETURN 1;")
	assert.Error(t, err)

	// A failed input leaves the session usable.
	value, err := s.Eval("1 + 1")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestRejectedDefinitionsAreNotBound(t *testing.T) {
	s := NewSession(&bytes.Buffer{})

	_, err := s.Eval(`DEF f(): Integer DO RETURN "x"; END`)
	var analysisErr *analyzer.AnalysisError
	require.True(t, errors.As(err, &analysisErr), "got %v", err)
	assert.NotContains(t, s.Names(), "f/0")

	_, err = s.Eval("DEF f(): Integer DO RETURN 7; END")
	require.NoError(t, err)
	value, err := s.Eval("f()")
	require.NoError(t, err)
	assert.Equal(t, "7", value)

	_, err = s.Eval("LET ratio = 1 / 0;")
	var runtimeErr *interpreter.RuntimeError
	require.True(t, errors.As(err, &runtimeErr), "got %v", err)
	_, err = s.Eval("LET ratio = 2;")
	require.NoError(t, err)
	value, err = s.Eval("ratio * f()")
	require.NoError(t, err)
	assert.Equal(t, "14", value)
}

func TestSessionCallDepth(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, interpreter.WithMaxCallDepth(10))
	_, err := s.Eval("DEF loop(n: Integer): Integer DO RETURN loop(n + 1); END")
	require.NoError(t, err)
	_, err = s.Eval("loop(0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum call depth exceeded")

	value, err := s.Eval("2 ^ 3")
	require.NoError(t, err)
	assert.Equal(t, "8", value)
}

func TestServe(t *testing.T) {
	colors.SetEnabled(false)

	input := strings.Join([]string{
		"LET total: Integer = 0;",
		"DEF add(n: Integer): Integer DO",
		"  total = total + n;",
		"  RETURN total;",
		"END",
		"add(4)",
		"add(5)",
		"missing",
		":quit",
		"add(100)",
	}, "\n")

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, Options{})
	require.NoError(t, r.Serve(strings.NewReader(input)))

	assert.Equal(t, "4\n9\n", out.String())
	assert.Contains(t, errOut.String(), "error[T0002]")
	assert.Contains(t, errOut.String(), "undefined variable 'missing'")
	assert.Contains(t, errOut.String(), "<repl>:1:1")
}

func TestCommands(t *testing.T) {
	colors.SetEnabled(false)

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, Options{})
	require.NoError(t, r.Serve(strings.NewReader("LET answer = 42;\n:scope\n:help\n:bogus\n")))

	assert.Contains(t, out.String(), "answer")
	assert.Contains(t, out.String(), ":quit")
	assert.Contains(t, errOut.String(), "unknown command :bogus")
}

func TestServeFlushesPendingInput(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(&out, &errOut, Options{})
	require.NoError(t, r.Serve(strings.NewReader("DEF f() DO\n  print(1);")))
	assert.Empty(t, out.String())
	assert.NotEmpty(t, errOut.String())
}
