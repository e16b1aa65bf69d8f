package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

func parse(t *testing.T, input string) *ast.Source {
	t.Helper()
	toks, err := lexer.Lex(input)
	require.NoError(t, err)
	src, err := parser.Parse(toks)
	require.NoError(t, err)
	return src
}

// run analyzes and interprets input, returning main's value and the output.
func run(t *testing.T, input string, opts ...Option) (environment.Object, string, error) {
	t.Helper()
	src := parse(t, input)
	var out bytes.Buffer
	require.NoError(t, analyzer.Analyze(src, environment.NewBuiltins(&out)))
	result, err := Interpret(src, environment.NewBuiltins(&out), opts...)
	return result, out.String(), err
}

// runUnchecked interprets input without analysis, exposing runtime checks.
func runUnchecked(t *testing.T, input string) (environment.Object, string, error) {
	t.Helper()
	var out bytes.Buffer
	result, err := Interpret(parse(t, input), environment.NewBuiltins(&out))
	return result, out.String(), err
}

func program(body string) string {
	return "DEF main(): Integer DO\n" + body + "\nRETURN 0;\nEND"
}

func TestWhileLoop(t *testing.T) {
	result, _, err := run(t, "DEF main(): Integer DO LET i = 0; WHILE i < 3 DO i = i + 1; END RETURN i; END")
	require.NoError(t, err)
	assert.Equal(t, types.INTEGER, result.Type())
	assert.Equal(t, "3", result.String())
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
	}{
		{"hello world", program(`print("Hello, World!");`), "Hello, World!\n"},
		{"fields are defined in order", "LET a = 1; LET b: Integer = a + 1;\n" + program("print(b);"), "2\n"},
		{"recursion", `
DEF fact(n: Integer): Integer DO
    IF n <= 1 DO RETURN 1; ELSE RETURN n * fact(n - 1); END
END
DEF main(): Integer DO print(fact(20)); RETURN 0; END`, "2432902008176640000\n"},
		{"mutual recursion", `
DEF main(): Integer DO print(even(7)); RETURN 0; END
DEF even(n: Integer): Boolean DO IF n == 0 DO RETURN TRUE; END RETURN odd(n - 1); END
DEF odd(n: Integer): Boolean DO IF n == 0 DO RETURN FALSE; END RETURN even(n - 1); END`, "false\n"},
		{"for loop", program("FOR (LET i = 0; i < 3; i = i + 1) LET sq = i * i; print(sq); END"), "0\n1\n4\n"},
		{"for with outer counter", program("LET i = 5; FOR (; i > 3;) print(i); i = i - 1; END"), "5\n4\n"},
		{"if else", program(`IF 1 > 2 DO print("then"); ELSE print("else"); END`), "else\n"},
		{"nested return unwinds loops", `
DEF find(): Integer DO
    LET i = 0;
    WHILE TRUE DO
        IF i == 4 DO RETURN i * 10; END
        i = i + 1;
    END
END
DEF main(): Integer DO print(find()); RETURN 0; END`, "40\n"},
		{"methods close over fields", `
LET counter = 0;
DEF bump(): Integer DO counter = counter + 1; RETURN counter; END
DEF main(): Integer DO bump(); bump(); print(counter); RETURN 0; END`, "2\n"},
		{"shadowing", program(`LET x = 1; IF TRUE DO LET x = "inner"; print(x); END print(x);`), "inner\n1\n"},
		{"concatenation", program(`print("a" + 1 + 'c' + NIL + TRUE);`), "a1cnulltrue\n"},
		{"integer division truncates", program("print(-7 / 2);"), "-3\n"},
		{"integer power", program("print(2 ^ 62);"), "4611686018427387904\n"},
		{"decimal division rounds half even", program("print(10.0 / 3.0); print(1.0 / 0.4);"), "3.3\n2.5\n"},
		{"decimal product keeps scale", program("print(1.5 * 2.0);"), "3.00\n"},
		{"decimal power", program("print(1.5 ^ 2);"), "2.25\n"},
		{"decimal sum", program("print(0.1 + 0.2);"), "0.3\n"},
		{"comparisons", program(`print(1 < 2); print("b" >= "a"); print('a' > 'b'); print(2.50 <= 2.5);`), "true\ntrue\nfalse\ntrue\n"},
		{"decimal equality ignores scale", program("print(1.0 == 1.00);"), "true\n"},
		{"inequality", program(`print("a" != "a"); print(1 != 2); print('a' == 'a');`), "false\ntrue\ntrue\n"},
		{"string members", program(`LET s = "héllo"; print(s.slice(1, 3)); print(s.length());`), "él\n5\n"},
		{"logical operators", program("print(TRUE && FALSE); print(FALSE || TRUE);"), "false\ntrue\n"},
		{"group", program("print((1 + 2) * 3);"), "9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := run(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.output, output)
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// boom is never defined; evaluating it would fail.
	_, output, err := runUnchecked(t, program(`print(FALSE && boom()); print(TRUE || boom());`))
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\n", output)
}

func TestMainResult(t *testing.T) {
	result, _, err := run(t, "DEF main(): Integer DO RETURN 6 * 7; END")
	require.NoError(t, err)
	assert.Equal(t, "42", result.String())

	result, _, err = runUnchecked(t, "DEF main() DO END")
	require.NoError(t, err)
	assert.True(t, result.IsNil())
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"integer division by zero", program("print(1 / 0);"), "division by zero"},
		{"decimal division by zero", program("print(1.0 / 0.0);"), "division by zero"},
		{"negative exponent", program("print(2 ^ -1);"), "negative exponent"},
		{"mixed numeric kinds", program("print(1 + 1.0);"), "expected type Integer, received Decimal"},
		{"string arithmetic", program(`print("a" - 1);`), "must be Integer or Decimal"},
		{"non boolean condition", program("IF 1 DO print(1); END"), "expected type Boolean, received Integer"},
		{"non boolean logical operand", program("print(TRUE && 1);"), "expected type Boolean, received Integer"},
		{"comparison of mixed kinds", program("print(1 < 1.0);"), "expected type Integer, received Decimal"},
		{"comparison with nil", program("print(NIL < 1);"), "comparable"},
		{"undefined variable", program("print(x);"), "undefined variable 'x'"},
		{"undefined function", program("f();"), "undefined function 'f/0'"},
		{"slice out of range", program(`print("abc".slice(1, 9));`), "out of range"},
		{"unknown method", program(`print("abc".upper());`), "undefined method"},
		{"missing main", "DEF f() DO END", "main/0"},
		{"redefinition at runtime", program("FOR (LET i = 0; i < 1; i = i + 1) END FOR (LET i = 0; i < 1; i = i + 1) END"), "already defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runUnchecked(t, tt.input)
			var runtimeErr *RuntimeError
			require.True(t, errors.As(err, &runtimeErr), "expected RuntimeError, got %v", err)
			assert.Contains(t, runtimeErr.Message, tt.contains)
		})
	}
}

func TestMaxCallDepth(t *testing.T) {
	_, _, err := run(t, "DEF main(): Integer DO RETURN main(); END", WithMaxCallDepth(50))
	var runtimeErr *RuntimeError
	require.True(t, errors.As(err, &runtimeErr))
	assert.Equal(t, "maximum call depth exceeded", runtimeErr.Message)
	assert.Equal(t, CallDepthExceeded, runtimeErr.Kind)

	result, _, err := run(t, `
DEF down(n: Integer): Integer DO IF n == 0 DO RETURN 0; END RETURN down(n - 1); END
DEF main(): Integer DO RETURN down(48); END`, WithMaxCallDepth(50))
	require.NoError(t, err)
	assert.Equal(t, "0", result.String())
}

func TestHostPanicIsRecovered(t *testing.T) {
	builtins := environment.NewBuiltins(&bytes.Buffer{})
	require.NoError(t, builtins.DefineFunction(environment.NewFunction("explode", nil, types.NIL,
		func([]environment.Object) (environment.Object, error) {
			panic("boom")
		})))

	_, err := Interpret(parse(t, program("explode();")), builtins)
	var runtimeErr *RuntimeError
	require.True(t, errors.As(err, &runtimeErr))
	assert.Contains(t, runtimeErr.Message, "boom")
}

func TestIncrementalExecution(t *testing.T) {
	var out bytes.Buffer
	in := New(environment.NewBuiltins(&out))

	toks, err := lexer.Lex("LET x = 2;")
	require.NoError(t, err)
	decl, err := parser.ParseStatement(toks)
	require.NoError(t, err)
	require.NoError(t, in.Execute(decl))

	toks, err = lexer.Lex("x * 21")
	require.NoError(t, err)
	expr, err := parser.ParseExpression(toks)
	require.NoError(t, err)
	value, err := in.Evaluate(expr)
	require.NoError(t, err)
	assert.Equal(t, "42", value.String())

	toks, err = lexer.Lex("RETURN 1;")
	require.NoError(t, err)
	ret, err := parser.ParseStatement(toks)
	require.NoError(t, err)
	assert.Error(t, in.Execute(ret))
}

func TestForIncrementRunsInEnclosingScope(t *testing.T) {
	result, output, err := run(t, `
DEF main(): Integer DO
    LET count = 0;
    FOR (LET i = 0; i < 3 && count < 10; i = i + 1)
        LET i = 100;
        count = count + 1;
        print(i);
    END
    RETURN count;
END`)
	require.NoError(t, err)
	assert.Equal(t, "3", result.String())
	assert.Equal(t, "100\n100\n100\n", output)
}

func TestParametersKeepDeclaredTypes(t *testing.T) {
	src := parse(t, `
DEF scale(n: Integer, factor: Decimal, label): Integer DO inspect(); RETURN n; END
DEF main(): Integer DO RETURN scale(1, 2.0, "x"); END`)

	var in *Interpreter
	var seen []types.Type
	builtins := environment.NewBuiltins(&bytes.Buffer{})
	require.NoError(t, builtins.DefineFunction(environment.NewFunction("inspect", nil, types.NIL,
		func([]environment.Object) (environment.Object, error) {
			for _, name := range []string{"n", "factor", "label"} {
				v, ok := in.Scope().LookupVariable(name)
				if !ok {
					return environment.NIL, errors.New("missing parameter " + name)
				}
				seen = append(seen, v.Type)
			}
			return environment.NIL, nil
		})))

	require.NoError(t, analyzer.Analyze(src, builtins))
	in = New(builtins)
	result, err := in.Run(src)
	require.NoError(t, err)
	assert.Equal(t, "1", result.String())
	assert.Equal(t, []types.Type{types.INTEGER, types.DECIMAL, types.ANY}, seen)
}
