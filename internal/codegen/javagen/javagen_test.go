package javagen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
)

func analyzed(t *testing.T, input string) *ast.Source {
	t.Helper()
	toks, err := lexer.Lex(input)
	require.NoError(t, err)
	src, err := parser.Parse(toks)
	require.NoError(t, err)
	require.NoError(t, analyzer.Analyze(src, environment.NewBuiltins(&strings.Builder{})))
	return src
}

func generate(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	out, err := Generate(analyzed(t, input), opts...)
	require.NoError(t, err)
	return out
}

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

func TestGenerateEntryPoint(t *testing.T) {
	out := generate(t, "DEF main(): Integer DO RETURN 0; END")
	assert.Equal(t, lines(
		"public class Main {",
		"",
		"    public static void main(String[] args) {",
		"        System.exit(new Main().main());",
		"    }",
		"",
		"    int main() {",
		"        return 0;",
		"    }",
		"",
		"}",
	), out)
}

func TestGenerateHelloWorld(t *testing.T) {
	out := generate(t, `LET CONST greeting: String = "Hello, World!"; LET count = 1;
DEF main(): Integer DO print(greeting); RETURN 0; END`, WithClassName("Hello"))
	assert.Equal(t, lines(
		"public class Hello {",
		"",
		`    final String greeting = "Hello, World!";`,
		"    int count = 1;",
		"",
		"    public static void main(String[] args) {",
		"        System.exit(new Hello().main());",
		"    }",
		"",
		"    int main() {",
		"        System.out.println(greeting);",
		"        return 0;",
		"    }",
		"",
		"}",
	), out)
}

func TestGenerateMethods(t *testing.T) {
	out := generate(t, `
DEF area(w: Decimal, h: Decimal): Decimal DO RETURN w * h; END
DEF log(message) DO print(message); END
DEF nothing(): Nil DO RETURN NIL; END
DEF main(): Integer DO RETURN 0; END`)
	assert.Contains(t, out, lines(
		"    double area(double w, double h) {",
		"        return w * h;",
		"    }",
	))
	assert.Contains(t, out, lines(
		"    Object log(Object message) {",
		"        System.out.println(message);",
		"        return null;",
		"    }",
	))
	assert.Contains(t, out, "    void nothing() {\n        return;\n    }")
}

func TestGenerateReturnTypes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{
			"omitted return type is Object",
			"DEF f() DO RETURN 1; END",
			lines(
				"    Object f() {",
				"        return 1;",
				"    }",
			),
		},
		{
			"Any falls through with null",
			"DEF f(flag: Boolean): Any DO IF flag DO RETURN 1; END END",
			lines(
				"    Object f(boolean flag) {",
				"        if (flag) {",
				"            return 1;",
				"        }",
				"        return null;",
				"    }",
			),
		},
		{
			"both branches return",
			"DEF f(flag: Boolean) DO IF flag DO RETURN 1; ELSE RETURN 2; END END",
			lines(
				"    Object f(boolean flag) {",
				"        if (flag) {",
				"            return 1;",
				"        } else {",
				"            return 2;",
				"        }",
				"    }",
			),
		},
		{
			"endless loop",
			"DEF f() DO WHILE TRUE DO RETURN 1; END END",
			lines(
				"    Object f() {",
				"        while (true) {",
				"            return 1;",
				"        }",
				"    }",
			),
		},
		{
			"Nil returns drop the value",
			"DEF f(): Nil DO print(1); RETURN NIL; END",
			lines(
				"    void f() {",
				"        System.out.println(1);",
				"        return;",
				"    }",
			),
		},
		{
			"Nil return keeps the call",
			"DEF f(): Nil DO RETURN print(1); END",
			lines(
				"    void f() {",
				"        System.out.println(1); return;",
				"    }",
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generate(t, tt.method+"\nDEF main(): Integer DO RETURN 0; END")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGenerateStatements(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"declaration with inferred type",
			"LET x = 1.5;",
			"        double x = 1.5;",
		},
		{
			"declaration with declared type",
			"LET s: String;",
			"        String s;",
		},
		{
			"assignment",
			"LET n = 1; n = n + 2;",
			"        n = n + 2;",
		},
		{
			"if else",
			"IF 1 < 2 DO print(1); ELSE print(2); END",
			lines(
				"        if (1 < 2) {",
				"            System.out.println(1);",
				"        } else {",
				"            System.out.println(2);",
				"        }",
			),
		},
		{
			"for header",
			"FOR (LET i = 0; i < 3; i = i + 1) print(i); END",
			lines(
				"        for ( int i = 0; i < 3; i = i + 1 ) {",
				"            System.out.println(i);",
				"        }",
			),
		},
		{
			"for without init or increment",
			"LET i = 0; FOR (; i < 3;) i = i + 1; END",
			lines(
				"        for ( ; i < 3; ) {",
				"            i = i + 1;",
				"        }",
			),
		},
		{
			"empty while",
			"WHILE FALSE DO END",
			"        while (false) {}",
		},
		{
			"nested while",
			"LET i = 0; WHILE i < 2 DO IF TRUE DO i = i + 1; END END",
			lines(
				"        while (i < 2) {",
				"            if (true) {",
				"                i = i + 1;",
				"            }",
				"        }",
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generate(t, "DEF main(): Integer DO\n"+tt.body+"\nRETURN 0; END")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"string escapes", `"say \"hi\"\n"`, `"say \"hi\"\n"`},
		{"character", `'\''`, `'\''`},
		{"nil", "NIL", "null"},
		{"booleans", "TRUE && FALSE", "true && false"},
		{"decimal keeps scale", "1.50", "1.50"},
		{"group", "(1 + 2) * 3", "(1 + 2) * 3"},
		{"integer power casts", "2 ^ 3", "(int) Math.pow(2, 3)"},
		{"decimal power", "1.5 ^ 2", "Math.pow(1.5, 2)"},
		{"member call", `"hello".slice(1, 3)`, `"hello".substring(1, 3)`},
		{"member without arguments", `"hello".length()`, `"hello".length()`},
		{"concatenation", `"a" + 'b' + 1`, `"a" + 'b' + 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generate(t, "DEF main(): Integer DO print("+tt.expr+"); RETURN 0; END")
			assert.Contains(t, out, "System.out.println("+tt.want+");")
		})
	}
}

func TestGenerateRequiresAnalysis(t *testing.T) {
	toks, err := lexer.Lex("DEF main(): Integer DO RETURN 0; END")
	require.NoError(t, err)
	src, err := parser.Parse(toks)
	require.NoError(t, err)

	_, err = Generate(src)
	var genErr generationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, err.Error(), "main")
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "Main.java")
	require.NoError(t, GenerateFile(analyzed(t, "DEF main(): Integer DO RETURN 0; END"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "public class Main {"))
}
