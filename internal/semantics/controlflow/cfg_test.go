package controlflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-Enlow/PLC-Project/internal/diagnostics"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
)

func parse(t *testing.T, text string) *ast.Source {
	t.Helper()
	toks, err := lexer.Lex(text)
	require.NoError(t, err)
	src, err := parser.Parse(toks)
	require.NoError(t, err)
	return src
}

func codes(diags []*diagnostics.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"straight return", "DEF f(): Integer DO RETURN 1; END", []string{}},
		{"no return type", "DEF f() DO print(1); END", []string{}},
		{"nil return type", "DEF f(): Nil DO print(1); END", []string{}},
		{"missing return", "DEF f(): Integer DO print(1); END", []string{diagnostics.WarnMissingReturn}},
		{"both branches return", "DEF f(b: Boolean): Integer DO IF b DO RETURN 1; ELSE RETURN 2; END END", []string{}},
		{"if without else", "DEF f(b: Boolean): Integer DO IF b DO RETURN 1; END END", []string{diagnostics.WarnMissingReturn}},
		{"return after if", "DEF f(b: Boolean): Integer DO IF b DO RETURN 1; END RETURN 2; END", []string{}},
		{"loop may not run", "DEF f(): Integer DO WHILE TRUE DO RETURN 1; END END", []string{diagnostics.WarnMissingReturn}},
		{"code after return", "DEF f() DO RETURN NIL; print(1); print(2); END", []string{diagnostics.WarnUnreachableCode}},
		{"code after full if", "DEF f(b: Boolean): Integer DO IF b DO RETURN 1; ELSE RETURN 2; END print(3); END",
			[]string{diagnostics.WarnUnreachableCode}},
		{"unreachable in loop body", "DEF f() DO FOR (; TRUE; ) RETURN NIL; print(1); END END", []string{diagnostics.WarnUnreachableCode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze("f.plc", tt.text, parse(t, tt.text))
			assert.Equal(t, tt.want, codes(got))
			for _, d := range got {
				assert.Equal(t, diagnostics.Warning, d.Severity)
			}
		})
	}
}

func TestUnreachableSpan(t *testing.T) {
	text := "DEF f() DO\n  RETURN NIL;\n  print(1);\n  print(2);\nEND"
	got := Analyze("f.plc", text, parse(t, text))
	require.Len(t, got, 1)

	label, ok := got[0].Primary()
	require.True(t, ok)
	assert.Equal(t, 3, label.Location.Start.Line)
	assert.Equal(t, 4, label.Location.End.Line)
}

func TestMissingReturnBranches(t *testing.T) {
	text := `DEF f(a: Boolean, b: Boolean): Integer DO
  IF a DO
    RETURN 1;
  ELSE
    IF b DO
      RETURN 2;
    END
  END
END`
	got := Analyze("f.plc", text, parse(t, text))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "method 'f'")

	var secondary []string
	for _, label := range got[0].Labels {
		if label.Style == diagnostics.Secondary {
			secondary = append(secondary, label.Message)
		}
	}
	assert.Contains(t, secondary, "ELSE branch at line 2 can finish without RETURN")
	assert.Contains(t, secondary, "ELSE branch at line 5 can finish without RETURN")
}
