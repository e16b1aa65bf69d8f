package tokens

import (
	"fmt"
	"io"

	mapset "github.com/deckarep/golang-set"

	"github.com/Chris-Enlow/PLC-Project/colors"
)

type TOKEN string

const (
	IDENTIFIER TOKEN = "IDENTIFIER"
	INTEGER    TOKEN = "INTEGER"
	DECIMAL    TOKEN = "DECIMAL"
	CHARACTER  TOKEN = "CHARACTER"
	STRING     TOKEN = "STRING"
	OPERATOR   TOKEN = "OPERATOR"
)

// Keywords are ordinary IDENTIFIER tokens; the parser matches them by literal.
const (
	LET_KEYWORD    = "LET"
	CONST_KEYWORD  = "CONST"
	DEF_KEYWORD    = "DEF"
	DO_KEYWORD     = "DO"
	END_KEYWORD    = "END"
	IF_KEYWORD     = "IF"
	ELSE_KEYWORD   = "ELSE"
	FOR_KEYWORD    = "FOR"
	WHILE_KEYWORD  = "WHILE"
	RETURN_KEYWORD = "RETURN"
	NIL_KEYWORD    = "NIL"
	TRUE_KEYWORD   = "TRUE"
	FALSE_KEYWORD  = "FALSE"
)

var keywords = mapset.NewSet(
	LET_KEYWORD, CONST_KEYWORD, DEF_KEYWORD, DO_KEYWORD, END_KEYWORD,
	IF_KEYWORD, ELSE_KEYWORD, FOR_KEYWORD, WHILE_KEYWORD, RETURN_KEYWORD,
	NIL_KEYWORD, TRUE_KEYWORD, FALSE_KEYWORD,
)

// blockOpeners are the keywords whose construct is closed by END.
var blockOpeners = mapset.NewSet(DEF_KEYWORD, IF_KEYWORD, FOR_KEYWORD, WHILE_KEYWORD)

func IsKeyword(literal string) bool {
	return keywords.Contains(literal)
}

// OpensBlock reports whether the keyword starts a construct terminated by END.
func OpensBlock(literal string) bool {
	return blockOpeners.Contains(literal)
}

// Token is an immutable lexeme: its kind, the literal text exactly as written,
// and the byte offset where it starts.
type Token struct {
	Kind    TOKEN
	Literal string
	Index   int
}

func NewToken(kind TOKEN, literal string, index int) Token {
	return Token{
		Kind:    kind,
		Literal: literal,
		Index:   index,
	}
}

// Is reports whether the token is an IDENTIFIER or OPERATOR with the given literal.
func (t Token) Is(literal string) bool {
	return (t.Kind == IDENTIFIER || t.Kind == OPERATOR) && t.Literal == literal
}

// End is the offset just past the token's literal.
func (t Token) End() int {
	return t.Index + len(t.Literal)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q@%d", t.Kind, t.Literal, t.Index)
}

func (t *Token) Debug(w io.Writer, filename string) {
	colors.GREY.Fprintf(w, "%s@%d ", filename, t.Index)
	if IsKeyword(t.Literal) && t.Kind == IDENTIFIER {
		colors.PURPLE.Fprintf(w, "%q\n", t.Literal)
	} else {
		fmt.Fprintf(w, "%q ('%v')\n", t.Literal, t.Kind)
	}
}
