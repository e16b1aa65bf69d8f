package lexer

import (
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// LexError reports the first malformed construct in the input.
type LexError struct {
	Message string
	At      int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d: %s", e.At, e.Message)
}

type lexHandler func(lex *Lexer) (tokens.Token, error)

type lexPattern struct {
	start   *regexp.Regexp
	handler lexHandler
}

var (
	whitespacePattern = regexp.MustCompile(`^[ \x08\n\r\t]+`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*`)

	patterns = []lexPattern{
		{regexp.MustCompile(`^[A-Za-z_]`), identifierHandler},
		{regexp.MustCompile(`^[+-]?[0-9]`), numberHandler},
		{regexp.MustCompile(`^'`), characterHandler},
		{regexp.MustCompile(`^"`), stringHandler},
	}

	twoCharOperators = []string{"!=", "==", "<=", ">=", "||", "&&"}
)

type Lexer struct {
	Tokens     []tokens.Token
	Position   source.Position
	sourceCode string
	start      int
}

func New(content string) *Lexer {
	return &Lexer{
		sourceCode: content,
		Tokens:     make([]tokens.Token, 0),
		Position:   source.Start(),
	}
}

// Lex tokenizes the whole input, stopping at the first error.
func Lex(content string) ([]tokens.Token, error) {
	return New(content).Tokenize()
}

func (lex *Lexer) index() int {
	return lex.Position.Index
}

func (lex *Lexer) remainder() string {
	return lex.sourceCode[lex.index():]
}

func (lex *Lexer) atEOF() bool {
	return lex.index() >= len(lex.sourceCode)
}

func (lex *Lexer) has(offset int) bool {
	return lex.index()+offset < len(lex.sourceCode)
}

func (lex *Lexer) at(offset int) byte {
	return lex.sourceCode[lex.index()+offset]
}

func (lex *Lexer) advance(n int) {
	lex.Position.Advance(lex.sourceCode[lex.index() : lex.index()+n])
}

func (lex *Lexer) emit(kind tokens.TOKEN) tokens.Token {
	return tokens.NewToken(kind, lex.sourceCode[lex.start:lex.index()], lex.start)
}

func (lex *Lexer) fail(message string) error {
	return &LexError{Message: message, At: lex.index()}
}

func (lex *Lexer) skipWhitespace() {
	if match := whitespacePattern.FindString(lex.remainder()); match != "" {
		lex.advance(len(match))
	}
}

// Tokenize reads the remaining input into Tokens.
func (lex *Lexer) Tokenize() ([]tokens.Token, error) {
	for {
		lex.skipWhitespace()
		if lex.atEOF() {
			return lex.Tokens, nil
		}
		tok, err := lex.LexToken()
		if err != nil {
			return nil, err
		}
		lex.Tokens = append(lex.Tokens, tok)
	}
}

// LexToken lexes exactly one token starting at the current position. The
// caller is responsible for skipping whitespace first.
func (lex *Lexer) LexToken() (tokens.Token, error) {
	if lex.atEOF() {
		return tokens.Token{}, lex.fail("unexpected end of input")
	}
	lex.start = lex.index()
	rest := lex.remainder()
	for _, pattern := range patterns {
		if pattern.start.MatchString(rest) {
			return pattern.handler(lex)
		}
	}
	return operatorHandler(lex)
}

// Dump writes every token in debug form, one per line.
func Dump(w io.Writer, filename string, toks []tokens.Token) {
	for i := range toks {
		toks[i].Debug(w, filename)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func identifierHandler(lex *Lexer) (tokens.Token, error) {
	lex.advance(len(identifierPattern.FindString(lex.remainder())))
	return lex.emit(tokens.IDENTIFIER), nil
}

func numberHandler(lex *Lexer) (tokens.Token, error) {
	if c := lex.at(0); c == '+' || c == '-' {
		lex.advance(1)
	}
	if lex.at(0) == '0' {
		lex.advance(1)
		if lex.has(0) && isDigit(lex.at(0)) {
			return tokens.Token{}, lex.fail("leading zero in numeric literal")
		}
	} else {
		for lex.has(0) && isDigit(lex.at(0)) {
			lex.advance(1)
		}
	}
	if !lex.has(0) || lex.at(0) != '.' {
		return lex.emit(tokens.INTEGER), nil
	}
	lex.advance(1)
	if !lex.has(0) || !isDigit(lex.at(0)) {
		return tokens.Token{}, lex.fail("missing digits after decimal point")
	}
	for lex.has(0) && isDigit(lex.at(0)) {
		lex.advance(1)
	}
	return lex.emit(tokens.DECIMAL), nil
}

func isEscapable(c byte) bool {
	switch c {
	case '\\', '\'', '"', 'b', 'n', 'r', 't':
		return true
	}
	return false
}

// escape consumes a backslash escape sequence.
func (lex *Lexer) escape() error {
	if !lex.has(1) || !isEscapable(lex.at(1)) {
		lex.advance(1)
		return lex.fail("invalid escape sequence")
	}
	lex.advance(2)
	return nil
}

func characterHandler(lex *Lexer) (tokens.Token, error) {
	lex.advance(1)
	if !lex.has(0) {
		return tokens.Token{}, lex.fail("unterminated character literal")
	}
	switch c := lex.at(0); c {
	case '\'':
		return tokens.Token{}, lex.fail("empty character literal")
	case '\n', '\r':
		return tokens.Token{}, lex.fail("unterminated character literal")
	case '\\':
		if err := lex.escape(); err != nil {
			return tokens.Token{}, err
		}
	default:
		_, size := utf8.DecodeRuneInString(lex.remainder())
		lex.advance(size)
	}
	if !lex.has(0) || lex.at(0) != '\'' {
		return tokens.Token{}, lex.fail("unterminated character literal")
	}
	lex.advance(1)
	return lex.emit(tokens.CHARACTER), nil
}

func stringHandler(lex *Lexer) (tokens.Token, error) {
	lex.advance(1)
	for lex.has(0) {
		switch lex.at(0) {
		case '"':
			lex.advance(1)
			return lex.emit(tokens.STRING), nil
		case '\n', '\r':
			return tokens.Token{}, lex.fail("unterminated string literal")
		case '\\':
			if err := lex.escape(); err != nil {
				return tokens.Token{}, err
			}
		default:
			lex.advance(1)
		}
	}
	return tokens.Token{}, lex.fail("unterminated string literal")
}

func isWordOrSpace(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\v', r == '\f', r == '\r':
		return true
	}
	return false
}

func operatorHandler(lex *Lexer) (tokens.Token, error) {
	rest := lex.remainder()
	for _, op := range twoCharOperators {
		if len(rest) >= 2 && rest[:2] == op {
			lex.advance(2)
			return lex.emit(tokens.OPERATOR), nil
		}
	}
	r, size := utf8.DecodeRuneInString(rest)
	if (r == utf8.RuneError && size <= 1) || isWordOrSpace(r) {
		return tokens.Token{}, lex.fail(fmt.Sprintf("unrecognized character %q", rest[:1]))
	}
	lex.advance(size)
	return lex.emit(tokens.OPERATOR), nil
}
