package pipeline

import (
	"bytes"

	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/parser"
	"github.com/Chris-Enlow/PLC-Project/internal/phase"
)

// Lex tokenizes the unit's content.
func (p *Pipeline) Lex(unit *Unit) error {
	if unit.Phase >= phase.PhaseLexed {
		return nil
	}
	toks, err := lexer.Lex(unit.Content)
	if err != nil {
		return p.fail(unit, err)
	}
	unit.Tokens = toks
	log.Debug("Lexed", "run", unit.ID, "tokens", len(toks))
	return unit.advance(phase.PhaseLexed)
}

// dump writes one tree in a single write so concurrent units do not
// interleave.
func (p *Pipeline) dump(src *ast.Source) {
	var buf bytes.Buffer
	p.dumps.Fdump(&buf, src)
	p.dumpMu.Lock()
	defer p.dumpMu.Unlock()
	if _, err := p.opts.DebugOutput.Write(buf.Bytes()); err != nil {
		log.Warn("Failed to write tree dump", "err", err)
	}
}

// Parse builds the unit's tree, lexing first if needed.
func (p *Pipeline) Parse(unit *Unit) error {
	if unit.Phase >= phase.PhaseParsed {
		return nil
	}
	if err := p.Lex(unit); err != nil {
		return err
	}
	src, err := parser.Parse(unit.Tokens)
	if err != nil {
		return p.fail(unit, err)
	}
	unit.AST = src
	log.Debug("Parsed", "run", unit.ID, "fields", len(src.Fields), "methods", len(src.Methods))
	if p.opts.DebugOutput != nil {
		p.dump(src)
	}
	return unit.advance(phase.PhaseParsed)
}
