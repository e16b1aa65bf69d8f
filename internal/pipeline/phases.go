package pipeline

import (
	"github.com/Chris-Enlow/PLC-Project/internal/codegen/javagen"
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
	"github.com/Chris-Enlow/PLC-Project/internal/phase"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/analyzer"
	"github.com/Chris-Enlow/PLC-Project/internal/semantics/controlflow"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/fs"
)

// Check lexes, parses and analyzes the unit. Control flow warnings are
// recorded but do not fail the check.
func (p *Pipeline) Check(unit *Unit) error {
	if unit.Phase >= phase.PhaseAnalyzed {
		return nil
	}
	if err := p.Parse(unit); err != nil {
		return err
	}
	if err := analyzer.Analyze(unit.AST, environment.NewBuiltins(p.opts.Output)); err != nil {
		return p.fail(unit, err)
	}
	log.Debug("Analyzed", "run", unit.ID, "file", unit.FilePath)
	if warnings := controlflow.Analyze(unit.FilePath, unit.Content, unit.AST); len(warnings) > 0 {
		p.bag.AddSourceContent(unit.FilePath, unit.Content)
		for _, w := range warnings {
			p.bag.Add(w)
		}
		log.Debug("Control flow warnings", "run", unit.ID, "count", len(warnings))
	}
	return unit.advance(phase.PhaseAnalyzed)
}

// Run checks the unit and evaluates its main method.
func (p *Pipeline) Run(unit *Unit) (environment.Object, error) {
	if err := p.Check(unit); err != nil {
		return environment.NIL, err
	}
	result, err := interpreter.Interpret(unit.AST, environment.NewBuiltins(p.opts.Output),
		interpreter.WithMaxCallDepth(p.opts.MaxCallDepth),
		interpreter.WithLogger(log.New("run", unit.ID)),
	)
	if err != nil {
		return environment.NIL, p.fail(unit, err)
	}
	unit.Result = result
	log.Debug("Interpreted", "run", unit.ID, "result", result)
	return result, unit.advance(phase.PhaseInterpreted)
}

// Generate checks the unit and renders it as Java source.
func (p *Pipeline) Generate(unit *Unit) (string, error) {
	if err := p.Check(unit); err != nil {
		return "", err
	}
	java, err := javagen.Generate(unit.AST, javagen.WithClassName(p.ClassName(unit)))
	if err != nil {
		return "", p.fail(unit, err)
	}
	unit.Java = java
	log.Debug("Generated", "run", unit.ID, "bytes", len(java))
	return java, unit.advance(phase.PhaseGenerated)
}

// ClassName is the configured class name, or one derived from the unit's
// file name.
func (p *Pipeline) ClassName(unit *Unit) string {
	if p.opts.ClassName != "" {
		return p.opts.ClassName
	}
	return fs.ClassName(unit.FilePath, javagen.DefaultClassName)
}
