package compiler

import (
	"io"
	"os"

	"github.com/Chris-Enlow/PLC-Project/internal/codegen/javagen"
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/pipeline"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/fs"
)

type Mode int

const (
	ModeCheck Mode = iota
	ModeRun
	ModeGenerate
)

func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeRun:
		return "run"
	case ModeGenerate:
		return "gen"
	default:
		return "unknown"
	}
}

// Options for a single compilation.
type Options struct {
	// For file-based compilation
	EntryFile string
	// For in-memory compilation; EntryFile then only names the unit
	Code string
	Mode Mode
	// Config supplies interpreter and generator settings; nil uses defaults.
	Config *Config
	// Output receives program print output in ModeRun; nil is os.Stdout.
	Output io.Writer
	// OutputDir, in ModeGenerate, is where <Class>.java is written. Empty
	// keeps the source only in Result.Java.
	OutputDir string
	// Debug dumps the parsed tree to DebugOutput (os.Stderr when nil).
	Debug       bool
	DebugOutput io.Writer
}

// Result of compilation
type Result struct {
	Success bool
	// Output holds rendered diagnostics, empty when there are none.
	Output   string
	Warnings int
	Value    environment.Object
	Java     string
	// JavaFile is set when the generated source was written to disk.
	JavaFile string
}

// Compile runs one unit through the mode's stages.
func Compile(opts *Options) Result {
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	pipeOpts := pipeline.Options{
		Output:       opts.Output,
		MaxCallDepth: cfg.Interpreter.MaxCallDepth,
		ClassName:    cfg.Generator.ClassName,
	}
	if opts.Debug {
		pipeOpts.DebugOutput = opts.DebugOutput
		if pipeOpts.DebugOutput == nil {
			pipeOpts.DebugOutput = os.Stderr
		}
	}
	p := pipeline.New(pipeOpts)

	var (
		unit *pipeline.Unit
		err  error
	)
	if opts.Code != "" || opts.EntryFile == "" {
		name := opts.EntryFile
		if name == "" {
			name = "<input>"
		}
		unit = pipeline.NewUnit(name, opts.Code)
	} else {
		unit, err = p.Load(opts.EntryFile)
	}

	result := Result{Value: environment.NIL}
	if err == nil {
		switch opts.Mode {
		case ModeRun:
			result.Value, err = p.Run(unit)
		case ModeGenerate:
			result.Java, err = p.Generate(unit)
			if err == nil && opts.OutputDir != "" {
				className := p.ClassName(unit)
				result.JavaFile = fs.JavaOutputPath(opts.OutputDir, className)
				err = javagen.GenerateFile(unit.AST, result.JavaFile, javagen.WithClassName(className))
			}
		default:
			err = p.Check(unit)
		}
	}

	result.Warnings = p.Diagnostics().WarningCount()
	if len(p.Diagnostics().Diagnostics()) > 0 {
		result.Output = p.Diagnostics().EmitAllToString()
	} else if err != nil {
		result.Output = err.Error() + "\n"
	}
	result.Success = err == nil
	return result
}
