package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"github.com/Chris-Enlow/PLC-Project/internal/diagnostics"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/fs"
)

var log = log15.New("module", "pipeline")

type Options struct {
	// Output receives print output of interpreted programs.
	Output io.Writer
	// MaxCallDepth bounds recursion in the interpreter; zero keeps the default.
	MaxCallDepth int
	// ClassName names generated Java classes; empty derives it from the file.
	ClassName string
	// DebugOutput, when set, receives spew dumps of every parsed tree.
	DebugOutput io.Writer
}

// Pipeline drives units through lexing, parsing, analysis, and then
// interpretation or generation, collecting failures as diagnostics.
type Pipeline struct {
	opts   Options
	bag    *diagnostics.DiagnosticBag
	dumps  spew.ConfigState
	dumpMu sync.Mutex
}

func New(opts Options) *Pipeline {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Pipeline{
		opts: opts,
		bag:  diagnostics.NewDiagnosticBag(),
		dumps: spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

func (p *Pipeline) Diagnostics() *diagnostics.DiagnosticBag {
	return p.bag
}

// Load reads path into a new unit.
func (p *Pipeline) Load(path string) (*Unit, error) {
	if !fs.IsValidFile(path) {
		err := fmt.Errorf("cannot read %s: not a regular file", path)
		p.bag.Add(diagnostics.FromError(path, "", err))
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		p.bag.Add(diagnostics.FromError(path, "", err))
		return nil, err
	}
	unit := NewUnit(path, string(content))
	log.Debug("Loaded source", "run", unit.ID, "file", path, "bytes", len(content))
	return unit, nil
}

// fail records err against unit and returns it unchanged.
func (p *Pipeline) fail(unit *Unit, err error) error {
	diag := p.bag.AddError(unit.FilePath, unit.Content, err)
	log.Debug("Stage failed", "run", unit.ID, "phase", unit.Phase, "code", diag.Code, "err", err)
	return err
}

// CheckFiles loads and analyzes every path concurrently. A failing file does
// not stop the others; the first error is returned once all are done.
func (p *Pipeline) CheckFiles(ctx context.Context, paths []string) ([]*Unit, error) {
	units := make([]*Unit, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, err := p.Load(path)
			if err != nil {
				return err
			}
			units[i] = unit
			return p.Check(unit)
		})
	}
	return units, g.Wait()
}
