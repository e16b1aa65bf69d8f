package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/phase"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// Unit is one source file moving through the pipeline. Each unit owns its
// tree and scope chains, so distinct units may be processed concurrently.
type Unit struct {
	ID       uuid.UUID
	FilePath string
	Content  string
	Phase    phase.UnitPhase

	Tokens []tokens.Token
	AST    *ast.Source
	Result environment.Object
	Java   string
}

func NewUnit(filePath, content string) *Unit {
	return &Unit{
		ID:       uuid.New(),
		FilePath: filePath,
		Content:  content,
		Phase:    phase.PhaseNotStarted,
	}
}

// advance moves the unit to next, failing if a prerequisite phase was skipped.
func (u *Unit) advance(next phase.UnitPhase) error {
	if !phase.CanAdvance(u.Phase, next) {
		return fmt.Errorf("cannot advance %s from %s to %s", u.FilePath, u.Phase, next)
	}
	if next > u.Phase {
		u.Phase = next
	}
	return nil
}
