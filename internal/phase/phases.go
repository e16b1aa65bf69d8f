package phase

// UnitPhase tracks how far a single source unit has progressed.
//
// Progression is sequential:
// NotStarted -> Lexed -> Parsed -> Analyzed -> {Interpreted, Generated}
// Interpreted and Generated both require Analyzed; a unit may reach either
// or both, in any order.
type UnitPhase int

const (
	PhaseNotStarted  UnitPhase = iota // source loaded
	PhaseLexed                        // tokens produced
	PhaseParsed                       // AST built
	PhaseAnalyzed                     // types and bindings resolved
	PhaseInterpreted                  // main evaluated
	PhaseGenerated                    // Java source emitted
)

// PhasePrerequisites maps each phase to the phase a unit must have reached
// before entering it.
var PhasePrerequisites = map[UnitPhase]UnitPhase{
	PhaseLexed:       PhaseNotStarted,
	PhaseParsed:      PhaseLexed,
	PhaseAnalyzed:    PhaseParsed,
	PhaseInterpreted: PhaseAnalyzed,
	PhaseGenerated:   PhaseAnalyzed,
}

func (p UnitPhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseLexed:
		return "Lexed"
	case PhaseParsed:
		return "Parsed"
	case PhaseAnalyzed:
		return "Analyzed"
	case PhaseInterpreted:
		return "Interpreted"
	case PhaseGenerated:
		return "Generated"
	default:
		return "Unknown"
	}
}

// CanAdvance reports whether a unit at current may move to next.
func CanAdvance(current, next UnitPhase) bool {
	required, ok := PhasePrerequisites[next]
	if !ok {
		return false
	}
	return current >= required
}
