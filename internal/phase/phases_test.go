package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		current, next UnitPhase
		want          bool
	}{
		{PhaseNotStarted, PhaseLexed, true},
		{PhaseNotStarted, PhaseParsed, false},
		{PhaseLexed, PhaseParsed, true},
		{PhaseParsed, PhaseAnalyzed, true},
		{PhaseParsed, PhaseInterpreted, false},
		{PhaseAnalyzed, PhaseInterpreted, true},
		{PhaseAnalyzed, PhaseGenerated, true},
		{PhaseInterpreted, PhaseGenerated, true},
		{PhaseGenerated, PhaseInterpreted, true},
		{PhaseAnalyzed, PhaseNotStarted, false},
	}
	for _, tt := range tests {
		t.Run(tt.current.String()+"->"+tt.next.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdvance(tt.current, tt.next))
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Analyzed", PhaseAnalyzed.String())
	assert.Equal(t, "Unknown", UnitPhase(42).String())
}
