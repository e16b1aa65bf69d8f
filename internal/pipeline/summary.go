package pipeline

import (
	"fmt"
	"io"

	"github.com/Chris-Enlow/PLC-Project/colors"
	"github.com/Chris-Enlow/PLC-Project/internal/phase"
	str "github.com/Chris-Enlow/PLC-Project/internal/utils/strings"
)

// PrintSummary writes one line per unit with the phase it reached.
func PrintSummary(w io.Writer, units []*Unit) {
	checked := 0
	for _, unit := range units {
		if unit == nil {
			continue
		}
		if unit.Phase >= phase.PhaseAnalyzed {
			checked++
			colors.GREEN.Fprint(w, "  ok   ")
		} else {
			colors.RED.Fprint(w, "  FAIL ")
		}
		fmt.Fprintf(w, "%s (%s, %d %s)\n", unit.FilePath, unit.Phase,
			len(unit.Tokens), str.Pluralize("token", "tokens", len(unit.Tokens)))
	}
	colors.CYAN.Fprintf(w, "%d of %d %s checked\n", checked, len(units), str.Pluralize("file", "files", len(units)))
}
