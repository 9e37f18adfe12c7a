package analysis

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/sim"
)

// Series returns one column of frames by its name in sim.Columns.
func Series(frames []sim.Frame, column string) ([]float64, error) {
	idx := -1
	for i, c := range sim.Columns {
		if c == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("analysis: unknown column %q", column)
	}

	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.Values()[idx]
	}
	return out, nil
}
