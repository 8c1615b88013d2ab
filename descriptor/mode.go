package descriptor

import (
	"fmt"
	"strings"
)

// Mode selects the objective and the mode-specific constraints.
type Mode int

const (
	// BudgetedMaxCoverage (A) maximises covered items under a total tag budget.
	BudgetedMaxCoverage Mode = iota + 1
	// MinTagsForCoverage (B) minimises tags used while covering ≥ η items.
	MinTagsForCoverage
	// ClusterCappedMaxCoverage (C) maximises covered items with at most α
	// tags per cluster and ≥ η items covered.
	ClusterCappedMaxCoverage
)

// String returns the CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case BudgetedMaxCoverage:
		return "max"
	case MinTagsForCoverage:
		return "min"
	case ClusterCappedMaxCoverage:
		return "capped"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Letter returns "A", "B" or "C".
func (m Mode) Letter() string {
	switch m {
	case BudgetedMaxCoverage:
		return "A"
	case MinTagsForCoverage:
		return "B"
	case ClusterCappedMaxCoverage:
		return "C"
	default:
		return "?"
	}
}

// Maximize reports whether the mode maximises coverage.
func (m Mode) Maximize() bool { return m != MinTagsForCoverage }

// ParseMode accepts max/A, min/B and capped/C in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "a":
		return BudgetedMaxCoverage, nil
	case "min", "b":
		return MinTagsForCoverage, nil
	case "capped", "c":
		return ClusterCappedMaxCoverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Params are the caller-supplied mode parameters.
//
//	Mode A: Budget (0 ⇒ N); Threshold and ClusterCap must be 0.
//	Mode B: Threshold;       Budget and ClusterCap must be 0.
//	Mode C: ClusterCap (0 ⇒ N) and Threshold; Budget must be 0.
type Params struct {
	Mode       Mode
	Budget     int // B
	Threshold  int // η
	ClusterCap int // α
}

// Validate checks the parameters against the mode table. It never looks at
// the data, so it can run before any variable exists.
func (p Params) Validate() error {
	switch p.Mode {
	case BudgetedMaxCoverage, MinTagsForCoverage, ClusterCappedMaxCoverage:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(p.Mode))
	}
	if p.Budget < 0 || p.Threshold < 0 || p.ClusterCap < 0 {
		return fmt.Errorf("%w: budget=%d threshold=%d cap=%d", ErrNegativeParameter, p.Budget, p.Threshold, p.ClusterCap)
	}

	switch {
	case p.Mode == BudgetedMaxCoverage && p.Threshold != 0:
		return fmt.Errorf("%w: mode %s requires threshold 0", ErrInconsistentObjectiveParameters, p.Mode)
	case p.Mode == BudgetedMaxCoverage && p.ClusterCap != 0:
		return fmt.Errorf("%w: mode %s requires cap 0", ErrInconsistentObjectiveParameters, p.Mode)
	case p.Mode == MinTagsForCoverage && p.Budget != 0:
		return fmt.Errorf("%w: mode %s requires budget 0", ErrInconsistentObjectiveParameters, p.Mode)
	case p.Mode == MinTagsForCoverage && p.ClusterCap != 0:
		return fmt.Errorf("%w: mode %s requires cap 0", ErrInconsistentObjectiveParameters, p.Mode)
	case p.Mode == ClusterCappedMaxCoverage && p.Budget != 0:
		return fmt.Errorf("%w: mode %s requires budget 0", ErrInconsistentObjectiveParameters, p.Mode)
	}

	return nil
}
