package pivotality

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// Model selects how the chance that every third candidate loses is folded
// into a pair's pivotality.
type Model int

const (
	// RivalProduct multiplies winner[i,k]*winner[j,k] over every third
	// candidate k: each other candidate loses to both i and j.
	RivalProduct Model = iota
	// MinorProduct multiplies every entry of the winner matrix left after
	// deleting row i and column j.
	MinorProduct
)

func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rival":
		return RivalProduct, nil
	case "minor":
		return MinorProduct, nil
	default:
		return 0, xerrors.Errorf("unknown pivotality model %q", name)
	}
}

func (m Model) String() string {
	switch m {
	case RivalProduct:
		return "rival"
	case MinorProduct:
		return "minor"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}
