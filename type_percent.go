package smartwallet

import "fmt"

// Percent is a 0–100 relative value, used for behavioral-tag chart widths and
// for the backend's financial scores (budget adherence, impulse buying).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

// Clamped returns the percent bounded to [0, 100].
func (p Percent) Clamped() Percent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
