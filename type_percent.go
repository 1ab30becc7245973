package fundsim

import "fmt"

// Percent is a percentage value, e.g. 10.5 for 10.5%.
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

// Rate returns the percentage as a plain ratio (10.5% -> 0.105).
func (p Percent) Rate() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
