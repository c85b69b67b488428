package types

import (
	"fmt"
	"math"
	"strconv"
)

// Multiplier is an exact damage multiplier. Every chart entry is 0 or a power
// of two, so a value is either immune or 2^exp, and products stay exact.
type Multiplier struct {
	immune bool
	exp    int8
}

var (
	Immune  = Multiplier{immune: true}
	Quarter = Multiplier{exp: -2}
	Half    = Multiplier{exp: -1}
	Neutral = Multiplier{}
	Double  = Multiplier{exp: 1}
	Quad    = Multiplier{exp: 2}
)

// Mul returns m*o. Immunity absorbs everything.
func (m Multiplier) Mul(o Multiplier) Multiplier {
	if m.immune || o.immune {
		return Immune
	}
	return Multiplier{exp: m.exp + o.exp}
}

func (m Multiplier) Float64() float64 {
	if m.immune {
		return 0
	}
	return math.Ldexp(1, int(m.exp))
}

func (m Multiplier) IsImmune() bool   { return m.immune }
func (m Multiplier) IsSuper() bool    { return !m.immune && m.exp > 0 }
func (m Multiplier) IsResisted() bool { return !m.immune && m.exp < 0 }
func (m Multiplier) IsNeutral() bool  { return !m.immune && m.exp == 0 }

func (m Multiplier) String() string {
	return strconv.FormatFloat(m.Float64(), 'f', -1, 64)
}

func (m Multiplier) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts 0 or a power of two.
func (m *Multiplier) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("multiplier: %w", err)
	}
	if v == 0 {
		*m = Immune
		return nil
	}
	frac, exp := math.Frexp(v)
	if frac != 0.5 || exp-1 < math.MinInt8 || exp-1 > math.MaxInt8 {
		return fmt.Errorf("multiplier: %v is not a power of two", v)
	}
	*m = Multiplier{exp: int8(exp - 1)}
	return nil
}

// multiplierOf converts a base chart literal. Only 0, 0.5, 1 and 2 appear.
func multiplierOf(v float64) Multiplier {
	switch v {
	case 0:
		return Immune
	case 0.5:
		return Half
	case 2:
		return Double
	default:
		return Neutral
	}
}
