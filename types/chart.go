package types

// baseChart lists only the non-neutral pairs, attacking type first.
var baseChart = map[Type]map[Type]float64{
	Normal:   {Rock: 0.5, Ghost: 0, Steel: 0.5},
	Fire:     {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Rock: 0.5, Dragon: 0.5, Steel: 2},
	Water:    {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {Water: 2, Electric: 0.5, Grass: 0.5, Ground: 0, Flying: 2, Dragon: 0.5},
	Grass: {
		Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2,
		Flying: 0.5, Bug: 0.5, Rock: 2, Dragon: 0.5, Steel: 0.5,
	},
	Ice: {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2, Steel: 0.5},
	Fighting: {
		Normal: 2, Ice: 2, Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5,
		Rock: 2, Ghost: 0, Dark: 2, Steel: 2, Fairy: 0.5,
	},
	Poison:  {Grass: 2, Poison: 0.5, Ground: 0.5, Rock: 0.5, Ghost: 0.5, Steel: 0, Fairy: 2},
	Ground:  {Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Flying: 0, Bug: 0.5, Rock: 2, Steel: 2},
	Flying:  {Electric: 0.5, Grass: 2, Ice: 0.5, Fighting: 2, Bug: 2, Rock: 0.5, Steel: 0.5},
	Psychic: {Fighting: 2, Poison: 2, Psychic: 0.5, Dark: 0, Steel: 0.5},
	Bug: {
		Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 0.5, Flying: 0.5,
		Psychic: 2, Ghost: 0.5, Dark: 2, Steel: 0.5, Fairy: 0.5,
	},
	Rock:   {Fire: 2, Ice: 2, Fighting: 0.5, Ground: 0.5, Flying: 2, Bug: 2, Steel: 0.5},
	Ghost:  {Normal: 0, Psychic: 2, Ghost: 2, Dark: 0.5},
	Dragon: {Dragon: 2, Steel: 0.5, Fairy: 0},
	Dark:   {Fighting: 0.5, Psychic: 2, Ghost: 2, Dark: 0.5, Fairy: 0.5},
	Steel:  {Fire: 0.5, Water: 0.5, Electric: 0.5, Ice: 2, Rock: 2, Steel: 0.5, Fairy: 2},
	Fairy:  {Fire: 0.5, Fighting: 2, Poison: 0.5, Dragon: 2, Dark: 2, Steel: 0.5},
}

// chart is the dense form of baseChart, filled with Neutral. Read-only after init.
var chart = func() (c [NumTypes][NumTypes]Multiplier) {
	for atk, row := range baseChart {
		for def, v := range row {
			c[atk][def] = multiplierOf(v)
		}
	}
	return c
}()

// Effectiveness returns the multiplier of an attack of type atk against a
// single defending type. Both arguments must be valid types.
func Effectiveness(atk, def Type) Multiplier {
	return chart[atk][def]
}

// Combined multiplies the effectiveness of atk against every defending type.
func Combined(atk Type, defenders []Type) Multiplier {
	m := Neutral
	for _, def := range defenders {
		m = m.Mul(chart[atk][def])
	}
	return m
}

// Class buckets a combined multiplier for coverage reporting.
type Class int

const (
	ClassNeutral Class = iota
	ClassWeakness
	ClassResistance
	ClassImmunity
)

func (c Class) String() string {
	switch c {
	case ClassWeakness:
		return "weakness"
	case ClassResistance:
		return "resistance"
	case ClassImmunity:
		return "immunity"
	default:
		return "neutral"
	}
}

// Classify maps >1 to a weakness, (0,1) to a resistance and 0 to an immunity.
func Classify(m Multiplier) Class {
	switch {
	case m.IsImmune():
		return ClassImmunity
	case m.IsSuper():
		return ClassWeakness
	case m.IsResisted():
		return ClassResistance
	default:
		return ClassNeutral
	}
}
