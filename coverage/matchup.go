package coverage

import "team-planner/types"

type Entry struct {
	Type       types.Type       `json:"type"`
	Multiplier types.Multiplier `json:"multiplier"`
}

// Matchup is the defensive profile of a single type combination.
type Matchup struct {
	Types       []types.Type `json:"types"`
	WeakTo      []Entry      `json:"weakTo"`
	ResistantTo []Entry      `json:"resistantTo"`
	ImmuneTo    []Entry      `json:"immuneTo"`
}

// Matchups classifies every attacking type against defenders.
func Matchups(defenders []types.Type) Matchup {
	m := Matchup{
		Types:       append([]types.Type(nil), defenders...),
		WeakTo:      []Entry{},
		ResistantTo: []Entry{},
		ImmuneTo:    []Entry{},
	}
	for _, atk := range types.All {
		mult := types.Combined(atk, defenders)
		e := Entry{Type: atk, Multiplier: mult}
		switch types.Classify(mult) {
		case types.ClassWeakness:
			m.WeakTo = append(m.WeakTo, e)
		case types.ClassResistance:
			m.ResistantTo = append(m.ResistantTo, e)
		case types.ClassImmunity:
			m.ImmuneTo = append(m.ImmuneTo, e)
		}
	}
	return m
}
