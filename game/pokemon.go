package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"team-planner/types"
)

type LearnMethod string

const (
	LearnLevelUp LearnMethod = "level-up"
	LearnMachine LearnMethod = "machine"
	LearnTutor   LearnMethod = "tutor"
	LearnEgg     LearnMethod = "egg"
	LearnOther   LearnMethod = "other"
)

// ParseLearnMethod folds anything unrecognised into LearnOther.
func ParseLearnMethod(s string) LearnMethod {
	switch m := LearnMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case LearnLevelUp, LearnMachine, LearnTutor, LearnEgg:
		return m
	default:
		return LearnOther
	}
}

func (m *LearnMethod) UnmarshalText(b []byte) error {
	*m = ParseLearnMethod(string(b))
	return nil
}

type Move struct {
	Name         string      `json:"name"`
	Type         types.Type  `json:"type"`
	Power        *int        `json:"power,omitempty"` // nil for status moves
	DamageClass  string      `json:"damageClass,omitempty"`
	LearnMethod  LearnMethod `json:"learnMethod,omitempty"`
	LevelLearned int         `json:"levelLearned,omitempty"`
}

var ErrInvalidMove = errors.New("invalid move")

// UnmarshalJSON requires an explicit type, since the zero Type is Normal.
// A missing learn method decodes as LearnOther.
func (m *Move) UnmarshalJSON(b []byte) error {
	type plain Move
	aux := struct {
		*plain
		Type *types.Type `json:"type"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Type == nil {
		return fmt.Errorf("%w: %q has no type", ErrInvalidMove, m.Name)
	}
	m.Type = *aux.Type
	if m.LearnMethod == "" {
		m.LearnMethod = LearnOther
	}
	return nil
}

// IsStatus reports whether the move deals no direct damage.
func (m Move) IsStatus() bool {
	return m.Power == nil || m.DamageClass == "status"
}

type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

type Sprites struct {
	Front string `json:"front,omitempty"`
	Shiny string `json:"shiny,omitempty"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Pokemon is a species snapshot as handed over by the data layer. IDs above
// the national dex range mark regional, mega and gmax variants.
type Pokemon struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Types     []types.Type `json:"types"`
	Stats     []Stat       `json:"stats,omitempty"`
	Sprites   Sprites      `json:"sprites"`
	Abilities []Ability    `json:"abilities,omitempty"`
	Height    int          `json:"height"`
	Weight    int          `json:"weight"`
}

var ErrInvalidPokemon = errors.New("invalid pokemon")

// Validate checks the shape the coverage engine depends on.
func (p Pokemon) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPokemon)
	}
	if len(p.Types) < 1 || len(p.Types) > 2 {
		return fmt.Errorf("%w: %s has %d types", ErrInvalidPokemon, p.Name, len(p.Types))
	}
	for _, t := range p.Types {
		if !t.Valid() {
			return fmt.Errorf("%w: %s has type %s", ErrInvalidPokemon, p.Name, t)
		}
	}
	if len(p.Types) == 2 && p.Types[0] == p.Types[1] {
		return fmt.Errorf("%w: %s lists %s twice", ErrInvalidPokemon, p.Name, p.Types[0])
	}
	return nil
}

func (p Pokemon) StatTotal() int {
	total := 0
	for _, s := range p.Stats {
		total += s.Base
	}
	return total
}

// Stat returns the base value of the named stat, or 0.
func (p Pokemon) Stat(name string) int {
	for _, s := range p.Stats {
		if s.Name == name {
			return s.Base
		}
	}
	return 0
}

type Item struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// holdableCategories mirrors the item categories offered in the held item picker.
var holdableCategories = map[string]bool{
	"held-items":       true,
	"choice":           true,
	"effort-training":  true,
	"bad-held-items":   true,
	"training":         true,
	"plates":           true,
	"species-specific": true,
	"type-enhancement": true,
	"stat-boosts":      true,
	"damage":           true,
	"healing":          true,
	"pp-recovery":      true,
	"revival":          true,
	"status-cures":     true,
	"other":            true,
	"in-a-pinch":       true,
	"picky-healing":    true,
}

// IsHoldable reports whether items of this category can be given to a
// team member. Uncategorised items are allowed.
func (i Item) IsHoldable() bool {
	if i.Category == "" {
		return true
	}
	return holdableCategories[i.Category]
}
