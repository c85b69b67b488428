package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownNature = errors.New("unknown nature")

type Nature string

// DefaultNature is what a freshly assigned member starts with.
const DefaultNature Nature = "hardy"

type natureEffect struct {
	up, down string
}

// natures in the order the picker lists them. Neutral natures have no effect.
var natures = []struct {
	name   Nature
	effect natureEffect
}{
	{"hardy", natureEffect{}},
	{"lonely", natureEffect{"attack", "defense"}},
	{"brave", natureEffect{"attack", "speed"}},
	{"adamant", natureEffect{"attack", "special-attack"}},
	{"naughty", natureEffect{"attack", "special-defense"}},
	{"bold", natureEffect{"defense", "attack"}},
	{"docile", natureEffect{}},
	{"relaxed", natureEffect{"defense", "speed"}},
	{"impish", natureEffect{"defense", "special-attack"}},
	{"lax", natureEffect{"defense", "special-defense"}},
	{"timid", natureEffect{"speed", "attack"}},
	{"hasty", natureEffect{"speed", "defense"}},
	{"serious", natureEffect{}},
	{"jolly", natureEffect{"speed", "special-attack"}},
	{"naive", natureEffect{"speed", "special-defense"}},
	{"modest", natureEffect{"special-attack", "attack"}},
	{"mild", natureEffect{"special-attack", "defense"}},
	{"quiet", natureEffect{"special-attack", "speed"}},
	{"bashful", natureEffect{}},
	{"rash", natureEffect{"special-attack", "special-defense"}},
	{"calm", natureEffect{"special-defense", "attack"}},
	{"gentle", natureEffect{"special-defense", "defense"}},
	{"sassy", natureEffect{"special-defense", "speed"}},
	{"careful", natureEffect{"special-defense", "special-attack"}},
	{"quirky", natureEffect{}},
}

var natureIndex = func() map[Nature]natureEffect {
	m := make(map[Nature]natureEffect, len(natures))
	for _, n := range natures {
		m[n.name] = n.effect
	}
	return m
}()

// Natures returns all 25 natures in picker order.
func Natures() []Nature {
	out := make([]Nature, len(natures))
	for i, n := range natures {
		out[i] = n.name
	}
	return out
}

func ParseNature(s string) (Nature, error) {
	n := Nature(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNature, s)
	}
	return n, nil
}

func (n Nature) Valid() bool {
	_, ok := natureIndex[n]
	return ok
}

// Effect returns the raised and lowered stat. Both are empty for neutral natures.
func (n Nature) Effect() (up, down string) {
	e := natureIndex[n]
	return e.up, e.down
}
