// Package types holds the 18 elemental types and the fixed effectiveness
// chart between them.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by Parse for names outside the enumeration.
var ErrUnknownType = errors.New("unknown type")

// Type is one of the 18 elemental types. The zero value is Normal.
type Type uint8

const (
	Normal Type = iota
	Fire
	Water
	Electric
	Grass
	Ice
	Fighting
	Poison
	Ground
	Flying
	Psychic
	Bug
	Rock
	Ghost
	Dragon
	Dark
	Steel
	Fairy

	// NumTypes is the size of the enumeration.
	NumTypes = int(Fairy) + 1
)

var names = [NumTypes]string{
	"normal", "fire", "water", "electric", "grass", "ice", "fighting", "poison", "ground",
	"flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// All lists every type in canonical order.
var All = func() [NumTypes]Type {
	var out [NumTypes]Type
	for i := range out {
		out[i] = Type(i)
	}
	return out
}()

var byName = func() map[string]Type {
	m := make(map[string]Type, NumTypes)
	for i, n := range names {
		m[n] = Type(i)
	}
	return m
}()

// Parse resolves a type name, ignoring case and surrounding space.
func Parse(name string) (Type, error) {
	t, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// ParseList parses every name in order and stops at the first bad one.
func ParseList(names []string) ([]Type, error) {
	out := make([]Type, 0, len(names))
	for _, n := range names {
		t, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Valid reports whether t is inside the enumeration.
func (t Type) Valid() bool { return int(t) < NumTypes }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return names[t]
}

// MarshalText encodes the type as its lowercase name, which also makes Type
// usable as a JSON object key.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	return []byte(names[t]), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
