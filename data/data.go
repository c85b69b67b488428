package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"team-planner/game"
	"team-planner/types"
)

var ErrNotFound = errors.New("not found")

type RawStat struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Base int    `json:"base" yaml:"base" toml:"base"`
}

type RawAbility struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Hidden bool   `json:"hidden" yaml:"hidden" toml:"hidden"`
}

// RawMoveRef is one entry of a species learnset.
type RawMoveRef struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Method string `json:"method" yaml:"method" toml:"method"`
	Level  int    `json:"level" yaml:"level" toml:"level"`
}

type RawPokemonData struct {
	ID        int          `json:"id" yaml:"id" toml:"id"`
	Name      string       `json:"name" yaml:"name" toml:"name"`
	Types     []string     `json:"types" yaml:"types" toml:"types"`
	Stats     []RawStat    `json:"stats" yaml:"stats" toml:"stats"`
	Abilities []RawAbility `json:"abilities" yaml:"abilities" toml:"abilities"`
	Sprite    string       `json:"sprite" yaml:"sprite" toml:"sprite"`
	Shiny     string       `json:"shiny" yaml:"shiny" toml:"shiny"`
	Height    int          `json:"height" yaml:"height" toml:"height"`
	Weight    int          `json:"weight" yaml:"weight" toml:"weight"`
	Moves     []RawMoveRef `json:"moves" yaml:"moves" toml:"moves"`
}

type RawMoveData struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	Power       *int   `json:"power" yaml:"power" toml:"power"`
	DamageClass string `json:"damageClass" yaml:"damage_class" toml:"damage_class"`
}

type RawItemData struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Category string `json:"category" yaml:"category" toml:"category"`
}

// RawDex is the on-disk layout shared by the JSON, YAML and TOML loaders.
type RawDex struct {
	Species    []RawPokemonData `json:"species" yaml:"species" toml:"species"`
	Moves      []RawMoveData    `json:"moves" yaml:"moves" toml:"moves"`
	Items      []RawItemData    `json:"items" yaml:"items" toml:"items"`
	// Evolutions holds one tree per family, rooted at the base stage.
	Evolutions []RawChainLink   `json:"evolutions" yaml:"evolutions" toml:"evolutions"`
}

// Dex is a read-only catalog of species, moves and items keyed by slug.
type Dex struct {
	species   map[string]game.Pokemon
	learnsets map[string][]RawMoveRef
	moves     map[string]game.Move
	items     map[string]game.Item
	chains    []RawChainLink
	chainOf   map[string]int
}

// Load reads a dex file, choosing the decoder from the extension.
func Load(path string) (*Dex, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", path, err)
	}

	var raw RawDex
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(b, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	case ".toml":
		err = toml.Unmarshal(b, &raw)
	default:
		return nil, fmt.Errorf("data: unsupported dex format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("data: parse %s: %w", path, err)
	}
	return FromRaw(raw)
}

// FromRaw validates raw records and builds the catalog.
func FromRaw(raw RawDex) (*Dex, error) {
	d := &Dex{
		species:   make(map[string]game.Pokemon, len(raw.Species)),
		learnsets: make(map[string][]RawMoveRef, len(raw.Species)),
		moves:     make(map[string]game.Move, len(raw.Moves)),
		items:     make(map[string]game.Item, len(raw.Items)),
		chainOf:   make(map[string]int),
	}

	for _, m := range raw.Moves {
		t, err := types.Parse(m.Type)
		if err != nil {
			return nil, fmt.Errorf("data: move %s: %w", m.Name, err)
		}
		d.moves[slug(m.Name)] = game.Move{
			Name:        m.Name,
			Type:        t,
			Power:       m.Power,
			DamageClass: m.DamageClass,
			LearnMethod: game.LearnOther,
		}
	}

	for _, p := range raw.Species {
		ts, err := types.ParseList(p.Types)
		if err != nil {
			return nil, fmt.Errorf("data: species %s: %w", p.Name, err)
		}
		mon := game.Pokemon{
			ID:      p.ID,
			Name:    p.Name,
			Types:   ts,
			Sprites: game.Sprites{Front: p.Sprite, Shiny: p.Shiny},
			Height:  p.Height,
			Weight:  p.Weight,
		}
		for _, s := range p.Stats {
			mon.Stats = append(mon.Stats, game.Stat{Name: s.Name, Base: s.Base})
		}
		for _, a := range p.Abilities {
			mon.Abilities = append(mon.Abilities, game.Ability{Name: a.Name, Hidden: a.Hidden})
		}
		if err := mon.Validate(); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		d.species[slug(p.Name)] = mon
		d.learnsets[slug(p.Name)] = p.Moves
	}

	for _, it := range raw.Items {
		d.items[slug(it.Name)] = game.Item{Name: it.Name, Category: it.Category}
	}
	if err := d.indexChains(raw.Evolutions); err != nil {
		return nil, err
	}
	return d, nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (d *Dex) Species(name string) (game.Pokemon, error) {
	p, ok := d.species[slug(name)]
	if !ok {
		return game.Pokemon{}, fmt.Errorf("data: species %q: %w", name, ErrNotFound)
	}
	return p, nil
}

func (d *Dex) Move(name string) (game.Move, error) {
	m, ok := d.moves[slug(name)]
	if !ok {
		return game.Move{}, fmt.Errorf("data: move %q: %w", name, ErrNotFound)
	}
	return m, nil
}

func (d *Dex) Item(name string) (game.Item, error) {
	it, ok := d.items[slug(name)]
	if !ok {
		return game.Item{}, fmt.Errorf("data: item %q: %w", name, ErrNotFound)
	}
	return it, nil
}

// SpeciesNames lists every species slug, sorted.
func (d *Dex) SpeciesNames() []string {
	out := make([]string, 0, len(d.species))
	for k := range d.species {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HeldItems returns the holdable items sorted by name.
func (d *Dex) HeldItems() []game.Item {
	out := make([]game.Item, 0, len(d.items))
	for _, it := range d.items {
		if it.IsHoldable() {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
