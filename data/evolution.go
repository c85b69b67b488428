package data

import (
	"fmt"
	"strings"

	"team-planner/game"
	"team-planner/types"
)

// EvolutionDetails is the condition attached to the link into a stage.
type EvolutionDetails struct {
	Trigger            string `json:"trigger,omitempty" yaml:"trigger" toml:"trigger"`
	MinLevel           int    `json:"minLevel,omitempty" yaml:"min_level" toml:"min_level"`
	Item               string `json:"item,omitempty" yaml:"item" toml:"item"`
	HeldItem           string `json:"heldItem,omitempty" yaml:"held_item" toml:"held_item"`
	TimeOfDay          string `json:"timeOfDay,omitempty" yaml:"time_of_day" toml:"time_of_day"`
	Location           string `json:"location,omitempty" yaml:"location" toml:"location"`
	MinHappiness       int    `json:"minHappiness,omitempty" yaml:"min_happiness" toml:"min_happiness"`
	MinBeauty          int    `json:"minBeauty,omitempty" yaml:"min_beauty" toml:"min_beauty"`
	MinAffection       int    `json:"minAffection,omitempty" yaml:"min_affection" toml:"min_affection"`
	NeedsOverworldRain bool   `json:"needsOverworldRain,omitempty" yaml:"needs_overworld_rain" toml:"needs_overworld_rain"`
	TurnUpsideDown     bool   `json:"turnUpsideDown,omitempty" yaml:"turn_upside_down" toml:"turn_upside_down"`
	TradeSpecies       string `json:"tradeSpecies,omitempty" yaml:"trade_species" toml:"trade_species"`
	KnownMove          string `json:"knownMove,omitempty" yaml:"known_move" toml:"known_move"`
	KnownMoveType      string `json:"knownMoveType,omitempty" yaml:"known_move_type" toml:"known_move_type"`
	PartySpecies       string `json:"partySpecies,omitempty" yaml:"party_species" toml:"party_species"`
	PartyType          string `json:"partyType,omitempty" yaml:"party_type" toml:"party_type"`
	// 1 attack above defense, -1 below, 0 equal. Nil when it does not matter.
	RelativePhysicalStats *int `json:"relativePhysicalStats,omitempty" yaml:"relative_physical_stats" toml:"relative_physical_stats"`
}

func words(s string) string { return strings.ReplaceAll(s, "-", " ") }

// Requirement renders the details as a short comma separated sentence.
// A nil receiver is the base stage and yields "".
func (e *EvolutionDetails) Requirement() string {
	if e == nil {
		return ""
	}
	var reqs []string
	if e.MinLevel > 0 {
		reqs = append(reqs, fmt.Sprintf("Level %d", e.MinLevel))
	}
	if e.Item != "" {
		reqs = append(reqs, "Use "+words(e.Item))
	}
	if e.HeldItem != "" {
		reqs = append(reqs, "Hold "+words(e.HeldItem))
	}
	if e.TimeOfDay != "" {
		reqs = append(reqs, e.TimeOfDay+" time")
	}
	if e.Location != "" {
		reqs = append(reqs, "At "+words(e.Location))
	}
	if e.MinHappiness > 0 {
		reqs = append(reqs, fmt.Sprintf("Happiness %d+", e.MinHappiness))
	}
	if e.MinBeauty > 0 {
		reqs = append(reqs, fmt.Sprintf("Beauty %d+", e.MinBeauty))
	}
	if e.MinAffection > 0 {
		reqs = append(reqs, fmt.Sprintf("Affection %d+", e.MinAffection))
	}
	if e.NeedsOverworldRain {
		reqs = append(reqs, "During rain")
	}
	if e.TurnUpsideDown {
		reqs = append(reqs, "Turn console upside down")
	}
	if e.TradeSpecies != "" {
		reqs = append(reqs, "Trade for "+e.TradeSpecies)
	}
	switch e.Trigger {
	case "trade":
		reqs = append(reqs, "Trade")
	case "use-item":
		reqs = append(reqs, "Use item")
	}
	if e.KnownMove != "" {
		reqs = append(reqs, "Know "+words(e.KnownMove))
	}
	if e.KnownMoveType != "" {
		reqs = append(reqs, "Know "+e.KnownMoveType+" move")
	}
	if e.PartySpecies != "" {
		reqs = append(reqs, e.PartySpecies+" in party")
	}
	if e.PartyType != "" {
		reqs = append(reqs, e.PartyType+" type in party")
	}
	if e.RelativePhysicalStats != nil {
		switch *e.RelativePhysicalStats {
		case 1:
			reqs = append(reqs, "Attack > Defense")
		case -1:
			reqs = append(reqs, "Defense > Attack")
		case 0:
			reqs = append(reqs, "Attack = Defense")
		}
	}
	if len(reqs) == 0 {
		return "Unknown requirement"
	}
	return strings.Join(reqs, ", ")
}

// RawChainLink is one node of an evolution tree as stored in the dex file.
type RawChainLink struct {
	Species   string            `json:"species" yaml:"species" toml:"species"`
	Details   *EvolutionDetails `json:"details" yaml:"details" toml:"details"`
	EvolvesTo []RawChainLink    `json:"evolvesTo" yaml:"evolves_to" toml:"evolves_to"`
}

type EvolutionStage struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Types       []types.Type      `json:"types"`
	Sprite      string            `json:"sprite,omitempty"`
	Details     *EvolutionDetails `json:"details,omitempty"`
	Requirement string            `json:"requirement,omitempty"`
}

func newStage(p game.Pokemon, details *EvolutionDetails) EvolutionStage {
	return EvolutionStage{
		ID:          p.ID,
		Name:        p.Name,
		Types:       p.Types,
		Sprite:      p.Sprites.Front,
		Details:     details,
		Requirement: details.Requirement(),
	}
}

// indexChains maps every species slug to the chain it belongs to.
func (d *Dex) indexChains(chains []RawChainLink) error {
	var walk func(i int, link RawChainLink) error
	walk = func(i int, link RawChainLink) error {
		s := slug(link.Species)
		if s == "" {
			return fmt.Errorf("data: evolution chain %d: empty species", i)
		}
		if prev, ok := d.chainOf[s]; ok {
			return fmt.Errorf("data: %s is in evolution chains %d and %d", link.Species, prev, i)
		}
		d.chainOf[s] = i
		for _, next := range link.EvolvesTo {
			if err := walk(i, next); err != nil {
				return err
			}
		}
		return nil
	}
	for i, c := range chains {
		if err := walk(i, c); err != nil {
			return err
		}
	}
	d.chains = chains
	return nil
}

// EvolutionChain returns the species' whole family, depth first from the
// root, so branches follow their parent. Stages whose species is not in the
// dex are skipped but their evolutions are still visited. A species with no
// chain is a family of one.
func (d *Dex) EvolutionChain(species string) ([]EvolutionStage, error) {
	p, err := d.Species(species)
	if err != nil {
		return nil, err
	}
	i, ok := d.chainOf[slug(p.Name)]
	if !ok {
		return []EvolutionStage{newStage(p, nil)}, nil
	}

	var out []EvolutionStage
	var walk func(link RawChainLink)
	walk = func(link RawChainLink) {
		if mon, ok := d.species[slug(link.Species)]; ok {
			out = append(out, newStage(mon, link.Details))
		}
		for _, next := range link.EvolvesTo {
			walk(next)
		}
	}
	walk(d.chains[i])
	return out, nil
}
