// Package coverage folds a roster into team-wide offensive and defensive
// type coverage. Everything here is a pure function of its inputs; callers
// decide when to recompute.
package coverage

import (
	"team-planner/game"
	"team-planner/types"
)

type options struct {
	excludeStatus bool
}

type Option func(*options)

// ExcludeStatusMoves stops moves without power from counting toward the
// offensive tally. By default every move counts on type alone.
func ExcludeStatusMoves(exclude bool) Option {
	return func(o *options) { o.excludeStatus = exclude }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Defense lists, for one attacking type, which members are weak to it,
// resist it, or are immune to it. The slices are never nil.
type Defense struct {
	Weaknesses  []string `json:"weaknesses"`
	Resistances []string `json:"resistances"`
	Immunities  []string `json:"immunities"`
}

type Result struct {
	// Offensive counts, per defending type, the moves across the roster that
	// hit it super effectively.
	Offensive map[types.Type]int `json:"offensive"`
	// Defensive is keyed by attacking type.
	Defensive map[types.Type]Defense `json:"defensive"`
	// Members is the number of members folded in.
	Members int `json:"members"`
}

func newResult() Result {
	r := Result{
		Offensive: make(map[types.Type]int, types.NumTypes),
		Defensive: make(map[types.Type]Defense, types.NumTypes),
	}
	for _, t := range types.All {
		r.Offensive[t] = 0
		r.Defensive[t] = Defense{Weaknesses: []string{}, Resistances: []string{}, Immunities: []string{}}
	}
	return r
}

// Tally counts, for every defending type, how many of moves are super
// effective against it.
func Tally(moves []game.Move, opts ...Option) map[types.Type]int {
	o := buildOptions(opts)
	out := make(map[types.Type]int, types.NumTypes)
	for _, def := range types.All {
		n := 0
		for _, mv := range moves {
			if o.excludeStatus && mv.IsStatus() {
				continue
			}
			if types.Effectiveness(mv.Type, def).IsSuper() {
				n++
			}
		}
		out[def] = n
	}
	return out
}

// Aggregate computes the coverage of the occupied slots of r, in slot order.
func Aggregate(r *game.Roster, opts ...Option) Result {
	return AggregateMembers(r.Members(), opts...)
}

// AggregateMembers folds members in the given order.
func AggregateMembers(members []game.TeamMember, opts ...Option) Result {
	res := newResult()
	for _, m := range members {
		for t, n := range Tally(m.Moves, opts...) {
			res.Offensive[t] += n
		}
	}
	for _, m := range members {
		name := m.DisplayName()
		for _, atk := range types.All {
			d := res.Defensive[atk]
			switch types.Classify(types.Combined(atk, m.Pokemon.Types)) {
			case types.ClassWeakness:
				d.Weaknesses = append(d.Weaknesses, name)
			case types.ClassResistance:
				d.Resistances = append(d.Resistances, name)
			case types.ClassImmunity:
				d.Immunities = append(d.Immunities, name)
			}
			res.Defensive[atk] = d
		}
	}
	res.Members = len(members)
	return res
}

// Empty reports whether no members were folded into r.
func (r Result) Empty() bool { return r.Members == 0 }

// MaxOffensive is the largest offensive count, never less than 1, for
// scaling bars.
func (r Result) MaxOffensive() int {
	top := 1
	for _, n := range r.Offensive {
		if n > top {
			top = n
		}
	}
	return top
}

// Uncovered returns, in canonical order, the types no move hits super effectively.
func (r Result) Uncovered() []types.Type {
	var out []types.Type
	for _, t := range types.All {
		if r.Offensive[t] == 0 {
			out = append(out, t)
		}
	}
	return out
}

// SharedWeaknesses returns the attacking types at least n members are weak to.
func (r Result) SharedWeaknesses(n int) []types.Type {
	var out []types.Type
	for _, t := range types.All {
		if len(r.Defensive[t].Weaknesses) >= n {
			out = append(out, t)
		}
	}
	return out
}
