package parser

import (
	"team-planner/coverage"
	"team-planner/game"
)

// Reply is the state snapshot sent back after every protocol line.
type Reply struct {
	OK       bool               `json:"ok"`
	Error    string             `json:"error,omitempty"`
	Roster   []*game.TeamMember `json:"roster"`
	Coverage coverage.Result    `json:"coverage"`
}

// Snapshot captures r slot by slot, so empty slots come back as null.
func Snapshot(r *game.Roster, err error, opts ...coverage.Option) Reply {
	rep := Reply{
		OK:       err == nil,
		Roster:   make([]*game.TeamMember, r.Len()),
		Coverage: coverage.Aggregate(r, opts...),
	}
	if err != nil {
		rep.Error = err.Error()
	}
	for i := range rep.Roster {
		if m := r.Slot(i); m != nil {
			cp := *m
			cp.Moves = append([]game.Move(nil), m.Moves...)
			rep.Roster[i] = &cp
		}
	}
	return rep
}
