package data

import (
	"sort"

	"team-planner/game"
)

// Learnset groups a species' moves the way the move picker shows them.
type Learnset struct {
	LevelUp []game.Move `json:"levelUp"`
	Machine []game.Move `json:"machine"`
	Tutor   []game.Move `json:"tutor"`
	Egg     []game.Move `json:"egg"`
	Other   []game.Move `json:"other"`
}

// All flattens the groups in display order.
func (l Learnset) All() []game.Move {
	out := make([]game.Move, 0, len(l.LevelUp)+len(l.Machine)+len(l.Tutor)+len(l.Egg)+len(l.Other))
	for _, group := range [][]game.Move{l.LevelUp, l.Machine, l.Tutor, l.Egg, l.Other} {
		out = append(out, group...)
	}
	return out
}

// Learnset resolves the species' move references against the move table.
// References to unknown moves are skipped.
func (d *Dex) Learnset(species string) (Learnset, error) {
	p, err := d.Species(species)
	if err != nil {
		return Learnset{}, err
	}
	refs := d.learnsets[slug(p.Name)]
	moves := make([]game.Move, 0, len(refs))
	for _, ref := range refs {
		mv, err := d.Move(ref.Name)
		if err != nil {
			continue
		}
		mv.LearnMethod = game.ParseLearnMethod(ref.Method)
		mv.LevelLearned = ref.Level
		moves = append(moves, mv)
	}
	return Categorize(moves), nil
}

// Categorize buckets moves by learn method. Level-up moves are ordered by
// level, every other group alphabetically.
func Categorize(moves []game.Move) Learnset {
	l := Learnset{
		LevelUp: []game.Move{},
		Machine: []game.Move{},
		Tutor:   []game.Move{},
		Egg:     []game.Move{},
		Other:   []game.Move{},
	}
	for _, mv := range moves {
		switch mv.LearnMethod {
		case game.LearnLevelUp:
			l.LevelUp = append(l.LevelUp, mv)
		case game.LearnMachine:
			l.Machine = append(l.Machine, mv)
		case game.LearnTutor:
			l.Tutor = append(l.Tutor, mv)
		case game.LearnEgg:
			l.Egg = append(l.Egg, mv)
		default:
			l.Other = append(l.Other, mv)
		}
	}

	sort.SliceStable(l.LevelUp, func(i, j int) bool { return l.LevelUp[i].LevelLearned < l.LevelUp[j].LevelLearned })
	byName := func(ms []game.Move) {
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	}
	byName(l.Machine)
	byName(l.Tutor)
	byName(l.Egg)
	byName(l.Other)
	return l
}
