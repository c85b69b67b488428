package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// TeamSize is the fixed number of roster slots.
	TeamSize = 6
	// MaxMoves is the per-member move cap.
	MaxMoves = 4
)

var ErrInvalidSlot = errors.New("invalid slot index")

type TeamMember struct {
	ID       string  `json:"id"`
	Pokemon  Pokemon `json:"pokemon"`
	Moves    []Move  `json:"moves"`
	Nature   Nature  `json:"nature"`
	HeldItem *Item   `json:"heldItem"`
	Nickname string  `json:"nickname,omitempty"`
}

// DisplayName is the nickname when one is set, otherwise the species name.
func (m *TeamMember) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.Pokemon.Name
}

// HasMove reports whether a move with this name is already in the list.
func (m *TeamMember) HasMove(name string) bool {
	for _, mv := range m.Moves {
		if mv.Name == name {
			return true
		}
	}
	return false
}

// normalize restores the member invariants on data that did not come through
// AddMove: unique move names, at most MaxMoves, a valid nature and an ID.
func (m *TeamMember) normalize() {
	m.Moves = normalizeMoves(m.Moves)
	if n, err := ParseNature(string(m.Nature)); err == nil {
		m.Nature = n
	} else {
		m.Nature = DefaultNature
	}
	if m.ID == "" {
		m.ID = newMemberID(m.Pokemon)
	}
}

func normalizeMoves(in []Move) []Move {
	out := make([]Move, 0, MaxMoves)
	seen := make(map[string]bool, len(in))
	for _, mv := range in {
		if len(out) == MaxMoves {
			break
		}
		if seen[mv.Name] {
			continue
		}
		seen[mv.Name] = true
		out = append(out, mv)
	}
	return out
}

func newMemberID(p Pokemon) string {
	return fmt.Sprintf("%d-%s", p.ID, uuid.NewString())
}

// MemberPatch carries the fields Update should change. Nil fields are left
// alone. Moves replaces the whole list.
type MemberPatch struct {
	Moves     *[]Move
	Nature    *Nature
	HeldItem  *Item
	ClearItem bool
	Nickname  *string
}

// Roster is the six-slot team. It is not safe for concurrent use; callers keep
// all mutation on one goroutine.
type Roster struct {
	slots [TeamSize]*TeamMember
	now   func() time.Time
}

type RosterOption func(*Roster)

// WithClock overrides the time source used for export timestamps.
func WithClock(now func() time.Time) RosterOption {
	return func(r *Roster) { r.now = now }
}

func NewRoster(opts ...RosterOption) *Roster {
	r := &Roster{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len is always TeamSize.
func (r *Roster) Len() int { return len(r.slots) }

// Count returns the number of occupied slots.
func (r *Roster) Count() int {
	n := 0
	for _, m := range r.slots {
		if m != nil {
			n++
		}
	}
	return n
}

// Slot returns the member in slot i, or nil for empty or out-of-range slots.
func (r *Roster) Slot(i int) *TeamMember {
	if !validSlot(i) {
		return nil
	}
	return r.slots[i]
}

// Members returns copies of the occupied slots in slot order.
func (r *Roster) Members() []TeamMember {
	out := make([]TeamMember, 0, TeamSize)
	for _, m := range r.slots {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// Assign places a fresh member for p into slot i, replacing any occupant.
func (r *Roster) Assign(i int, p Pokemon) (*TeamMember, error) {
	if !validSlot(i) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	m := &TeamMember{
		ID:      newMemberID(p),
		Pokemon: p,
		Moves:   []Move{},
		Nature:  DefaultNature,
	}
	r.slots[i] = m
	return m, nil
}

// Update merges patch into the member in slot i. An empty slot is a no-op.
func (r *Roster) Update(i int, patch MemberPatch) error {
	if !validSlot(i) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	m := r.slots[i]
	if m == nil {
		return nil
	}
	if patch.Nature != nil && !patch.Nature.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownNature, *patch.Nature)
	}

	if patch.Moves != nil {
		m.Moves = normalizeMoves(*patch.Moves)
	}
	if patch.Nature != nil {
		m.Nature = *patch.Nature
	}
	switch {
	case patch.ClearItem:
		m.HeldItem = nil
	case patch.HeldItem != nil:
		item := *patch.HeldItem
		m.HeldItem = &item
	}
	if patch.Nickname != nil {
		m.Nickname = *patch.Nickname
	}
	return nil
}

// AddMove appends mv to the member in slot i. It reports false, and changes
// nothing, when the slot is empty or invalid, the list is full, or a move
// with the same name is already present.
func (r *Roster) AddMove(i int, mv Move) bool {
	m := r.Slot(i)
	if m == nil || len(m.Moves) >= MaxMoves || m.HasMove(mv.Name) {
		return false
	}
	m.Moves = append(m.Moves, mv)
	return true
}

// RemoveMove drops the move at position idx. Out-of-range is a no-op.
func (r *Roster) RemoveMove(i, idx int) bool {
	m := r.Slot(i)
	if m == nil || idx < 0 || idx >= len(m.Moves) {
		return false
	}
	moves := make([]Move, 0, len(m.Moves)-1)
	moves = append(moves, m.Moves[:idx]...)
	m.Moves = append(moves, m.Moves[idx+1:]...)
	return true
}

// Remove empties slot i.
func (r *Roster) Remove(i int) error {
	if !validSlot(i) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	r.slots[i] = nil
	return nil
}

// Clear empties every slot.
func (r *Roster) Clear() {
	r.slots = [TeamSize]*TeamMember{}
}

func validSlot(i int) bool {
	return i >= 0 && i < TeamSize
}
