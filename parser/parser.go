package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"team-planner/game"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")
	ErrNotHoldable    = errors.New("item cannot be held")
)

// Catalog is the lookup surface the protocol needs. *data.Dex satisfies it.
type Catalog interface {
	Species(name string) (game.Pokemon, error)
	Move(name string) (game.Move, error)
	Item(name string) (game.Item, error)
}

// LineError ties a failure to the protocol line that caused it.
type LineError struct {
	Line string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("parser: %q: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ParseLog builds a fresh roster from a newline-separated script. Every line
// is applied even when earlier ones fail; the failures come back joined.
func ParseLog(cat Catalog, logText string) (*game.Roster, error) {
	r := game.NewRoster()
	var errs []error
	for _, line := range strings.Split(logText, "\n") {
		if err := ProcessLine(r, cat, line); err != nil {
			errs = append(errs, err)
		}
	}
	return r, errors.Join(errs...)
}

// ProcessLine applies one "|command|slot|arg" line to r. "|import|<json>"
// replaces the roster with an export record. Blank lines are ignored. Moves that do not fit (full list, duplicate, empty slot) are
// dropped without an error.
func ProcessLine(r *game.Roster, cat Catalog, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fail := func(err error) error { return &LineError{Line: line, Err: err} }

	parts := strings.Split(line, "|")
	if len(parts) < 2 || parts[0] != "" {
		return fail(ErrUnknownCommand)
	}

	cmd := strings.ToLower(parts[1])
	switch cmd {
	case "clear":
		r.Clear()
		return nil
	case "import":
		if len(parts) < 3 {
			return fail(ErrMissingArgs)
		}
		if err := r.Import([]byte(strings.Join(parts[2:], "|"))); err != nil {
			return fail(err)
		}
		return nil
	case "assign", "move", "unmove", "nature", "item", "nick", "remove":
	default:
		return fail(fmt.Errorf("%w: %s", ErrUnknownCommand, parts[1]))
	}

	if len(parts) < 3 {
		return fail(ErrMissingArgs)
	}
	slot, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return fail(fmt.Errorf("%w: %q", game.ErrInvalidSlot, parts[2]))
	}
	if cmd == "remove" {
		if err := r.Remove(slot); err != nil {
			return fail(err)
		}
		return nil
	}

	if len(parts) < 4 {
		return fail(ErrMissingArgs)
	}
	// Nicknames may contain the separator.
	arg := strings.Join(parts[3:], "|")
	if cmd != "nick" {
		arg = strings.TrimSpace(arg)
	}

	switch cmd {
	case "assign":
		p, err := cat.Species(arg)
		if err != nil {
			return fail(err)
		}
		if _, err := r.Assign(slot, p); err != nil {
			return fail(err)
		}
	case "move":
		if err := checkSlot(slot); err != nil {
			return fail(err)
		}
		mv, err := cat.Move(arg)
		if err != nil {
			return fail(err)
		}
		r.AddMove(slot, mv)
	case "unmove":
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return fail(fmt.Errorf("move index %q: %w", arg, err))
		}
		if err := checkSlot(slot); err != nil {
			return fail(err)
		}
		r.RemoveMove(slot, idx)
	case "nature":
		n := game.Nature(strings.ToLower(arg))
		if err := r.Update(slot, game.MemberPatch{Nature: &n}); err != nil {
			return fail(err)
		}
	case "item":
		patch := game.MemberPatch{ClearItem: strings.EqualFold(arg, "none")}
		if !patch.ClearItem {
			it, err := cat.Item(arg)
			if err != nil {
				return fail(err)
			}
			if !it.IsHoldable() {
				return fail(fmt.Errorf("%w: %s", ErrNotHoldable, it.Name))
			}
			patch.HeldItem = &it
		}
		if err := r.Update(slot, patch); err != nil {
			return fail(err)
		}
	case "nick":
		if err := r.Update(slot, game.MemberPatch{Nickname: &arg}); err != nil {
			return fail(err)
		}
	}
	return nil
}

func checkSlot(i int) error {
	if i < 0 || i >= game.TeamSize {
		return fmt.Errorf("%w: %d", game.ErrInvalidSlot, i)
	}
	return nil
}
