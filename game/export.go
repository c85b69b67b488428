package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMalformedImport = errors.New("malformed team import")

// TeamExport is the flat, file-shaped form of a roster.
type TeamExport struct {
	Team       []TeamMember `json:"team"`
	ExportedAt time.Time    `json:"exportedAt"`
}

// Serialize returns the occupied members in slot order. Empty slots are
// omitted, so the exported team may be shorter than TeamSize.
func (r *Roster) Serialize() TeamExport {
	return TeamExport{
		Team:       r.Members(),
		ExportedAt: r.now().UTC(),
	}
}

// MarshalExport renders Serialize as indented JSON.
func (r *Roster) MarshalExport() ([]byte, error) {
	return json.MarshalIndent(r.Serialize(), "", "  ")
}

type rawExport struct {
	Team       json.RawMessage `json:"team"`
	ExportedAt *time.Time      `json:"exportedAt"`
}

// ParseExport decodes an export record. It fails with ErrMalformedImport when
// the document is not JSON, team is missing or not an array, or one of the
// first TeamSize entries is not a valid member. Entries past TeamSize are
// never decoded. Null entries are kept as nil so they map to empty slots.
func ParseExport(data []byte) ([]*TeamMember, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	team := bytes.TrimSpace(raw.Team)
	if len(team) == 0 || team[0] != '[' {
		return nil, fmt.Errorf("%w: team is missing or not a list", ErrMalformedImport)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(team, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if len(entries) > TeamSize {
		entries = entries[:TeamSize]
	}

	members := make([]*TeamMember, len(entries))
	for i, entry := range entries {
		var m *TeamMember
		if err := json.Unmarshal(entry, &m); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedImport, i, err)
		}
		if m == nil {
			continue
		}
		if err := m.Pokemon.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedImport, i, err)
		}
		members[i] = m
	}
	return members, nil
}

// Deserialize builds a new roster from an export record. The first TeamSize
// entries fill slots 0..n-1; the rest are dropped.
func Deserialize(data []byte, opts ...RosterOption) (*Roster, error) {
	r := NewRoster(opts...)
	if err := r.Import(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Import replaces the roster contents with an export record. On error the
// roster is left untouched.
func (r *Roster) Import(data []byte) error {
	members, err := ParseExport(data)
	if err != nil {
		return err
	}
	var slots [TeamSize]*TeamMember
	for i, m := range members {
		if m == nil {
			continue
		}
		m.normalize()
		slots[i] = m
	}
	r.slots = slots
	return nil
}
