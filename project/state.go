// SPDX-License-Identifier: EPL-2.0

package project

import "sort"

// State is a whole project. Engine operations treat it as a value: they
// return a new State and leave the one passed in untouched.
type State struct {
	Files map[string]*FileRecord
	Tapes map[Color]*Tape
}

// NewState returns six empty tapes.
func NewState() *State {
	st := &State{
		Files: make(map[string]*FileRecord),
		Tapes: make(map[Color]*Tape, len(Colors)),
	}
	for _, c := range Colors {
		st.Tapes[c] = newTape(c)
	}
	return st
}

func newTape(c Color) *Tape {
	t := &Tape{Color: c}
	for i := range t.Slots {
		t.Slots[i].ID = i + 1
	}
	return t
}

// Clone deep-copies records and tapes. Artifacts are shared.
func (s *State) Clone() *State {
	out := &State{
		Files: make(map[string]*FileRecord, len(s.Files)),
		Tapes: make(map[Color]*Tape, len(Colors)),
	}
	for id, f := range s.Files {
		out.Files[id] = f.clone()
	}
	for _, c := range Colors {
		if t, ok := s.Tapes[c]; ok && t != nil {
			cp := *t
			cp.Color = c
			out.Tapes[c] = &cp
		} else {
			out.Tapes[c] = newTape(c)
		}
	}
	return out
}

// slot returns a pointer into the tape; loc must be valid.
func (s *State) slot(loc Location) *Slot {
	return &s.Tapes[loc.Color].Slots[loc.Slot-1]
}

// FileAt returns the id in loc, or "" for an empty or invalid location.
func (s *State) FileAt(loc Location) string {
	if !loc.Valid() {
		return ""
	}
	t, ok := s.Tapes[loc.Color]
	if !ok || t == nil {
		return ""
	}
	return t.Slots[loc.Slot-1].FileID
}

// Placements lists every slot holding fileID in tape order, then slot order.
func (s *State) Placements(fileID string) []Location {
	var out []Location
	s.eachSlot(func(loc Location, sl *Slot) {
		if sl.FileID == fileID && fileID != "" {
			out = append(out, loc)
		}
	})
	return out
}

// IsPlaced reports whether any slot holds fileID.
func (s *State) IsPlaced(fileID string) bool {
	return len(s.Placements(fileID)) > 0
}

// FreeSlot is the lowest empty slot on the tape.
func (s *State) FreeSlot(c Color) (Location, bool) {
	t, ok := s.Tapes[c]
	if !ok || t == nil {
		return Location{}, false
	}
	for i, sl := range t.Slots {
		if sl.FileID == "" {
			return Location{Color: c, Slot: i + 1}, true
		}
	}
	return Location{}, false
}

// Duplicates maps every file placed in two or more slots to its locations.
// It is derived from the grid on every call.
func (s *State) Duplicates() map[string][]Location {
	seen := make(map[string][]Location)
	s.eachSlot(func(loc Location, sl *Slot) {
		if sl.FileID != "" {
			seen[sl.FileID] = append(seen[sl.FileID], loc)
		}
	})

	out := make(map[string][]Location)
	for id, locs := range seen {
		if len(locs) > 1 {
			out[id] = locs
		}
	}
	return out
}

// Pool lists the ids of files placed nowhere, sorted by display name.
func (s *State) Pool() []string {
	var out []string
	for id := range s.Files {
		if !s.IsPlaced(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := s.Files[out[i]], s.Files[out[j]]
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.ID < b.ID
	})
	return out
}

func (s *State) eachSlot(fn func(Location, *Slot)) {
	for _, c := range Colors {
		t, ok := s.Tapes[c]
		if !ok || t == nil {
			continue
		}
		for i := range t.Slots {
			fn(Location{Color: c, Slot: i + 1}, &t.Slots[i])
		}
	}
}

// clearFile empties every slot holding fileID except those in keep.
func (s *State) clearFile(fileID string, keep ...Location) {
	s.eachSlot(func(loc Location, sl *Slot) {
		if sl.FileID != fileID {
			return
		}
		for _, k := range keep {
			if k == loc {
				return
			}
		}
		sl.FileID = ""
	})
}
