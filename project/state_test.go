// SPDX-License-Identifier: EPL-2.0

package project

import "testing"

func TestNewState(t *testing.T) {
	t.Parallel()

	st := NewState()
	if len(st.Tapes) != 6 || len(st.Files) != 0 {
		t.Fatalf("NewState() = %d tapes, %d files", len(st.Tapes), len(st.Files))
	}
	for _, c := range Colors {
		tape := st.Tapes[c]
		if tape.Color != c {
			t.Errorf("tape %s has color %s", c, tape.Color)
		}
		for i, sl := range tape.Slots {
			if sl.ID != i+1 || sl.FileID != "" {
				t.Errorf("tape %s slot %d = %+v", c, i, sl)
			}
		}
	}
}

func TestState_CloneIsDeep(t *testing.T) {
	t.Parallel()

	st := NewState()
	addFile(st, "a", "kick")
	place(st, "a", loc(Blue, 1))

	cp := st.Clone()
	cp.slot(loc(Blue, 1)).FileID = ""
	cp.Files["a"].DisplayName = "snare"
	cp.Files["a"].Versions[0].Description = "changed"
	delete(cp.Files, "a")

	if st.FileAt(loc(Blue, 1)) != "a" {
		t.Error("clearing a slot in the clone changed the original")
	}
	f, ok := st.Files["a"]
	if !ok || f.DisplayName != "kick" || f.Versions[0].Description != DescOriginalUpload {
		t.Errorf("original record changed: %+v", f)
	}
}

func TestState_CloneRepairsMissingTapes(t *testing.T) {
	t.Parallel()

	st := &State{Files: map[string]*FileRecord{}, Tapes: map[Color]*Tape{}}
	cp := st.Clone()
	if len(cp.Tapes) != 6 {
		t.Errorf("Clone() has %d tapes, want 6", len(cp.Tapes))
	}
}

func TestState_PlacementsAndDuplicates(t *testing.T) {
	t.Parallel()

	st := NewState()
	addFile(st, "a", "a")
	addFile(st, "b", "b")
	place(st, "a", loc(Yellow, 2), loc(Blue, 5), loc(Blue, 1))
	place(st, "b", loc(Red, 3))

	want := []Location{loc(Blue, 1), loc(Blue, 5), loc(Yellow, 2)}
	if got := st.Placements("a"); !equalLocs(got, want) {
		t.Errorf("Placements(a) = %v, want %v", got, want)
	}
	if st.Placements("") != nil {
		t.Error("Placements(\"\") lists empty slots")
	}

	dups := st.Duplicates()
	if len(dups) != 1 || !equalLocs(dups["a"], want) {
		t.Errorf("Duplicates() = %v", dups)
	}
	if !st.IsPlaced("b") || st.IsPlaced("missing") {
		t.Error("IsPlaced() wrong")
	}
}

func TestState_FreeSlotAndPool(t *testing.T) {
	t.Parallel()

	st := NewState()
	addFile(st, "z", "zeta")
	addFile(st, "a", "alpha")
	addFile(st, "m", "mid")
	place(st, "m", loc(Green, 1))

	if got, ok := st.FreeSlot(Green); !ok || got != loc(Green, 2) {
		t.Errorf("FreeSlot(green) = %v, %v", got, ok)
	}

	fillTape(st, Pink)
	if _, ok := st.FreeSlot(Pink); ok {
		t.Error("FreeSlot() found room on a full tape")
	}

	pool := st.Pool()
	if len(pool) != 2 || pool[0] != "a" || pool[1] != "z" {
		t.Errorf("Pool() = %v, want [a z]", pool)
	}
}
