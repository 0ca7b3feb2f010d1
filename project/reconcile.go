// SPDX-License-Identifier: EPL-2.0

package project

import "sort"

// Reconcile returns a repaired copy of st and the problems it fixed:
// records without versions are dropped, a dangling CurrentVersionID falls
// back to the newest version, slots naming missing files are cleared and
// every IsParked hint is recomputed from the grid.
func Reconcile(st *State) (*State, []*IntegrityError) {
	next := st.Clone()
	return next, reconcilePlacements(next)
}

// reconcilePlacements repairs st in place.
func reconcilePlacements(st *State) []*IntegrityError {
	var repairs []*IntegrityError

	ids := make([]string, 0, len(st.Files))
	for id := range st.Files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		f := st.Files[id]
		if f == nil || len(f.Versions) == 0 {
			delete(st.Files, id)
			repairs = append(repairs, &IntegrityError{Kind: IntegrityNoVersions, FileID: id})
			continue
		}
		if f.ID != id {
			f.ID = id
		}
		if _, ok := f.Version(f.CurrentVersionID); !ok {
			repairs = append(repairs, &IntegrityError{
				Kind:      IntegrityDanglingCurrent,
				FileID:    id,
				VersionID: f.CurrentVersionID,
			})
			f.CurrentVersionID = f.Versions[0].ID
		}
	}

	placed := make(map[string]bool, len(st.Files))
	st.eachSlot(func(loc Location, sl *Slot) {
		if sl.ID != loc.Slot {
			sl.ID = loc.Slot
		}
		if sl.FileID == "" {
			return
		}
		if _, ok := st.Files[sl.FileID]; !ok {
			repairs = append(repairs, &IntegrityError{
				Kind:     IntegrityDanglingSlot,
				FileID:   sl.FileID,
				Location: loc,
			})
			sl.FileID = ""
			return
		}
		placed[sl.FileID] = true
	})

	for id, f := range st.Files {
		f.IsParked = !placed[id]
	}

	return repairs
}
