// SPDX-License-Identifier: EPL-2.0

package project

import "go.uber.org/zap"

// ConflictPolicy decides what a bulk assignment does with occupied slots.
type ConflictPolicy int

const (
	// Overwrite lands files in consecutive slots and parks the occupants.
	Overwrite ConflictPolicy = iota
	// Push skips occupied slots. Files that find no free slot are dropped.
	Push
)

// BulkRequest places FileIDs on Target.Color starting at Target.Slot.
// Sources optionally names the slot each file was dragged from; that slot
// is cleared only if the file landed.
type BulkRequest struct {
	Target  Location
	FileIDs []string
	Policy  ConflictPolicy
	Sources map[string]Location
}

// Placement is one file landing in one slot.
type Placement struct {
	FileID   string
	Location Location
}

// BulkResult reports what happened to each requested file.
type BulkResult struct {
	Placed  []Placement
	Dropped []string
}

// BulkAssign places several files at once. Running out of slots is not an
// error; the files that did not fit are listed in Dropped. Unknown ids or
// an invalid target fail the whole request. An id repeated in FileIDs is
// placed once, at its first position, and is not reported again.
func (e *Engine) BulkAssign(st *State, req BulkRequest) (*State, BulkResult, error) {
	var res BulkResult

	if err := validLocation(req.Target); err != nil {
		return st, res, err
	}
	for _, id := range req.FileIDs {
		if _, err := e.file(st, id); err != nil {
			return st, res, err
		}
	}
	for _, src := range req.Sources {
		if err := validLocation(src); err != nil {
			return st, res, err
		}
	}

	next := st.Clone()
	color := req.Target.Color
	cursor := req.Target.Slot
	landed := make(map[Location]bool)
	seen := make(map[string]bool)

	for _, id := range req.FileIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if req.Policy == Push {
			for cursor <= SlotsPerTape && next.FileAt(Location{Color: color, Slot: cursor}) != "" {
				cursor++
			}
		}
		if cursor > SlotsPerTape {
			res.Dropped = append(res.Dropped, id)
			continue
		}

		loc := Location{Color: color, Slot: cursor}
		next.slot(loc).FileID = id
		landed[loc] = true
		res.Placed = append(res.Placed, Placement{FileID: id, Location: loc})
		cursor++
	}

	for _, p := range res.Placed {
		src, ok := req.Sources[p.FileID]
		if !ok || landed[src] {
			continue
		}
		if next.slot(src).FileID == p.FileID {
			next.slot(src).FileID = ""
		}
	}

	if len(res.Dropped) > 0 {
		e.log.Info("bulk assign dropped files", zap.Int("placed", len(res.Placed)), zap.Int("dropped", len(res.Dropped)))
	}
	return e.commit(next), res, nil
}
