// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"

	"go.uber.org/zap"
)

// KeepOnly clears every placement of fileID except loc.
func (e *Engine) KeepOnly(st *State, fileID string, loc Location) (*State, error) {
	if err := validLocation(loc); err != nil {
		return st, err
	}
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}
	if st.FileAt(loc) != fileID {
		return st, ErrNotPlacedHere
	}

	next := st.Clone()
	next.clearFile(fileID, loc)
	return e.commit(next), nil
}

// MakeUnique keeps fileID in its first placement and gives every other
// placement its own new record. The copies start with one version that
// shares the current artifact of the original.
func (e *Engine) MakeUnique(st *State, fileID string) (*State, error) {
	orig, err := e.file(st, fileID)
	if err != nil {
		return st, err
	}

	locs := st.Placements(fileID)
	if len(locs) < 2 {
		return st, nil
	}

	cur := orig.Current()
	next := st.Clone()
	for i, loc := range locs[1:] {
		v := *cur
		v.ID = e.newID()
		v.Timestamp = e.now()
		v.Tags = append([]Tag(nil), cur.Tags...)

		rec := &FileRecord{
			ID:               e.newID(),
			DisplayName:      fmt.Sprintf("%s (%d)", orig.DisplayName, i+2),
			OriginalName:     orig.OriginalName,
			Versions:         []AudioVersion{v},
			CurrentVersionID: v.ID,
		}
		next.Files[rec.ID] = rec
		next.slot(loc).FileID = rec.ID
	}

	e.log.Info("duplicates split", zap.String("file", fileID), zap.Int("copies", len(locs)-1))
	return e.commit(next), nil
}
