// SPDX-License-Identifier: EPL-2.0

package project

import (
	"context"
	"strings"

	"github.com/ik5/sktapes/ingest"
	"go.uber.org/zap"
)

// Version descriptions written by the engine.
const (
	DescOriginalUpload = "Original Upload"
	DescSavedToPool    = "Saved to Pool"
	DescEdit           = "Edit"
)

// SourceKind tells MoveOrCopy where a dragged file came from.
type SourceKind int

const (
	SourcePool SourceKind = iota
	SourceSlot
)

// AssignNewUpload ingests raw and puts the new file in loc, replacing the
// occupant, which ends up in the pool. Ingestion runs before anything is
// changed; a decode failure leaves st as it was.
func (e *Engine) AssignNewUpload(ctx context.Context, st *State, loc Location, raw ingest.RawFile) (*State, string, error) {
	if err := validLocation(loc); err != nil {
		return st, "", err
	}

	res, err := e.ingester.Process(ctx, raw)
	if err != nil {
		return st, "", err
	}

	next := st.Clone()
	rec := e.newRecord(res, DescOriginalUpload)
	next.Files[rec.ID] = rec
	next.slot(loc).FileID = rec.ID

	e.log.Info("upload assigned", zap.String("file", rec.ID), zap.String("name", rec.DisplayName), zap.Stringer("slot", loc))
	return e.commit(next), rec.ID, nil
}

// AddToPool ingests raw as a parked file.
func (e *Engine) AddToPool(ctx context.Context, st *State, raw ingest.RawFile) (*State, string, error) {
	res, err := e.ingester.Process(ctx, raw)
	if err != nil {
		return st, "", err
	}

	next := st.Clone()
	rec := e.newRecord(res, DescOriginalUpload)
	next.Files[rec.ID] = rec

	e.log.Info("upload pooled", zap.String("file", rec.ID), zap.String("name", rec.DisplayName))
	return e.commit(next), rec.ID, nil
}

// MoveOrCopy places fileID in target, displacing the occupant.
//
// From the pool the file is simply placed. From a slot, a move clears every
// other slot holding the file so it ends up in target only; with duplicate
// set the other placements stay and the file is in several slots at once.
func (e *Engine) MoveOrCopy(st *State, target Location, fileID string, source SourceKind, duplicate bool) (*State, error) {
	if err := validLocation(target); err != nil {
		return st, err
	}
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}

	next := st.Clone()
	next.slot(target).FileID = fileID
	if source == SourceSlot && !duplicate {
		next.clearFile(fileID, target)
	}

	return e.commit(next), nil
}

// DropOnTape is MoveOrCopy into the first free slot of a tape. A full tape
// is a *CapacityError and nothing changes.
func (e *Engine) DropOnTape(st *State, color Color, fileID string, source SourceKind, duplicate bool) (*State, Location, error) {
	if !color.Valid() {
		return st, Location{}, ErrInvalidLocation
	}
	if _, err := e.file(st, fileID); err != nil {
		return st, Location{}, err
	}

	loc, ok := st.FreeSlot(color)
	if !ok {
		return st, Location{}, &CapacityError{Color: color}
	}

	next, err := e.MoveOrCopy(st, loc, fileID, source, duplicate)
	if err != nil {
		return st, Location{}, err
	}
	return next, loc, nil
}

// RemoveFromSlot empties loc. The file record is kept.
func (e *Engine) RemoveFromSlot(st *State, loc Location) (*State, error) {
	if err := validLocation(loc); err != nil {
		return st, err
	}

	next := st.Clone()
	next.slot(loc).FileID = ""
	return e.commit(next), nil
}

// ParkFile takes the file out of every slot.
func (e *Engine) ParkFile(st *State, fileID string) (*State, error) {
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}

	next := st.Clone()
	next.clearFile(fileID)
	return e.commit(next), nil
}

// DeleteFile removes the record and every slot reference to it.
func (e *Engine) DeleteFile(st *State, fileID string) (*State, error) {
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}

	next := st.Clone()
	next.clearFile(fileID)
	delete(next.Files, fileID)

	e.log.Info("file deleted", zap.String("file", fileID))
	return e.commit(next), nil
}

// RenameFile changes the display name, which is also the EXTRAS file name.
func (e *Engine) RenameFile(st *State, fileID, name string) (*State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return st, ErrInvalidName
	}
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}

	next := st.Clone()
	next.Files[fileID].DisplayName = name
	return e.commit(next), nil
}

// ClearTape empties all six slots of a tape.
func (e *Engine) ClearTape(st *State, color Color) (*State, error) {
	if !color.Valid() {
		return st, ErrInvalidLocation
	}

	next := st.Clone()
	next.Tapes[color] = newTape(color)
	return e.commit(next), nil
}
