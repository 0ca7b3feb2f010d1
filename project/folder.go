// SPDX-License-Identifier: EPL-2.0

package project

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/ik5/sktapes/ingest"
	"go.uber.org/zap"
)

// FolderFile is one file of an imported folder tree. Path uses forward
// slashes and is relative to the import root.
type FolderFile struct {
	Path string
	Data []byte
}

// Inference is what a path says about where a file belongs.
type Inference struct {
	Color    Color
	HasColor bool

	// Number is the leading numeric prefix of the file name, if any. It
	// pins the slot only when it is within 1..SlotsPerTape.
	Number   int
	Numbered bool
}

// Slot is the pinned slot, or 0.
func (in Inference) Slot() int {
	if in.Numbered && in.Number >= 1 && in.Number <= SlotsPerTape {
		return in.Number
	}
	return 0
}

// InferPlacement reads a path of the form .../<folder>/<NN_name>.ext. The
// folder is a tape letter or color name in any case.
func InferPlacement(p string) Inference {
	p = strings.ReplaceAll(p, `\`, "/")
	dir, file := path.Split(p)

	var in Inference
	if folder := path.Base(strings.TrimSuffix(dir, "/")); folder != "." && folder != "/" && folder != "" {
		in.Color, in.HasColor = ParseColor(folder)
	}

	digits := 0
	for digits < len(file) && file[digits] >= '0' && file[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		if n, err := strconv.Atoi(file[:digits]); err == nil {
			in.Number, in.Numbered = n, true
		}
	}

	return in
}

// ImportFailure is a file ImportFolder skipped.
type ImportFailure struct {
	Path string
	Err  error
}

// ImportReport summarises an ImportFolder call.
type ImportReport struct {
	Placed []Placement
	Parked []string // ids of imported files that went to the pool
	Failed []ImportFailure
}

// plan assigns a target slot to each file in import order. Numbered files
// claim their slot first; the rest take the lowest slot of their tape that
// is free in st and not claimed by this import.
func plan(st *State, files []FolderFile) []*Location {
	out := make([]*Location, len(files))
	claimed := make(map[Location]bool)
	infs := make([]Inference, len(files))

	for i, f := range files {
		infs[i] = InferPlacement(f.Path)
		in := infs[i]
		if !in.HasColor || in.Slot() == 0 {
			continue
		}
		loc := Location{Color: in.Color, Slot: in.Slot()}
		if claimed[loc] {
			continue // second file with the same number goes to the pool
		}
		claimed[loc] = true
		out[i] = &loc
	}

	for i, in := range infs {
		if !in.HasColor || in.Numbered {
			continue
		}
		for s := 1; s <= SlotsPerTape; s++ {
			loc := Location{Color: in.Color, Slot: s}
			if claimed[loc] || st.FileAt(loc) != "" {
				continue
			}
			claimed[loc] = true
			out[i] = &loc
			break
		}
	}

	return out
}

// ImportFolder ingests every file concurrently, then commits all of them
// in one step. Files whose path pins a slot replace that slot's occupant;
// others fill free slots of their tape; anything without a tape, with an
// out-of-range number or beyond the sixth slot is parked. Files that fail
// to decode are reported and skipped.
func (e *Engine) ImportFolder(ctx context.Context, st *State, files []FolderFile) (*State, ImportReport, error) {
	var report ImportReport

	raws := make([]ingest.RawFile, len(files))
	for i, f := range files {
		raws[i] = ingest.RawFile{Name: path.Base(strings.ReplaceAll(f.Path, `\`, "/")), Data: f.Data}
	}

	results, errs := e.ingester.ProcessAll(ctx, raws)
	if err := ctx.Err(); err != nil {
		return st, report, err
	}

	// only decoded files take part in slot planning
	var decoded []FolderFile
	var index []int
	for i, f := range files {
		if errs[i] != nil {
			report.Failed = append(report.Failed, ImportFailure{Path: f.Path, Err: errs[i]})
			continue
		}
		decoded = append(decoded, f)
		index = append(index, i)
	}

	targets := plan(st, decoded)
	next := st.Clone()
	for j, i := range index {
		rec := e.newRecord(results[i], DescOriginalUpload)
		next.Files[rec.ID] = rec

		if loc := targets[j]; loc != nil {
			next.slot(*loc).FileID = rec.ID
			report.Placed = append(report.Placed, Placement{FileID: rec.ID, Location: *loc})
			continue
		}
		report.Parked = append(report.Parked, rec.ID)
	}

	e.log.Info("folder imported",
		zap.Int("placed", len(report.Placed)),
		zap.Int("parked", len(report.Parked)),
		zap.Int("failed", len(report.Failed)),
	)
	return e.commit(next), report, nil
}

// LoadFolder reads every regular file under fsys, skipping hidden files
// and directories.
func LoadFolder(fsys fs.FS) ([]FolderFile, error) {
	var files []FolderFile

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, FolderFile{Path: p, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking import folder: %w", err)
	}

	return files, nil
}
