// SPDX-License-Identifier: EPL-2.0

package project

import (
	"bytes"
	"fmt"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/dsp"
	"github.com/ik5/sktapes/formats/wav"
)

// Edit is the output of the sample editor, ready to become a version.
type Edit struct {
	Artifact    []byte
	Duration    float64
	Description string
	Tags        []Tag
}

// NewEdit encodes an edited buffer and derives its tags.
func NewEdit(buf *audio.Buffer, applied dsp.Applied, description string) Edit {
	var tags []Tag
	if applied.Trimmed {
		tags = append(tags, TagTrimmed)
	}
	if applied.Looped {
		tags = append(tags, TagLooped)
	}
	if applied.Normalized {
		tags = append(tags, TagNormalized)
	}

	return Edit{
		Artifact:    wav.Encode(buf),
		Duration:    buf.Duration(),
		Description: description,
		Tags:        tags,
	}
}

// RenderEdit decodes the current version of f, applies p and returns the
// result. dirty is false when no step changed the audio.
func RenderEdit(f *FileRecord, p dsp.EditParams, description string) (edit Edit, dirty bool, err error) {
	cur := f.Current()
	if cur == nil {
		return Edit{}, false, ErrVersionNotFound
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(cur.Artifact))
	if err != nil {
		return Edit{}, false, fmt.Errorf("decoding current version of %s: %w", f.ID, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src, 4096)
	if err != nil {
		return Edit{}, false, fmt.Errorf("reading current version of %s: %w", f.ID, err)
	}

	out, applied := dsp.Edit(buf, p)
	if !applied.Any() {
		return Edit{}, false, nil
	}

	edit = NewEdit(out, applied, description)
	// carry over tags from earlier passes
	for _, t := range cur.Tags {
		if !hasTag(edit.Tags, t) {
			edit.Tags = append(edit.Tags, t)
		}
	}
	return edit, true, nil
}

func hasTag(tags []Tag, t Tag) bool {
	for _, x := range tags {
		if x == t {
			return true
		}
	}
	return false
}

func (e *Engine) version(edit Edit, fallback string) AudioVersion {
	desc := edit.Description
	if desc == "" {
		desc = fallback
	}
	return AudioVersion{
		ID:          e.newID(),
		Timestamp:   e.now(),
		Description: desc,
		Artifact:    edit.Artifact,
		Duration:    edit.Duration,
		Tags:        append([]Tag(nil), edit.Tags...),
	}
}

// SaveEdit records edit as the new current version of fileID. When dirty
// is false nothing changes. Older versions are never removed.
func (e *Engine) SaveEdit(st *State, fileID string, edit Edit, dirty bool) (*State, error) {
	if _, err := e.file(st, fileID); err != nil {
		return st, err
	}
	if !dirty {
		return st, nil
	}
	if len(edit.Artifact) == 0 {
		return st, ErrEmptyArtifact
	}

	next := st.Clone()
	f := next.Files[fileID]
	v := e.version(edit, DescEdit)
	f.Versions = append([]AudioVersion{v}, f.Versions...)
	f.CurrentVersionID = v.ID

	return e.commit(next), nil
}

// SaveAsCopy stores edit as a new parked file. The source gets a
// "Saved to Pool" entry in its history; its current version stays.
func (e *Engine) SaveAsCopy(st *State, fileID string, edit Edit) (*State, string, error) {
	src, err := e.file(st, fileID)
	if err != nil {
		return st, "", err
	}
	if len(edit.Artifact) == 0 {
		return st, "", ErrEmptyArtifact
	}

	next := st.Clone()
	rec := e.derived(src, edit, src.DisplayName+" copy")
	next.Files[rec.ID] = rec

	note := e.version(edit, DescSavedToPool)
	note.Description = DescSavedToPool
	f := next.Files[fileID]
	f.Versions = append([]AudioVersion{note}, f.Versions...)

	return e.commit(next), rec.ID, nil
}

// SaveUnique stores edit as a new file in loc, which must hold fileID.
// The original keeps its other placements, or goes to the pool.
func (e *Engine) SaveUnique(st *State, fileID string, loc Location, edit Edit) (*State, string, error) {
	if err := validLocation(loc); err != nil {
		return st, "", err
	}
	src, err := e.file(st, fileID)
	if err != nil {
		return st, "", err
	}
	if st.FileAt(loc) != fileID {
		return st, "", ErrNotPlacedHere
	}
	if len(edit.Artifact) == 0 {
		return st, "", ErrEmptyArtifact
	}

	next := st.Clone()
	rec := e.derived(src, edit, src.DisplayName+" edit")
	next.Files[rec.ID] = rec
	next.slot(loc).FileID = rec.ID

	return e.commit(next), rec.ID, nil
}

func (e *Engine) derived(src *FileRecord, edit Edit, name string) *FileRecord {
	v := e.version(edit, DescEdit)
	return &FileRecord{
		ID:               e.newID(),
		DisplayName:      name,
		OriginalName:     src.OriginalName,
		Versions:         []AudioVersion{v},
		CurrentVersionID: v.ID,
		IsParked:         true,
	}
}

// SelectVersion makes an existing version current. History is untouched.
func (e *Engine) SelectVersion(st *State, fileID, versionID string) (*State, error) {
	f, err := e.file(st, fileID)
	if err != nil {
		return st, err
	}
	if _, ok := f.Version(versionID); !ok {
		return st, ErrVersionNotFound
	}

	next := st.Clone()
	next.Files[fileID].CurrentVersionID = versionID
	return e.commit(next), nil
}
