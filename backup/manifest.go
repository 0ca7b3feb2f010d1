// SPDX-License-Identifier: EPL-2.0

package backup

import (
	"sort"
	"time"

	"github.com/ik5/sktapes/formats/wav"
	"github.com/ik5/sktapes/project"
)

const (
	ManifestName  = "project.json"
	FormatVersion = 1
	blobExt       = ".wav"
)

// Manifest is the JSON document stored as project.json.
type Manifest struct {
	Format  int         `json:"format"`
	Created time.Time   `json:"created"`
	Files   []FileEntry `json:"files"`
	Tapes   []TapeEntry `json:"tapes"`
}

type FileEntry struct {
	ID               string         `json:"id"`
	DisplayName      string         `json:"displayName"`
	OriginalName     string         `json:"originalName"`
	CurrentVersionID string         `json:"currentVersionId"`
	IsParked         bool           `json:"isParked"`
	Versions         []VersionEntry `json:"versions"`
}

// VersionEntry is an AudioVersion with the artifact replaced by BlobRef.
type VersionEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Tags        []string  `json:"tags,omitempty"`
	BlobRef     string    `json:"blobRef"`
}

type TapeEntry struct {
	Color string      `json:"color"`
	Slots []SlotEntry `json:"slots"`
}

type SlotEntry struct {
	ID     int    `json:"id"`
	FileID string `json:"fileId,omitempty"`
}

// BlobRef is the archive name of a version's audio.
func BlobRef(versionID string) string {
	return versionID + blobExt
}

// NewManifest describes st. Files are sorted by id, tapes follow device
// order. The returned map holds the blob of every version keyed by its ref.
func NewManifest(st *project.State, created time.Time) (*Manifest, map[string][]byte) {
	m := &Manifest{Format: FormatVersion, Created: created.UTC()}
	blobs := make(map[string][]byte)

	ids := make([]string, 0, len(st.Files))
	for id := range st.Files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		f := st.Files[id]
		fe := FileEntry{
			ID:               f.ID,
			DisplayName:      f.DisplayName,
			OriginalName:     f.OriginalName,
			CurrentVersionID: f.CurrentVersionID,
			IsParked:         f.IsParked,
		}
		for _, v := range f.Versions {
			ref := BlobRef(v.ID)
			ve := VersionEntry{
				ID:          v.ID,
				Timestamp:   v.Timestamp.UTC(),
				Description: v.Description,
				Duration:    v.Duration,
				BlobRef:     ref,
			}
			for _, t := range v.Tags {
				ve.Tags = append(ve.Tags, string(t))
			}
			fe.Versions = append(fe.Versions, ve)
			blobs[ref] = v.Artifact
		}
		m.Files = append(m.Files, fe)
	}

	for _, c := range project.Colors {
		te := TapeEntry{Color: string(c)}
		for s := 1; s <= project.SlotsPerTape; s++ {
			te.Slots = append(te.Slots, SlotEntry{ID: s, FileID: st.FileAt(project.Location{Color: c, Slot: s})})
		}
		m.Tapes = append(m.Tapes, te)
	}

	return m, blobs
}

// FromManifest rebuilds a project from m and its blobs. A version whose
// blob is absent or not a WAV file is dropped; after that the state goes
// through project.Reconcile. Every repair is returned.
func FromManifest(m *Manifest, blobs map[string][]byte) (*project.State, []*project.IntegrityError) {
	st := project.NewState()
	var repairs []*project.IntegrityError

	for _, fe := range m.Files {
		if fe.ID == "" {
			continue
		}
		if _, dup := st.Files[fe.ID]; dup {
			continue
		}

		f := &project.FileRecord{
			ID:               fe.ID,
			DisplayName:      fe.DisplayName,
			OriginalName:     fe.OriginalName,
			CurrentVersionID: fe.CurrentVersionID,
			IsParked:         fe.IsParked,
		}
		for _, ve := range fe.Versions {
			data := blobs[ve.BlobRef]
			if len(data) == 0 || !wav.Sniff(data) {
				repairs = append(repairs, &project.IntegrityError{
					Kind:      project.IntegrityMissingArtifact,
					FileID:    fe.ID,
					VersionID: ve.ID,
				})
				continue
			}

			v := project.AudioVersion{
				ID:          ve.ID,
				Timestamp:   ve.Timestamp,
				Description: ve.Description,
				Artifact:    data,
				Duration:    ve.Duration,
			}
			for _, t := range ve.Tags {
				v.Tags = append(v.Tags, project.Tag(t))
			}
			f.Versions = append(f.Versions, v)
		}
		st.Files[fe.ID] = f
	}

	for _, te := range m.Tapes {
		c, ok := project.ParseColor(te.Color)
		if !ok {
			continue
		}
		for _, se := range te.Slots {
			loc := project.Location{Color: c, Slot: se.ID}
			if !loc.Valid() {
				continue
			}
			st.Tapes[c].Slots[se.ID-1].FileID = se.FileID
		}
	}

	next, fixed := project.Reconcile(st)
	return next, append(repairs, fixed...)
}
