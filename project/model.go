// SPDX-License-Identifier: EPL-2.0

package project

import (
	"strings"
	"time"
)

// SlotsPerTape is fixed by the device.
const SlotsPerTape = 6

// Color names a tape.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Pink   Color = "pink"
	Red    Color = "red"
	Teal   Color = "teal"
	Yellow Color = "yellow"
)

// Colors lists the tapes in device order.
var Colors = [...]Color{Blue, Green, Pink, Red, Teal, Yellow}

// Letter is the export folder name of the tape: the first letter, upper case.
func (c Color) Letter() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1]))
}

// Valid reports whether c is one of the six tape colors.
func (c Color) Valid() bool {
	for _, k := range Colors {
		if c == k {
			return true
		}
	}
	return false
}

// ParseColor accepts a color name or its letter, in any case.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Colors {
		if s == string(c) || s == strings.ToLower(c.Letter()) {
			return c, true
		}
	}
	return "", false
}

// Tag marks the processing a version went through.
type Tag string

const (
	TagNormalized Tag = "normalized"
	TagTrimmed    Tag = "trimmed"
	TagLooped     Tag = "looped"
)

// AudioVersion is one immutable entry of a file's edit history. Artifact
// holds a canonical WAV and is shared, never written to.
type AudioVersion struct {
	ID          string
	Timestamp   time.Time
	Description string
	Artifact    []byte
	Duration    float64 // seconds
	Tags        []Tag
}

// FileRecord is a sample with its history, newest version first.
//
// IsParked is a cached hint recomputed after every operation; whether a
// file is placed is always answered by State.Placements.
type FileRecord struct {
	ID               string
	DisplayName      string
	OriginalName     string
	Versions         []AudioVersion
	CurrentVersionID string
	IsParked         bool
}

// Version looks up a version by id.
func (f *FileRecord) Version(id string) (*AudioVersion, bool) {
	for i := range f.Versions {
		if f.Versions[i].ID == id {
			return &f.Versions[i], true
		}
	}
	return nil, false
}

// Current is the version CurrentVersionID points at, or the newest one if
// the id dangles. Nil only for a record without versions.
func (f *FileRecord) Current() *AudioVersion {
	if v, ok := f.Version(f.CurrentVersionID); ok {
		return v
	}
	if len(f.Versions) > 0 {
		return &f.Versions[0]
	}
	return nil
}

func (f *FileRecord) clone() *FileRecord {
	out := *f
	out.Versions = make([]AudioVersion, len(f.Versions))
	for i, v := range f.Versions {
		v.Tags = append([]Tag(nil), v.Tags...)
		out.Versions[i] = v
	}
	return &out
}

// Slot is one position on a tape. An empty FileID means the slot is free.
type Slot struct {
	ID     int
	FileID string
}

// Tape is one of the six color-coded banks of slots.
type Tape struct {
	Color Color
	Slots [SlotsPerTape]Slot
}

// Location addresses a slot; Slot is 1-based.
type Location struct {
	Color Color
	Slot  int
}

// Valid reports whether l names a known tape and a slot in 1..SlotsPerTape.
func (l Location) Valid() bool {
	return l.Color.Valid() && l.Slot >= 1 && l.Slot <= SlotsPerTape
}

func (l Location) String() string {
	return l.Color.Letter() + string(rune('0'+l.Slot))
}
