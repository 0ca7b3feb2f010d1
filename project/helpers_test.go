// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"testing"
	"time"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/wav"
	"github.com/ik5/sktapes/ingest"
	"github.com/ik5/sktapes/internal/audiotest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// sequence returns ids id-1, id-2, ... so tests can predict them.
func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestEngine(t *testing.T) (*Engine, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	eng := New(ingest.New(ingest.WithWorkers(2)),
		WithIDGenerator(sequence()),
		WithClock(func() time.Time { return testTime }),
		WithLogger(zap.New(core)),
	)
	return eng, logs
}

func tone(frames int) []byte {
	buf := &audio.Buffer{SampleRate: 48000, Data: audiotest.Planar(2, frames, audiotest.Sine(48000, 440, 0.5))}
	return wav.Encode(buf)
}

// addFile puts a record with one version straight into st.
func addFile(st *State, id, name string) *FileRecord {
	rec := &FileRecord{
		ID:               id,
		DisplayName:      name,
		OriginalName:     name + ".wav",
		Versions:         []AudioVersion{{ID: id + "-v1", Timestamp: testTime, Description: DescOriginalUpload, Artifact: tone(480), Duration: 0.01}},
		CurrentVersionID: id + "-v1",
		IsParked:         true,
	}
	st.Files[id] = rec
	return rec
}

// place puts id into loc and refreshes the hints.
func place(st *State, id string, locs ...Location) {
	for _, loc := range locs {
		st.slot(loc).FileID = id
	}
	reconcilePlacements(st)
}

func loc(c Color, slot int) Location { return Location{Color: c, Slot: slot} }

func fillTape(st *State, c Color) []string {
	ids := make([]string, SlotsPerTape)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", c, i+1)
		addFile(st, ids[i], ids[i])
		place(st, ids[i], loc(c, i+1))
	}
	return ids
}

func equalLocs(a, b []Location) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// snapshot captures the grid so tests can check an input was not modified.
func snapshot(st *State) map[Location]string {
	out := make(map[Location]string)
	st.eachSlot(func(l Location, sl *Slot) { out[l] = sl.FileID })
	return out
}

func assertUnchanged(t *testing.T, st *State, before map[Location]string) {
	t.Helper()

	for l, id := range snapshot(st) {
		if before[l] != id {
			t.Fatalf("input state modified at %s: %q -> %q", l, before[l], id)
		}
	}
}
