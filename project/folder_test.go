// SPDX-License-Identifier: EPL-2.0

package project

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/ik5/sktapes/ingest"
)

func TestInferPlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		color    Color
		hasColor bool
		number   int
		slot     int
	}{
		{"kits/B/01_kick.wav", Blue, true, 1, 1},
		{`C:\samples\teal\4 snare.aif`, Teal, true, 4, 4},
		{"YELLOW/12_fx.wav", Yellow, true, 12, 0},
		{"r/808_bass.wav", Red, true, 808, 0},
		{"g/0_zero.wav", Green, true, 0, 0},
		{"Pink/pad.wav", Pink, true, 0, 0},
		{"drums/03_hat.wav", "", false, 3, 3},
		{"kick.wav", "", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			in := InferPlacement(tt.path)
			if in.Color != tt.color || in.HasColor != tt.hasColor {
				t.Errorf("color = %q/%v, want %q/%v", in.Color, in.HasColor, tt.color, tt.hasColor)
			}
			if in.Number != tt.number || in.Slot() != tt.slot {
				t.Errorf("number = %d slot = %d, want %d/%d", in.Number, in.Slot(), tt.number, tt.slot)
			}
		})
	}
}

func TestPlan_NumberedFilesClaimFirst(t *testing.T) {
	t.Parallel()

	st := NewState()
	addFile(st, "x", "x")
	place(st, "x", loc(Teal, 2))

	files := []FolderFile{
		{Path: "t/loose.wav"},
		{Path: "t/01_first.wav"},
		{Path: "t/01_again.wav"},
		{Path: "t/other.wav"},
		{Path: "nowhere.wav"},
	}
	got := plan(st, files)

	want := []*Location{{Teal, 3}, {Teal, 1}, nil, {Teal, 4}, nil}
	for i := range want {
		switch {
		case want[i] == nil && got[i] != nil:
			t.Errorf("%s -> %v, want pool", files[i].Path, *got[i])
		case want[i] != nil && (got[i] == nil || *got[i] != *want[i]):
			t.Errorf("%s -> %v, want %v", files[i].Path, got[i], *want[i])
		}
	}
}

func TestPlan_FullTapeParksUnnumbered(t *testing.T) {
	t.Parallel()

	st := NewState()
	fillTape(st, Red)

	got := plan(st, []FolderFile{{Path: "red/a.wav"}, {Path: "red/02_b.wav"}})
	if got[0] != nil {
		t.Errorf("un-numbered file on a full tape -> %v", *got[0])
	}
	if got[1] == nil || *got[1] != loc(Red, 2) {
		t.Errorf("numbered file -> %v, want R2", got[1])
	}
}

func TestImportFolder(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"B/01_kick.wav":    {Data: tone(480)},
		"b/01_other.wav":   {Data: tone(480)},
		"Green/03_hat.wav": {Data: tone(480)},
		"green/snare.wav":  {Data: tone(480)},
		"red/808_bass.wav": {Data: tone(480)},
		"loose.wav":        {Data: tone(480)},
		"pink/notes.txt":   {Data: []byte("not audio")},
		".hidden/skip.wav": {Data: tone(480)},
		"Yellow/.DS_Store": {Data: []byte{0, 1, 2}},
	}
	files, err := LoadFolder(fsys)
	if err != nil {
		t.Fatalf("LoadFolder() error = %v", err)
	}
	if len(files) != 7 {
		t.Fatalf("LoadFolder() returned %d files, want 7", len(files))
	}

	eng, _ := newTestEngine(t)
	st := NewState()
	addFile(st, "old", "old")
	addFile(st, "g1", "g1")
	place(st, "old", loc(Blue, 1))
	place(st, "g1", loc(Green, 1))

	next, report, err := eng.ImportFolder(context.Background(), st, files)
	if err != nil {
		t.Fatalf("ImportFolder() error = %v", err)
	}

	byName := make(map[string]string)
	for id, f := range next.Files {
		byName[f.DisplayName] = id
	}

	wantPlaced := map[string]Location{
		"01_kick": loc(Blue, 1),
		"03_hat":  loc(Green, 3),
		"snare":   loc(Green, 2),
	}
	if len(report.Placed) != len(wantPlaced) {
		t.Errorf("Placed = %v", report.Placed)
	}
	for name, l := range wantPlaced {
		if next.FileAt(l) != byName[name] || byName[name] == "" {
			t.Errorf("%s: %s holds %q", name, l, next.FileAt(l))
		}
	}

	for _, name := range []string{"01_other", "808_bass", "loose"} {
		id := byName[name]
		if id == "" || next.IsPlaced(id) || !next.Files[id].IsParked {
			t.Errorf("%s not parked", name)
		}
	}
	if len(report.Parked) != 3 {
		t.Errorf("Parked = %v", report.Parked)
	}

	if len(report.Failed) != 1 || report.Failed[0].Path != "pink/notes.txt" || !errors.Is(report.Failed[0].Err, ingest.ErrUnknownFormat) {
		t.Errorf("Failed = %+v", report.Failed)
	}
	if !next.Files["old"].IsParked || next.FileAt(loc(Green, 1)) != "g1" {
		t.Error("existing files handled wrong")
	}
	if len(st.Files) != 2 {
		t.Error("input state modified")
	}
}

func TestImportFolder_FailedFilesClaimNoSlot(t *testing.T) {
	t.Parallel()

	junk := []byte("not audio")
	files := []FolderFile{
		{Path: "B/1_bad.wav", Data: junk},
		{Path: "B/1_good.wav", Data: tone(480)},
		{Path: "B/broken.wav", Data: junk},
		{Path: "B/free.wav", Data: tone(480)},
	}

	eng, _ := newTestEngine(t)
	next, report, err := eng.ImportFolder(context.Background(), NewState(), files)
	if err != nil {
		t.Fatalf("ImportFolder() error = %v", err)
	}

	if len(report.Failed) != 2 || len(report.Parked) != 0 || len(report.Placed) != 2 {
		t.Fatalf("report = %+v", report)
	}

	names := map[Location]string{}
	for _, p := range report.Placed {
		names[p.Location] = next.Files[p.FileID].DisplayName
	}
	if names[loc(Blue, 1)] != "1_good" || names[loc(Blue, 2)] != "free" {
		t.Errorf("placements = %v, want 1_good in B1 and free in B2", names)
	}
}

func TestImportFolder_Cancelled(t *testing.T) {
	t.Parallel()

	eng, _ := newTestEngine(t)
	st := NewState()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next, _, err := eng.ImportFolder(ctx, st, []FolderFile{{Path: "b/kick.wav", Data: tone(480)}})
	if !errors.Is(err, context.Canceled) || next != st {
		t.Errorf("ImportFolder() = %v, new state = %v", err, next != st)
	}
}
