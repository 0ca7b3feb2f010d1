// SPDX-License-Identifier: EPL-2.0

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/wav"
	"github.com/ik5/sktapes/ingest"
	"github.com/ik5/sktapes/internal/audiotest"
	"github.com/ik5/sktapes/project"
)

func record(id, name string, artifact []byte) *project.FileRecord {
	return &project.FileRecord{
		ID:               id,
		DisplayName:      name,
		Versions:         []project.AudioVersion{{ID: id + "-v1", Artifact: artifact}},
		CurrentVersionID: id + "-v1",
	}
}

func put(st *project.State, c project.Color, slot int, id string) {
	st.Tapes[c].Slots[slot-1].FileID = id
}

func testState() *project.State {
	st := project.NewState()
	st.Files["a"] = record("a", "Kick", []byte("a"))
	st.Files["b"] = record("b", "Loop", []byte("b"))
	st.Files["c"] = record("c", "Riser: Big", []byte("c"))
	st.Files["d"] = record("d", "riser_ big", []byte("d"))
	st.Files["e"] = record("e", "Empty", nil)
	put(st, project.Yellow, 6, "a")
	put(st, project.Blue, 3, "a")
	put(st, project.Green, 2, "b")
	put(st, project.Green, 1, "b")
	return st
}

func TestLayout(t *testing.T) {
	t.Parallel()

	got := Layout(testState())

	want := []Entry{
		{"SK/B/3.WAV", []byte("a")},
		{"SK/G/1.WAV", []byte("b")},
		{"SK/G/2.WAV", []byte("b")},
		{"SK/Y/6.WAV", []byte("a")},
		{"SK/EXTRAS/Riser_ Big.WAV", []byte("c")},
		{"SK/EXTRAS/riser_ big_2.WAV", []byte("d")},
	}
	if len(got) != len(want) {
		t.Fatalf("Layout() = %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Path != want[i].Path || !bytes.Equal(got[i].Data, want[i].Data) {
			t.Errorf("entry %d = %s %q, want %s %q", i, got[i].Path, got[i].Data, want[i].Path, want[i].Data)
		}
	}
}

func TestLayout_IgnoresParkedHint(t *testing.T) {
	t.Parallel()

	st := project.NewState()
	st.Files["a"] = record("a", "a", []byte("a"))
	st.Files["a"].IsParked = true
	put(st, project.Teal, 1, "a")

	got := Layout(st)
	if len(got) != 1 || got[0].Path != "SK/T/1.WAV" {
		t.Errorf("Layout() = %v", got)
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"kick", "kick"},
		{"a/b\\c", "a_b_c"},
		{`what?*"<>|`, "what______"},
		{"  .hidden. ", "hidden"},
		{"tab\there", "tab_here"},
		{"...", "untitled"},
		{"", "untitled"},
		{"Über Pad", "Über Pad"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueName(t *testing.T) {
	t.Parallel()

	used := map[string]bool{}
	var got []string
	for _, n := range []string{"pad", "PAD", "pad_2", "pad"} {
		got = append(got, uniqueName(n, used))
	}

	want := []string{"pad", "PAD_2", "pad_2_2", "pad_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	stale := filepath.Join(root, "SK", "R", "4.WAV")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(other, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries := Layout(testState())
	if err := WriteDir(root, entries); err != nil {
		t.Fatalf("WriteDir() error = %v", err)
	}

	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(e.Path)))
		if err != nil || !bytes.Equal(data, e.Data) {
			t.Errorf("%s: %q, %v", e.Path, data, err)
		}
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale slot file survived")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("file outside SK removed")
	}

	leftovers, _ := filepath.Glob(filepath.Join(root, ".sktapes-check-*"))
	if len(leftovers) != 0 {
		t.Errorf("check files left behind: %v", leftovers)
	}
}

func TestWriteDir_UnsupportedEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	root := filepath.Join(blocker, "card")
	err := WriteDir(root, []Entry{{"SK/B/1.WAV", []byte("x")}})

	var envErr *UnsupportedEnvironmentError
	if !errors.As(err, &envErr) || envErr.Root != root || envErr.Unwrap() == nil {
		t.Fatalf("WriteDir() error = %v, want *UnsupportedEnvironmentError", err)
	}

	left, _ := os.ReadDir(dir)
	if len(left) != 1 {
		t.Errorf("files written despite the failed check: %v", left)
	}
}

func TestWriteZip(t *testing.T) {
	t.Parallel()

	entries := Layout(testState())
	var out bytes.Buffer
	if err := WriteZip(&out, entries); err != nil {
		t.Fatalf("WriteZip() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != len(entries) {
		t.Fatalf("archive has %d files, want %d", len(zr.File), len(entries))
	}
	for i, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if f.Name != entries[i].Path || f.Method != zip.Store || !bytes.Equal(data, entries[i].Data) {
			t.Errorf("file %d = %s (method %d) %q", i, f.Name, f.Method, data)
		}
	}
}

func TestExport_UploadToCard(t *testing.T) {
	t.Parallel()

	eng := project.New(ingest.New())
	raw := ingest.RawFile{Name: "pad.wav", Data: audiotest.SineWAV16(44100, 1, 44100, 220)}
	st, _, err := eng.AssignNewUpload(context.Background(), project.NewState(), project.Location{Color: project.Blue, Slot: 3}, raw)
	if err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	if err := WriteDir(root, Layout(st)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "SK", "B", "3.WAV"))
	if err != nil {
		t.Fatalf("SK/B/3.WAV missing: %v", err)
	}

	h, err := wav.ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if h.AudioFormat != wav.FormatIEEEFloat || h.SampleRate != 48000 || h.NumChannels != 2 || h.BitsPerSample != 32 {
		t.Errorf("header = %+v", h)
	}
	if h.Frames() != 48000 {
		t.Errorf("frames = %d, want 48000", h.Frames())
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	buf, err := audio.ReadAll(src, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Frames() != 48000 {
		t.Errorf("decoded %d frames", buf.Frames())
	}
}
