// SPDX-License-Identifier: EPL-2.0

package export

import (
	"path"
	"strconv"
	"strings"

	"github.com/ik5/sktapes/project"
)

const (
	RootDir   = "SK"
	ExtrasDir = "EXTRAS"
	Extension = ".WAV"
)

// Entry is one file of the export, with a slash separated Path.
type Entry struct {
	Path string
	Data []byte
}

// Layout lists the export of st: tapes in device order with slots
// ascending, then the unplaced files sorted by display name. Placement is
// read from the grid, not from the IsParked hint. Records without a
// version are skipped.
func Layout(st *project.State) []Entry {
	var entries []Entry

	for _, c := range project.Colors {
		for s := 1; s <= project.SlotsPerTape; s++ {
			id := st.FileAt(project.Location{Color: c, Slot: s})
			if id == "" {
				continue
			}
			data := artifact(st, id)
			if data == nil {
				continue
			}
			entries = append(entries, Entry{
				Path: path.Join(RootDir, c.Letter(), strconv.Itoa(s)+Extension),
				Data: data,
			})
		}
	}

	used := make(map[string]bool)
	for _, id := range st.Pool() {
		data := artifact(st, id)
		if data == nil {
			continue
		}
		name := uniqueName(SanitizeName(st.Files[id].DisplayName), used)
		entries = append(entries, Entry{
			Path: path.Join(RootDir, ExtrasDir, name+Extension),
			Data: data,
		})
	}

	return entries
}

func artifact(st *project.State, id string) []byte {
	f, ok := st.Files[id]
	if !ok || f == nil {
		return nil
	}
	v := f.Current()
	if v == nil || len(v.Artifact) == 0 {
		return nil
	}
	return v.Artifact
}

// SanitizeName makes a display name usable as a file name on a FAT card.
// Reserved characters and control codes become '_'; leading and trailing
// spaces and dots are dropped. An empty result is "untitled".
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7F:
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), " .")
	if out == "" {
		return "untitled"
	}
	return out
}

// uniqueName appends _2, _3, ... until name is unused. The card is case
// insensitive, so names are compared folded.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = name + "_" + strconv.Itoa(n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
