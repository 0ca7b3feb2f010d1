// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/backup"
	"github.com/ik5/sktapes/dsp"
	"github.com/ik5/sktapes/formats/wav"
	"github.com/ik5/sktapes/project"
	"github.com/ik5/sktapes/utils"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Describe a WAV file or a project backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if wav.Sniff(data) {
				return printWAV(cmd.OutOrStdout(), data)
			}

			st, repairs, err := backup.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.logRepairs(repairs)
			printProject(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printWAV(w io.Writer, data []byte) error {
	h, err := wav.ParseHeader(data)
	if err != nil {
		return err
	}

	format := "pcm"
	if h.AudioFormat == wav.FormatIEEEFloat {
		format = "float"
	}
	canonical := h.AudioFormat == wav.FormatIEEEFloat &&
		h.SampleRate == wav.SampleRate &&
		h.NumChannels == wav.Channels &&
		h.BitsPerSample == wav.BitsPerSample

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src, 4096)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d Hz, %d ch, %d-bit %s, %d frames, %.2fs, peak %.1f dBFS, device ready: %v\n",
		h.SampleRate, h.NumChannels, h.BitsPerSample, format, h.Frames(),
		float64(h.Frames())/float64(h.SampleRate), utils.GainToDB(float64(dsp.Peak(buf))), canonical)
	return nil
}

func printProject(w io.Writer, st *project.State) {
	for _, c := range project.Colors {
		var slots []string
		for s := 1; s <= project.SlotsPerTape; s++ {
			loc := project.Location{Color: c, Slot: s}
			name := "-"
			if id := st.FileAt(loc); id != "" {
				name = st.Files[id].DisplayName
			}
			slots = append(slots, fmt.Sprintf("%s %s", loc, name))
		}
		fmt.Fprintf(w, "%-6s | %s\n", c, strings.Join(slots, " | "))
	}

	pool := st.Pool()
	names := make([]string, len(pool))
	for i, id := range pool {
		names[i] = st.Files[id].DisplayName
	}
	fmt.Fprintf(w, "extras (%d): %s\n", len(pool), strings.Join(names, ", "))

	if dups := st.Duplicates(); len(dups) > 0 {
		fmt.Fprintf(w, "duplicates: %d files placed more than once\n", len(dups))
	}
}
