// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sktapes/audio"
	"github.com/ik5/sktapes/formats/wav"
	"github.com/ik5/sktapes/ingest"
	"github.com/ik5/sktapes/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConvertCmd(a *app) *cobra.Command {
	var outDir string
	var pcm16 bool

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert audio files to the device WAV format",
		Long: fmt.Sprintf(`Convert decodes each input and writes it as a 48 kHz stereo 32-bit float WAV
named after the input. With --pcm16 a 16-bit PCM copy is written instead.

Input formats: %s.`, strings.Join(ingest.DefaultRegistry().Formats(), ", ")),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = a.cfg.Export.Dir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			raws := make([]ingest.RawFile, len(args))
			for i, name := range args {
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				raws[i] = ingest.RawFile{Name: filepath.Base(name), Data: data}
			}

			results, errs := a.ingester().ProcessAll(cmd.Context(), raws)
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			failed := 0
			for i, res := range results {
				if errs[i] != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", args[i], errs[i])
					continue
				}

				dst := filepath.Join(outDir, strings.TrimSuffix(res.Name, filepath.Ext(res.Name))+".WAV")
				data := res.Artifact
				if pcm16 {
					var err error
					if data, err = toPCM16(res.Buffer); err != nil {
						return err
					}
				}
				if err := os.WriteFile(dst, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", dst, err)
				}

				a.log.Info("converted",
					zap.String("file", args[i]),
					zap.String("format", res.Format),
					zap.Int("source_rate", res.SourceRate),
					zap.Int("source_channels", res.SourceChannels),
					zap.String("output", dst),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%.2fs)\n", args[i], dst, res.Duration)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be converted", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&pcm16, "pcm16", false, "Write 16-bit PCM instead of 32-bit float")
	return cmd
}

func toPCM16(buf *audio.Buffer) ([]byte, error) {
	if buf == nil {
		return nil, errors.New("no decoded audio")
	}

	samples := buf.Interleaved()
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = utils.Float32ToInt16(s)
	}

	var out bytes.Buffer
	if err := wav.WritePCM16(&out, buf.SampleRate, buf.Channels(), pcm); err != nil {
		return nil, fmt.Errorf("encoding pcm16: %w", err)
	}
	return out.Bytes(), nil
}
