// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/ik5/sktapes/backup"
	"github.com/ik5/sktapes/dsp"
	"github.com/ik5/sktapes/export"
	"github.com/ik5/sktapes/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportFlags are shared by build and restore.
type exportFlags struct {
	outDir  string
	zipFile string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Directory that receives the SK folder (default from config)")
	cmd.Flags().StringVar(&f.zipFile, "zip", "", "Write the SK layout into this ZIP file instead of a directory")
}

func (a *app) writeLayout(cmd *cobra.Command, f exportFlags, st *project.State) error {
	entries := export.Layout(st)

	if f.zipFile != "" {
		out, err := os.Create(f.zipFile)
		if err != nil {
			return fmt.Errorf("creating %s: %w", f.zipFile, err)
		}
		if err := export.WriteZip(out, entries); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", f.zipFile, err)
		}
		a.log.Info("export written", zap.String("zip", f.zipFile), zap.Int("files", len(entries)))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(entries), f.zipFile)
		return nil
	}

	dir := f.outDir
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	if err := export.WriteDir(dir, entries); err != nil {
		return err
	}
	a.log.Info("export written", zap.String("dir", dir), zap.Int("files", len(entries)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(entries), dir)
	return nil
}

func newBuildCmd(a *app) *cobra.Command {
	var ef exportFlags
	var backupFile string
	var normalize, loop bool

	cmd := &cobra.Command{
		Use:   "build <folder>",
		Short: "Build a tape layout from a folder of samples",
		Long: `Build imports every audio file below <folder>. A file in a folder named after a
tape (B, G, P, R, T, Y or blue, green, ...) goes on that tape; a leading
number 1-6 in its name pins the slot. Everything else ends up in EXTRAS.

Optional edits run on every imported file and are kept as new versions:
--normalize brings the peak to the configured target, --loop applies the
configured crossfade at the loop point.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := project.LoadFolder(os.DirFS(args[0]))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found in %s", args[0])
			}

			eng := a.engine()
			st, report, err := eng.ImportFolder(ctx, project.NewState(), files)
			if err != nil {
				return err
			}
			for _, f := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.Path, f.Err)
			}

			params := dsp.EditParams{Normalize: normalize, NormalizeTarget: a.cfg.Edit.NormalizeTargetDB}
			if loop {
				params.LoopCrossfade = a.cfg.Edit.LoopCrossfade
			}
			if st, err = a.applyEdit(eng, st, params); err != nil {
				return err
			}

			if err := a.writeLayout(cmd, ef, st); err != nil {
				return err
			}

			if backupFile != "" {
				if err := backup.WriteFile(backupFile, st); err != nil {
					return err
				}
				a.log.Info("backup written", zap.String("file", backupFile))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "placed %d, extras %d, failed %d\n", len(report.Placed), len(report.Parked), len(report.Failed))
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&backupFile, "backup", "", "Also save a project backup to this file")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize every file to the configured target")
	cmd.Flags().BoolVar(&loop, "loop", false, "Apply the configured loop crossfade to every file")
	return cmd
}

// applyEdit runs params over every file in id order and saves the dirty
// results as new versions.
func (a *app) applyEdit(eng *project.Engine, st *project.State, params dsp.EditParams) (*project.State, error) {
	if !params.Normalize && params.LoopCrossfade <= 0 {
		return st, nil
	}

	ids := make([]string, 0, len(st.Files))
	for id := range st.Files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		edit, dirty, err := project.RenderEdit(st.Files[id], params, project.DescEdit)
		if err != nil {
			return st, err
		}
		if st, err = eng.SaveEdit(st, id, edit, dirty); err != nil {
			return st, err
		}
		a.log.Debug("edit applied", zap.String("file", id), zap.Bool("changed", dirty))
	}
	return st, nil
}
