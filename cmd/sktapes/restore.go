// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/sktapes/backup"
	"github.com/spf13/cobra"
)

func newRestoreCmd(a *app) *cobra.Command {
	var ef exportFlags

	cmd := &cobra.Command{
		Use:   "restore <backup.zip>",
		Short: "Export the SK layout stored in a project backup",
		Long: `Restore loads a backup written by build --backup and exports its current
versions. Versions whose audio is missing from the archive are dropped and
reported as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, repairs, err := backup.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.logRepairs(repairs)

			return a.writeLayout(cmd, ef, st)
		},
	}
	ef.register(cmd)
	return cmd
}
