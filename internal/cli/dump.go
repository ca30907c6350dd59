package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Write every record as JSON lines to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				var n int
				var err error
				if len(args) == 1 {
					n, err = s.ExportFile(args[0])
				} else {
					n, err = s.Export(cmd.OutOrStdout())
				}
				if err != nil {
					return err
				}
				a.log.Info("dumped", "records", n)
				return nil
			})
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Upsert every record from a JSON lines file",
		Long: `Load reads records written by dump and upserts each one. Blank and
malformed lines are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				n, err := s.ImportFile(args[0])
				if errors.Is(err, fs.ErrNotExist) {
					return userError(err)
				}
				if err != nil {
					return err
				}
				a.log.Info("loaded", "records", n)
				return nil
			})
		},
	}
}
