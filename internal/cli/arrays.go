package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <key> <value>",
		Short: "Append a value to the array at a key",
		Long: `Push appends value to the array at key and prints the array. A missing or
non-array value starts a new array.

Example:
  pantry push user.tags '"admin"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				arr, err := pantry.Push(s, args[0], parseValue(args[1]))
				if err != nil {
					return err
				}
				return printJSON(cmd, arr)
			})
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <key> <value>",
		Short: "Remove every matching value from the array at a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				arr, err := pantry.Pull(s, args[0], parseValue(args[1]))
				if err != nil {
					return err
				}
				return printJSON(cmd, arr)
			})
		},
	}
}
