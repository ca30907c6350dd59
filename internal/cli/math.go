package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <key> <number>",
		Short: "Add to the number at a key and print the result",
		Long: `Add adds number to the value at key. A missing or non-numeric value counts
as 0.

Example:
  pantry add stats.views 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.accumulate(cmd, args, (*pantry.Store).Add)
		},
	}
}

func newSubtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subtract <key> <number>",
		Short: "Subtract from the number at a key and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.accumulate(cmd, args, (*pantry.Store).Subtract)
		},
	}
}

func (a *app) accumulate(cmd *cobra.Command, args []string, op func(*pantry.Store, string, float64) (float64, error)) error {
	delta, err := parseNumber(args[1])
	if err != nil {
		return err
	}
	return a.withStore(func(s *pantry.Store) error {
		n, err := op(s, args[0], delta)
		if err != nil {
			return err
		}
		if math.IsInf(n, 0) || math.IsNaN(n) {
			// Stored as null; JSON has no literal for the result.
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		}
		return printJSON(cmd, n)
	})
}
