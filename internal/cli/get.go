package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value at a key",
		Long: `Get prints the value stored at key as indented JSON. A missing key or
member exits with status 1.

Example:
  pantry get user
  pantry get user.profile.name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				v, ok, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return userError(fmt.Errorf("key %q not found", args[0]))
				}
				return printJSON(cmd, v)
			})
		},
	}
}

func newHasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has <key>",
		Short: "Report whether a key holds a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				ok, err := s.Has(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, ok)
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value at a key",
		Long: `Set stores value at key. The value is parsed as JSON; anything that is not
valid JSON is stored as a string. A dotted key updates one member and keeps
the rest of the document.

Example:
  pantry set user '{"name":"ada"}'
  pantry set user.age 36
  pantry set user.city London`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				return s.Set(args[0], parseValue(args[1]))
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a record or a member of a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				return s.Delete(args[0])
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every record in the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				return s.DeleteAll()
			})
		},
	}
}
