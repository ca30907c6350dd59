package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

// withStore opens the configured store, runs fn, and closes the store.
// Errors from fn are classified into exit codes.
func (a *app) withStore(fn func(s *pantry.Store) error) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return sysError(err)
	}
	s, err := pantry.Open(cfg, a.log)
	if err != nil {
		return classify(fmt.Errorf("open store: %w", err))
	}
	defer s.Close()
	return classify(fn(s))
}

// parseValue reads a command-line value as JSON, falling back to the raw
// string so that `pantry set name ada` stores "ada".
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

// parseNumber reads the delta argument of add and subtract.
func parseNumber(arg string) (float64, error) {
	n, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, userError(fmt.Errorf("invalid number %q", arg))
	}
	return n, nil
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
