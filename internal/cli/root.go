// Package cli implements the pantry command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values and overrides for config.yaml keys.
type rootFlags struct {
	configDir string
	dataDir   string
	verbose   bool
	driver    string
	fileName  string
	tableName string
	dsn       string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags  rootFlags
	cfg    *viper.Viper
	cfgDir string
	log    *slog.Logger
}

// NewRootCmd creates the top-level "pantry" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pantry",
		Short: "A JSON document store on a single SQL table",
		Long: "pantry stores JSON documents by key in one SQLite or Postgres table.\n" +
			"Dotted keys such as user.profile.name address members inside a document.",
		Version:       pantry.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/pantry)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory a relative database file is resolved against (default: $(CWD))")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.StringVar(&a.flags.driver, "driver", "", "row backend: sqlite or postgres")
	pf.StringVar(&a.flags.fileName, "file", "", "SQLite database file (default: json.sqlite)")
	pf.StringVar(&a.flags.tableName, "table", "", "table name (default: json)")
	pf.StringVar(&a.flags.dsn, "dsn", "", "postgres connection string")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newHasCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newAddCmd(a),
		newSubtractCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newDumpCmd(a),
		newLoadCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "pantry:", err)
	return exitCode(err)
}

// setup loads the config file and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = newLogger(cmd.ErrOrStderr(), a.flags.verbose)

	v, err := a.loadConfig()
	if err != nil {
		return sysError(err)
	}
	a.cfg = v
	return nil
}

// cliError carries the exit code for an error returned by a command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cliError{code: exitSysError, err: err} }

// userErrors are caused by bad input rather than a failing backend.
var userErrors = []error{
	types.ErrInvalidKey,
	types.ErrEncoding,
	types.ErrNonFinite,
	types.ErrDriverUnknown,
	types.ErrTableNameInvalid,
	types.ErrDSNEmpty,
	types.ErrFileNameEmpty,
}

// classify marks a store error with its exit code: bad input is a user
// error, anything else came from the backend.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps an error to a process exit code. Unmarked errors come from
// cobra flag and argument parsing.
func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
