package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

const modulePath = "github.com/mesh-intelligence/pantry"

// driverModules are the row backend drivers reported by version.
var driverModules = []string{"modernc.org/sqlite", "github.com/lib/pq"}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the pantry version and build details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, pantry.Version)
				return nil
			}
			bi, _ := debug.ReadBuildInfo()
			writeVersion(out, bi)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}

// writeVersion prints the release version, toolchain, VCS revision, and
// driver versions. bi may be nil when the binary has no build info.
func writeVersion(w io.Writer, bi *debug.BuildInfo) {
	fmt.Fprintf(w, "pantry v%s\n", pantry.Version)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	if bi == nil {
		fmt.Fprintf(w, "module: %s\n", modulePath)
		return
	}

	module := bi.Main.Path
	if module == "" {
		module = modulePath
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		module += "@" + v
	}
	fmt.Fprintf(w, "module: %s\n", module)

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			fmt.Fprintf(w, "commit: %s\n", s.Value)
		}
	}
	for _, dep := range bi.Deps {
		for _, name := range driverModules {
			if dep.Path == name {
				fmt.Fprintf(w, "%s: %s\n", dep.Path, dep.Version)
			}
		}
	}
}
