package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the table",
		Long:  "Create the config directory and config.yaml if missing, then open the store so the table exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.cfgDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}
			cfgPath := paths.ConfigFile(a.cfgDir)
			wrote, err := writeConfigIfMissing(cfgPath, configFile{
				Driver:    a.cfg.GetString(cfgKeyDriver),
				FileName:  a.cfg.GetString(cfgKeyFileName),
				TableName: a.cfg.GetString(cfgKeyTableName),
				DSN:       a.cfg.GetString(cfgKeyDSN),
				DataDir:   a.flags.dataDir,
			})
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}
			if wrote {
				a.log.Debug("wrote config", "path", cfgPath)
			}

			storeCfg, err := a.storeConfig()
			if err != nil {
				return sysError(err)
			}
			if err := a.withStore(func(*pantry.Store) error { return nil }); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "pantry initialized")
			fmt.Fprintln(out, "  config:", cfgPath)
			if storeCfg.FileName != "" {
				fmt.Fprintln(out, "  database:", storeCfg.FileName)
			}
			fmt.Fprintln(out, "  table:", storeCfg.TableName)
			return nil
		},
	}
}
