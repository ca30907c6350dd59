package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Config keys read from config.yaml and PANTRY_* environment variables.
const (
	cfgKeyDriver    = "driver"
	cfgKeyFileName  = "file_name"
	cfgKeyTableName = "table_name"
	cfgKeyDSN       = "dsn"
	cfgKeyDataDir   = "data_dir"

	envPrefix = "PANTRY"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Driver    string `yaml:"driver"`
	FileName  string `yaml:"file_name,omitempty"`
	TableName string `yaml:"table_name"`
	DSN       string `yaml:"dsn,omitempty"`
	DataDir   string `yaml:"data_dir,omitempty"`
}

// loadConfig reads config.yaml from the resolved config directory. A missing
// file is not an error; PANTRY_* variables and flags override it.
func (a *app) loadConfig() (*viper.Viper, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	defaults := types.DefaultConfig()
	v.SetDefault(cfgKeyDriver, defaults.Driver)
	v.SetDefault(cfgKeyFileName, defaults.FileName)
	v.SetDefault(cfgKeyTableName, defaults.TableName)
	v.SetDefault(cfgKeyDSN, "")
	v.SetDefault(cfgKeyDataDir, "")
	v.SetEnvPrefix(envPrefix)
	// data_dir is not bound: PANTRY_DATA_DIR ranks below the config file.
	for _, key := range []string{cfgKeyDriver, cfgKeyFileName, cfgKeyTableName, cfgKeyDSN} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	overrides := map[string]string{
		cfgKeyDriver:    a.flags.driver,
		cfgKeyFileName:  a.flags.fileName,
		cfgKeyTableName: a.flags.tableName,
		cfgKeyDSN:       a.flags.dsn,
	}
	for key, val := range overrides {
		if val != "" {
			v.Set(key, val)
		}
	}
	a.cfgDir = configDir
	return v, nil
}

// isMissingConfig reports whether err means there is no config file. Viper
// returns the underlying os error when the path is set explicitly.
func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// storeConfig builds the backend config, resolving a relative SQLite file
// against the data directory.
func (a *app) storeConfig() (types.Config, error) {
	cfg := types.Config{
		Driver:    a.cfg.GetString(cfgKeyDriver),
		FileName:  a.cfg.GetString(cfgKeyFileName),
		TableName: a.cfg.GetString(cfgKeyTableName),
		DSN:       a.cfg.GetString(cfgKeyDSN),
	}.WithDefaults()

	if cfg.Driver == types.DriverSQLite {
		dataDir, err := a.dataDir()
		if err != nil {
			return types.Config{}, err
		}
		cfg.FileName = paths.DatabasePath(dataDir, cfg.FileName)
	}
	return cfg, nil
}

func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return dir, nil
}

// writeConfigIfMissing creates config.yaml from cfg when the file does not
// exist. It reports whether a file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
