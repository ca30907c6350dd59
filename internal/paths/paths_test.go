package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform lookups for the duration of a test.
func withPlatform(t *testing.T, goos, home, userConfig, cwd string) {
	t.Helper()
	saved := platform
	t.Cleanup(func() { platform = saved })
	platform.goos = goos
	platform.homeDir = func() (string, error) { return home, nil }
	platform.userConfigDir = func() (string, error) { return userConfig, nil }
	platform.getwd = func() (string, error) { return cwd, nil }
}

func TestDefaultConfigDir(t *testing.T) {
	t.Run("linux uses XDG_CONFIG_HOME", func(t *testing.T) {
		withPlatform(t, "linux", "/home/u", "", "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", "pantry"), got)
	})

	t.Run("linux falls back to ~/.config", func(t *testing.T) {
		withPlatform(t, "linux", "/home/u", "", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/u", ".config", "pantry"), got)
	})

	t.Run("darwin uses UserConfigDir", func(t *testing.T) {
		withPlatform(t, "darwin", "/Users/u", "/Users/u/Library/Application Support", "")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/Users/u/Library/Application Support", "pantry"), got)
	})

	t.Run("home lookup failure", func(t *testing.T) {
		withPlatform(t, "linux", "", "", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		platform.homeDir = func() (string, error) { return "", errors.New("no home") }
		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestResolveConfigDir(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"flag wins", "/from/flag", "/from/env", "/from/flag"},
		{"env used without flag", "", "/from/env", "/from/env"},
		{"platform default", "", "", filepath.Join("/home/u", ".config", "pantry")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative flag is made absolute", func(t *testing.T) {
		got, err := ResolveConfigDir("rel")
		require.NoError(t, err)
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "rel"), got)
	})
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "", "/work")

	tests := []struct {
		name       string
		flag       string
		configured string
		env        string
		want       string
	}{
		{"flag wins", "/flag", "/cfg", "/env", "/flag"},
		{"config beats env", "", "/cfg", "/env", "/cfg"},
		{"env", "", "", "/env", "/env"},
		{"working directory", "", "", "", "/work"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "json.sqlite"), DatabasePath("/data", "json.sqlite"))
	assert.Equal(t, filepath.Join("/data", "sub", "x.db"), DatabasePath("/data", "sub/x.db"))
	assert.Equal(t, "/abs/x.db", DatabasePath("/data", "/abs/x.db"))
	assert.Equal(t, ":memory:", DatabasePath("/data", ":memory:"))
	assert.Equal(t, "file:x?mode=memory", DatabasePath("/data", "file:x?mode=memory"))
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "config.yaml"), ConfigFile("/cfg"))
}
