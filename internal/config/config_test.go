package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '\\', cfg.Editor.TriggerRune())
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "scribe.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[editor]
trigger = "/"
menu_width = 40

[store]
driver = "postgres"
dsn = "postgres://localhost/scribe"
`), 0o600))
	yamlPath := filepath.Join(dir, "scribe.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("editor:\n  trigger: \"/\"\n  menu_width: 40\nstore:\n  driver: postgres\n  dsn: postgres://localhost/scribe\n"), 0o600))

	for _, path := range []string{tomlPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := Load(WithFile(path), WithoutDotEnv())
			require.NoError(t, err)
			assert.Equal(t, '/', cfg.Editor.TriggerRune())
			assert.Equal(t, 40, cfg.Editor.MenuWidth)
			assert.Equal(t, 10, cfg.Editor.MenuHeight, "defaults survive")
			assert.Equal(t, DriverPostgres, cfg.Store.Driver)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "nope.toml")), WithoutDotEnv())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCRIBE_EDITOR_MENU_WIDTH", "50")
	t.Setenv("SCRIBE_EDITOR_INLINE_SHORTHAND", "off")
	t.Setenv("SCRIBE_SERVER_ADDR", ":9090")

	cfg, err := Load(WithoutDotEnv())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Editor.MenuWidth)
	assert.False(t, cfg.Editor.InlineShorthand)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("SCRIBE_EDITOR_MENU_WIDTH", "wide")

	_, err := Load(WithoutDotEnv())
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCRIBE_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("SCRIBE_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("SCRIBE_LOG_LEVEL"))

	cfg, err := Load(WithDotEnv(path))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
		rule   string
	}{
		{"trigger too long", func(c *Config) { c.Editor.Trigger = "ab" }, "Editor.Trigger", "len"},
		{"empty trigger", func(c *Config) { c.Editor.Trigger = "" }, "Editor.Trigger", "len"},
		{"narrow menu", func(c *Config) { c.Editor.MenuWidth = 2 }, "Editor.MenuWidth", "gte"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, "Store.Driver", "oneof"},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, "Store.DSN", "required_if"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "Log.Level", "oneof"},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "Server.Addr", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrValidationFailed)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.path, verrs[0].Path)
			assert.Equal(t, tt.rule, verrs[0].Rule)
		})
	}
}

func TestTriggerRuneMultibyte(t *testing.T) {
	cfg := Default()
	cfg.Editor.Trigger = "§"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '§', cfg.Editor.TriggerRune())
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nmenu_width = 20\n"), 0o600))

	reloaded := make(chan *Config, 4)
	w, err := Watch(func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, WithFile(path), WithoutDotEnv())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[editor]\nmenu_width = 30\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 30, cfg.Editor.MenuWidth)
	case <-time.After(5 * time.Second):
		t.Fatal("config not reloaded")
	}
}

func TestWatchRequiresFile(t *testing.T) {
	_, err := Watch(func(*Config, error) {})
	assert.ErrorIs(t, err, ErrNoFile)
}
