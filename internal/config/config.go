package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/scribe/internal/config/loader"
	"github.com/dshills/scribe/internal/logging"
)

// EnvPrefix prefixes every scribe environment variable.
const EnvPrefix = "SCRIBE_"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the complete scribe configuration.
type Config struct {
	Editor EditorConfig   `toml:"editor" yaml:"editor"`
	Log    logging.Config `toml:"log" yaml:"log"`
	Store  StoreConfig    `toml:"store" yaml:"store"`
	Server ServerConfig   `toml:"server" yaml:"server"`
}

// EditorConfig configures the authoring engine.
type EditorConfig struct {
	// Trigger is the single character that opens the command palette.
	Trigger        string `toml:"trigger" yaml:"trigger" validate:"len=1"`
	MenuWidth      int    `toml:"menu_width" yaml:"menu_width" validate:"gte=8"`
	MenuHeight     int    `toml:"menu_height" yaml:"menu_height" validate:"gte=1"`
	ViewportWidth  int    `toml:"viewport_width" yaml:"viewport_width" validate:"gte=1"`
	ViewportHeight int    `toml:"viewport_height" yaml:"viewport_height" validate:"gte=1"`
	// BlockShorthand enables "# ", "- " and "1. ".
	BlockShorthand bool `toml:"block_shorthand" yaml:"block_shorthand"`
	// InlineShorthand enables "**", "~~" and "*".
	InlineShorthand bool `toml:"inline_shorthand" yaml:"inline_shorthand"`
}

// TriggerRune returns the trigger character.
func (e EditorConfig) TriggerRune() rune {
	r, _ := utf8.DecodeRuneInString(e.Trigger)
	return r
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver             string `toml:"driver" yaml:"driver" validate:"oneof=memory postgres"`
	DSN                string `toml:"dsn" yaml:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns       int    `toml:"max_open_conns" yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns       int    `toml:"max_idle_conns" yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec" yaml:"conn_max_lifetime_sec" validate:"gte=0"`
	AutoMigrate        bool   `toml:"auto_migrate" yaml:"auto_migrate"`
}

// ServerConfig configures the document service.
type ServerConfig struct {
	Addr           string `toml:"addr" yaml:"addr" validate:"required"`
	BodyLimitKB    int    `toml:"body_limit_kb" yaml:"body_limit_kb" validate:"gte=1"`
	ReadTimeoutSec int    `toml:"read_timeout_sec" yaml:"read_timeout_sec" validate:"gte=0"`
	// CorsOrigins is a comma-separated list of allowed origins.
	CorsOrigins string `toml:"cors_origins" yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Trigger:         `\`,
			MenuWidth:       32,
			MenuHeight:      10,
			ViewportWidth:   80,
			ViewportHeight:  24,
			BlockShorthand:  true,
			InlineShorthand: true,
		},
		Log: logging.DefaultConfig(),
		Store: StoreConfig{
			Driver:             DriverMemory,
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
			AutoMigrate:        true,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			BodyLimitKB:    1024,
			ReadTimeoutSec: 10,
			CorsOrigins:    "*",
		},
	}
}

type options struct {
	file     string
	dotEnv   []string
	noDotEnv bool
	fs       loader.FileSystem
}

// Option configures Load.
type Option func(*options)

// WithFile sets the config file. Its extension selects the format.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithDotEnv sets the .env files to read. The default is ".env".
func WithDotEnv(files ...string) Option {
	return func(o *options) { o.dotEnv = files }
}

// WithoutDotEnv skips .env files.
func WithoutDotEnv() Option {
	return func(o *options) { o.noDotEnv = true }
}

// WithFS sets the file system the config file is read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load resolves and validates the configuration.
func Load(opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if o.file != "" {
		if err := loader.NewFileLoader(o.fs).Load(o.file, cfg); err != nil {
			if errors.Is(err, loader.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.file)
			}
			return nil, err
		}
	}
	if !o.noDotEnv {
		if err := loader.LoadDotEnv(o.dotEnv...); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}
	if err := cfg.applyEnv(loader.NewEnvLoader(EnvPrefix).Load()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting. The error is a ValidationErrors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	out := make(ValidationErrors, len(verrs))
	for i, fe := range verrs {
		out[i] = &ValidationError{
			Path:  strings.TrimPrefix(fe.Namespace(), "Config."),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		}
	}
	return out
}

// applyEnv overrides settings from config-path -> raw value pairs. Unknown
// paths are ignored.
func (c *Config) applyEnv(values map[string]string) error {
	str := map[string]*string{
		"editor.trigger":      &c.Editor.Trigger,
		"log.level":           &c.Log.Level,
		"log.format":          &c.Log.Format,
		"log.file":            &c.Log.File,
		"store.driver":        &c.Store.Driver,
		"store.dsn":           &c.Store.DSN,
		"server.addr":         &c.Server.Addr,
		"server.cors_origins": &c.Server.CorsOrigins,
	}
	ints := map[string]*int{
		"editor.menu_width":           &c.Editor.MenuWidth,
		"editor.menu_height":          &c.Editor.MenuHeight,
		"editor.viewport_width":       &c.Editor.ViewportWidth,
		"editor.viewport_height":      &c.Editor.ViewportHeight,
		"log.max_size_mb":             &c.Log.MaxSizeMB,
		"log.max_backups":             &c.Log.MaxBackups,
		"log.max_age_days":            &c.Log.MaxAgeDays,
		"store.max_open_conns":        &c.Store.MaxOpenConns,
		"store.max_idle_conns":        &c.Store.MaxIdleConns,
		"store.conn_max_lifetime_sec": &c.Store.ConnMaxLifetimeSec,
		"server.body_limit_kb":        &c.Server.BodyLimitKB,
		"server.read_timeout_sec":     &c.Server.ReadTimeoutSec,
	}
	bools := map[string]*bool{
		"editor.block_shorthand":  &c.Editor.BlockShorthand,
		"editor.inline_shorthand": &c.Editor.InlineShorthand,
		"log.console":             &c.Log.Console,
		"log.compress":            &c.Log.Compress,
		"store.auto_migrate":      &c.Store.AutoMigrate,
	}

	for path, raw := range values {
		switch {
		case str[path] != nil:
			*str[path] = raw
		case ints[path] != nil:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidValue, path, raw)
			}
			*ints[path] = n
		case bools[path] != nil:
			b, err := parseBool(raw)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidValue, path, raw)
			}
			*bools[path] = b
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
