// Package config holds the runtime settings for the intake server and CLI.
// Values start from Default, are overlaid by an optional TOML file and are
// finally overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/document"
)

const (
	appName    = "intake"
	configFile = "config.toml"
)

// Log formats accepted by Log.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the full set of runtime settings.
type Config struct {
	Server   Server   `toml:"server"`
	Document Document `toml:"document"`
	Log      Log      `toml:"log"`
}

// Server configures the HTTP front end and its session store.
type Server struct {
	Addr          string        `toml:"addr"`
	ShutdownGrace time.Duration `toml:"shutdown_grace"`
	SessionTTL    time.Duration `toml:"session_ttl"`
	SweepInterval time.Duration `toml:"sweep_interval"`
	// TemplatesDir shadows the embedded page templates file by file.
	TemplatesDir string `toml:"templates_dir"`
}

// Document configures the PDF summary.
type Document struct {
	TaxYear      string  `toml:"tax_year"`
	BottomMargin float64 `toml:"bottom_margin"`
	Compress     bool    `toml:"compress"`
	Author       string  `toml:"author"`
}

// Log configures the zerolog output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":8484",
			ShutdownGrace: 5 * time.Second,
			SessionTTL:    30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Document: Document{
			TaxYear:      document.DefaultTaxYear,
			BottomMargin: document.DefaultBottomMargin,
			Compress:     true,
		},
		Log: Log{
			Level:  "info",
			Format: FormatConsole,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFile), nil
}

// Load overlays the TOML file at path on top of Default. An empty path falls
// back to DefaultPath, and a missing default file is not an error. Unknown
// keys are rejected so typos surface early.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		fallback, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = fallback
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the server or renderer cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownGrace <= 0 {
		errs = append(errs, errors.New("server.shutdown_grace must be positive"))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, errors.New("server.session_ttl must be positive"))
	}
	if c.Server.SweepInterval <= 0 {
		errs = append(errs, errors.New("server.sweep_interval must be positive"))
	}
	if dir := strings.TrimSpace(c.Server.TemplatesDir); dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Errorf("server.templates_dir %q is not a directory", dir))
		}
	}
	if c.Document.BottomMargin <= 0 {
		errs = append(errs, errors.New("document.bottom_margin must be positive"))
	}
	if strings.TrimSpace(c.Document.TaxYear) == "" {
		errs = append(errs, errors.New("document.tax_year is required"))
	}
	if _, err := c.Log.ZerologLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be %q or %q", c.Log.Format, FormatConsole, FormatJSON))
	}
	return errors.Join(errs...)
}

// DocumentOptions translates the document settings into renderer options.
func (c Config) DocumentOptions() []document.Option {
	opts := []document.Option{
		document.WithTaxYear(c.Document.TaxYear),
		document.WithBottomMargin(c.Document.BottomMargin),
		document.WithCompression(c.Document.Compress),
	}
	if author := strings.TrimSpace(c.Document.Author); author != "" {
		opts = append(opts, document.WithAuthor(author))
	}
	return opts
}

// ZerologLevel parses Level.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
