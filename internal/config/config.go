// Package config loads rawfmt CLI settings.
//
// Sources, lowest to highest precedence:
//  1. Built-in defaults
//  2. A YAML file: the --config path, or the first of .rawfmt.yaml,
//     .rawfmt.yml and ~/.config/rawfmt/config.yaml that exists
//  3. RAWFMT_* environment variables
//  4. Command-line flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pkt.systems/rawfmt"
)

// EnvPrefix is the prefix of the environment variables Load honours.
const EnvPrefix = "RAWFMT_"

// Config holds the settings for the log file target.
type Config struct {
	// Path of the log file.
	Path string `yaml:"path"`
	// Append keeps existing contents instead of truncating on first open.
	Append bool `yaml:"append"`
	// Perm is the octal creation mode, for example "0644".
	Perm string `yaml:"perm"`
	// Mirror is none, stdout, stderr or auto.
	Mirror string `yaml:"mirror"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Path:   rawfmt.DefaultPath,
		Perm:   "0777",
		Mirror: "none",
	}
}

// Load builds a Config from defaults, the config file and the environment.
// An explicit configPath that cannot be read is an error; a missing file in
// the default locations is not.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(path, cfg); err != nil {
				return nil, fmt.Errorf("load config from %s: %w", path, err)
			}
			break
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Path = expandPath(cfg.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{".rawfmt.yaml", ".rawfmt.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rawfmt", "config.yaml"))
	}
	return paths
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "PATH"); ok && strings.TrimSpace(v) != "" {
		cfg.Path = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "APPEND"); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sAPPEND: %w", EnvPrefix, err)
		}
		cfg.Append = parsed
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PERM"); ok {
		cfg.Perm = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MIRROR"); ok {
		cfg.Mirror = strings.TrimSpace(v)
	}
	return nil
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks that every field can be turned into logger options.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalid)
	}
	if _, ok := rawfmt.ParsePerm(c.Perm); !ok {
		return fmt.Errorf("%w: perm %q is not an octal mode", ErrInvalid, c.Perm)
	}
	if _, ok := rawfmt.MirrorWriter(c.Mirror, io.Discard, io.Discard); !ok {
		return fmt.Errorf("%w: mirror %q", ErrInvalid, c.Mirror)
	}
	return nil
}

// Options converts the Config into logger options. stdout and stderr are
// the streams "stdout", "stderr" and "auto" mirror to.
func (c *Config) Options(stdout, stderr io.Writer) (rawfmt.Options, error) {
	if err := c.Validate(); err != nil {
		return rawfmt.Options{}, err
	}
	perm, _ := rawfmt.ParsePerm(c.Perm)
	mirror, _ := rawfmt.MirrorWriter(c.Mirror, stdout, stderr)
	return rawfmt.Options{
		Path:   c.Path,
		Append: c.Append,
		Perm:   perm,
		Mirror: mirror,
	}, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
