package rawfmt

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// LoggerFromEnvOption customizes LoggerFromEnv behavior.
type LoggerFromEnvOption func(*loggerFromEnvConfig)

type loggerFromEnvConfig struct {
	prefix  string
	options Options
	stdout  io.Writer
	stderr  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by
// LoggerFromEnv. The default is "RAWFMT_".
func WithEnvPrefix(prefix string) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds LoggerFromEnv with explicit Options values.
func WithEnvOptions(opts Options) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		cfg.options = opts
	}
}

// WithEnvStreams replaces the writers MIRROR=stdout and MIRROR=stderr refer
// to. Nil leaves the os stream in place.
func WithEnvStreams(stdout, stderr io.Writer) LoggerFromEnvOption {
	return func(cfg *loggerFromEnvConfig) {
		if stdout != nil {
			cfg.stdout = stdout
		}
		if stderr != nil {
			cfg.stderr = stderr
		}
	}
}

// LoggerFromEnv builds a Logger from environment variables on top of the
// seeded Options. Environment values win; malformed values are ignored.
//
// Recognised variables are {prefix}PATH, APPEND (bool), PERM (octal) and
// MIRROR (none, stdout, stderr, or auto to mirror to stderr only when it is
// a terminal).
func LoggerFromEnv(opts ...LoggerFromEnvOption) *Logger {
	cfg := loggerFromEnvConfig{
		prefix: "RAWFMT_",
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolved := cfg.options
	prefix := cfg.prefix
	if value, ok := lookupEnv(prefix, "PATH"); ok {
		if parsed := strings.TrimSpace(value); parsed != "" {
			resolved.Path = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "APPEND"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolved.Append = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "PERM"); ok {
		if parsed, ok := ParsePerm(value); ok {
			resolved.Perm = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "MIRROR"); ok {
		if mirror, ok := MirrorWriter(value, cfg.stdout, cfg.stderr); ok {
			resolved.Mirror = mirror
		}
	}
	return New(resolved)
}

// MirrorWriter resolves a mirror setting. It reports false for values it
// does not recognise. "none" and "" resolve to a nil writer.
func MirrorWriter(value string, stdout, stderr io.Writer) (io.Writer, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "off":
		return nil, true
	case "stdout":
		return stdout, true
	case "stderr":
		return stderr, true
	case "auto":
		if isTerminal(stderr) {
			return stderr, true
		}
		return nil, true
	default:
		return nil, false
	}
}

// ParsePerm parses an octal permission such as "0644" or "600".
func ParsePerm(value string) (os.FileMode, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 8, 32)
	if err != nil || parsed == 0 || parsed > 0o777 {
		return 0, false
	}
	return os.FileMode(parsed), true
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + key)
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}
