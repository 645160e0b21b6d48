// Package cli implements the rawfmt command: render a printf-style format
// with command-line arguments to stdout or to a log file.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pkt.systems/rawfmt"
	"pkt.systems/rawfmt/internal/config"
)

type flags struct {
	configPath string
	toLog      bool
	path       string
	appendMode bool
	perm       string
	mirror     string
	count      bool
}

// NewRootCommand builds the rawfmt command writing to the given streams.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "rawfmt [flags] FORMAT [ARG...]",
		Short: "Render a printf-style format without the fmt package",
		Long: `rawfmt renders FORMAT with ARGs through the rawfmt engine.

Each ARG is passed as a 64-bit integer when it parses as one (decimal, 0x hex,
0o or leading-0 octal), otherwise as a string. Integer conversions pull 4 bytes
unless a length modifier says otherwise, so use %ld for values wider than 32
bits.

Output goes to stdout, or with --log to the log file (default /tmp/link_log).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args, stdout, stderr)
		},
	}
	// everything after FORMAT is an argument, including "-5"
	cmd.Flags().SetInterspersed(false)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML config file")
	cmd.Flags().BoolVar(&f.toLog, "log", false, "write to the log file instead of stdout")
	cmd.Flags().StringVar(&f.path, "path", "", "log file path")
	cmd.Flags().BoolVar(&f.appendMode, "append", false, "keep existing log contents")
	cmd.Flags().StringVar(&f.perm, "perm", "", "octal mode for a new log file")
	cmd.Flags().StringVar(&f.mirror, "mirror", "", "also copy log output to none|stdout|stderr|auto")
	cmd.Flags().BoolVarP(&f.count, "count", "c", false, "print the number of bytes written to stderr")
	return cmd
}

func run(cmd *cobra.Command, f flags, args []string, stdout, stderr io.Writer) error {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "rawfmt",
	})

	format := args[0]
	values := rawfmt.NewArgs(ParseArgs(args[1:])...)

	var n int
	checkUnused := true
	if f.toLog {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, f, cfg)
		opts, err := cfg.Options(stdout, stderr)
		if err != nil {
			return err
		}
		l := rawfmt.New(opts)
		n = l.Render(format, values)
		if err := l.Close(); err != nil {
			logger.Warn("close log file", "path", opts.Path, "err", err)
		}
		if n == 0 && format != "" {
			logger.Warn("nothing written to log file", "path", opts.Path)
			checkUnused = false
		}
	} else {
		n = renderStdout(stdout, format, values)
	}

	if left := values.Remaining(); checkUnused && left > 0 {
		logger.Warn("arguments not used by the format", "count", left)
	}
	if f.count {
		fmt.Fprintln(stderr, n)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("path") {
		cfg.Path = f.path
	}
	if changed("append") {
		cfg.Append = f.appendMode
	}
	if changed("perm") {
		cfg.Perm = f.perm
	}
	if changed("mirror") {
		cfg.Mirror = f.mirror
	}
}

type fdWriter interface {
	Fd() uintptr
}

// renderStdout writes through raw syscalls when stdout is a real file.
func renderStdout(stdout io.Writer, format string, args rawfmt.Cursor) int {
	if f, ok := stdout.(fdWriter); ok {
		sink := rawfmt.NewFileSink(nil, int(f.Fd()))
		rawfmt.Render(sink, format, args)
		return sink.Written()
	}
	sink := rawfmt.NewWriterSink(stdout)
	rawfmt.Render(sink, format, args)
	return sink.Written()
}

// ParseArgs converts command-line words into render arguments: int64 when
// the word parses as a signed integer, uint64 when only an unsigned parse
// succeeds, the string itself otherwise.
func ParseArgs(words []string) []any {
	values := make([]any, 0, len(words))
	for _, w := range words {
		if v, err := strconv.ParseInt(w, 0, 64); err == nil {
			values = append(values, v)
			continue
		}
		if v, err := strconv.ParseUint(w, 0, 64); err == nil {
			values = append(values, v)
			continue
		}
		values = append(values, w)
	}
	return values
}

// Execute runs the rawfmt command with os.Args and returns the exit code:
// 2 for configuration errors, 1 for anything else that fails.
func Execute() int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rawfmt"})
		logger.Error("failed", "err", err)
		if errors.Is(err, config.ErrInvalid) {
			return 2
		}
		return 1
	}
	return 0
}
