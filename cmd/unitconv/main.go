package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sambeau/unitconv/app"
	"github.com/sambeau/unitconv/config"
	"github.com/sambeau/unitconv/logging"
	"github.com/sambeau/unitconv/pkg/errors"
)

// Version is set at build time via -ldflags
var Version = "0.1.0-dev"

// Exit statuses
const (
	exitOK       = 0
	exitFailure  = 1 // conversion or storage error
	exitUsage    = 2 // bad arguments or unparseable value
	dotEnvFile   = ".env"
	usageMessage = "usage: unitconv <value> <from> <to>\nRun 'unitconv --help' for more."
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	cancel()
	os.Exit(code)
}

// run is the main entry point, designed for testability (Mat Ryer pattern).
// It returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, getenv: getenv}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(normalizeArgs(args))
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var fail *failure
	if stderrors.As(err, &fail) {
		printError(stderr, fail.err)
		return exitFailure
	}
	printError(stderr, err)
	fmt.Fprintln(stderr, usageMessage)
	return exitUsage
}

// failure marks an error that exits with status 1. Anything else returned
// from a command is treated as a usage error.
type failure struct {
	err error
}

func (f *failure) Error() string { return f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

func fail(err error) error {
	if err == nil {
		return nil
	}
	return &failure{err: err}
}

func printError(w io.Writer, err error) {
	var ce *errors.ConversionError
	if stderrors.As(err, &ce) {
		fmt.Fprintln(w, ce.PrettyString())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// cli holds the process streams and the application, which is built once
// flags are parsed.
type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	getenv         func(string) string

	configPath string
	verbose    bool

	app      *app.App
	closeLog func() error
}

// load reads configuration and builds the application.
func (c *cli) load() error {
	if c.app != nil {
		return nil
	}
	getenv, err := config.WithDotEnv(dotEnvFile, c.getenv)
	if err != nil {
		return fail(err)
	}
	cfg, err := config.Load(c.configPath, getenv)
	if err != nil {
		return fail(fmt.Errorf("loading config: %w", err))
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	logger, closeLog, err := logging.New(cfg.Logging, c.stdout, c.stderr)
	if err != nil {
		return fail(fmt.Errorf("setting up logging: %w", err))
	}
	logger.Debug("configuration loaded",
		zap.String("config", cfg.Path),
		zap.String("data_dir", cfg.DataDir),
		zap.String("history", cfg.HistoryPath()))

	c.app = app.New(cfg, logger)
	c.closeLog = closeLog
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			c.app.Logger.Warn("closing history", zap.Error(err))
		}
	}
	if c.closeLog != nil {
		c.closeLog()
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "unitconv [<value> <from> <to>]",
		Short: "Convert between units of measurement",
		Long: `unitconv converts values between units of length, temperature, digital
storage, mass, time, volume, area, speed, energy, power, pressure and data.

Run without arguments to start the interactive menus, or pass a value and two
units for a single conversion:

  unitconv 10 km mi
  unitconv -40 C F
  unitconv 1 GiB MB`,
		Version:       Version,
		Args:          rootArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runShell(cmd.Context())
			}
			return c.convert(args[0], args[1], args[2])
		},
	}
	root.SetVersionTemplate("unitconv version {{.Version}}\n")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.shellCmd(),
		c.unitsCmd(),
		c.infoCmd(),
		c.batchCmd(),
		c.historyCmd(),
		c.favoritesCmd(),
	)
	return root
}

func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("expected a value and two units, got %d argument(s)", len(args))
	}
	return nil
}

// valueFlags take a separate argument.
var valueFlags = map[string]bool{
	"--config":   true,
	"--since":    true,
	"--limit":    true,
	"--out":      true,
	"-o":         true,
	"--from":     true,
	"--to":       true,
	"--category": true,
}

// normalizeArgs lets negative numbers through flag parsing. Flags move to
// the front and a "--" is placed before the first negative number, so
// "unitconv -40 C F" is a conversion rather than an unknown flag.
func normalizeArgs(args []string) []string {
	first := -1
	for i, a := range args {
		if a == "--" {
			return args
		}
		if first < 0 && isNegativeNumber(a) {
			first = i
		}
	}
	if first < 0 {
		return args
	}

	var flags, words []string
	firstWord := -1
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case isNegativeNumber(a):
			if firstWord < 0 {
				firstWord = len(words)
			}
			words = append(words, a)
		case strings.HasPrefix(a, "-"):
			flags = append(flags, a)
			if valueFlags[a] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			words = append(words, a)
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, flags...)
	out = append(out, words[:firstWord]...)
	out = append(out, "--")
	return append(out, words[firstWord:]...)
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	b := s[1]
	if b == '.' && len(s) > 2 {
		b = s[2]
	}
	return b >= '0' && b <= '9'
}
