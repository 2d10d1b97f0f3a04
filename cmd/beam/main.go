// Package main is the entry point for the beam terminal editor.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Piotr1215/beam/internal/app"
	"github.com/Piotr1215/beam/internal/config"
	"github.com/Piotr1215/beam/internal/editor"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	watch      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:     "beam [files...]",
		Short:   "Remote text-object operations in the terminal",
		Long:    "beam resolves yank, delete, change, and select on text objects\nlocated by search pattern or scoped selection panel.",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath(), "path to configuration file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	cmd.Flags().BoolVar(&opts.watch, "watch-config", true, "reload configuration when the file changes")
	return cmd
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "beam.toml"
	}
	return filepath.Join(dir, "beam", "beam.toml")
}

func run(opts options, files []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, closeLog, err := newLogger(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	ed := editor.New()
	if err := openFiles(ed, files); err != nil {
		return err
	}

	a, err := app.New(ed.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}
	defer a.Shutdown()

	if opts.watch {
		stop, err := a.WatchConfig(opts.configPath)
		if err != nil {
			logger.Warn("config watch: %v", err)
		} else {
			defer func() { _ = stop() }()
		}
	}

	ui, err := term.New(ed, a, logger)
	if err != nil {
		return err
	}
	return ui.Run()
}

// newLogger builds the logger; interactive sessions must not write to the
// terminal, so stderr logging is disabled unless a log file is given.
func newLogger(cfg config.Config, opts options) (*log.Logger, func(), error) {
	if opts.logFile == "" {
		return log.Null, func() {}, nil
	}
	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Output: f,
		Prefix: "beam",
	})
	return logger, func() { _ = f.Close() }, nil
}

// openFiles loads each file as a document, or a single scratch document
// when none are given.
func openFiles(ed *editor.Editor, files []string) error {
	if len(files) == 0 {
		ed.Open("[scratch]", "", nil)
		return nil
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		ft := strings.TrimPrefix(filepath.Ext(path), ".")
		ed.Open(path, ft, lines)
	}
	return nil
}
