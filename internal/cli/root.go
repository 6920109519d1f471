// Package cli implements the folio command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	verbose   bool
	jsonMode  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "folio" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio content service",
		Long: "Folio stores portfolio content in SQLite, merges it with a fallback\n" +
			"dataset for the public view, and serves it together with an admin editor API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.Name() == "init")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.folio-data)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newServeCmd(a),
		newSeedCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newShowCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "folio:", err)
	}
	os.Exit(exitCode(err))
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. When recordDataDir is set, a config.yaml written on this run
// records the data directory resolved without it.
func (a *app) setup(recordDataDir bool) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	var dataDir string
	if recordDataDir {
		if dataDir, err = paths.ResolveDataDir(a.flags.dataDir, ""); err != nil {
			return sysError("resolve data dir: %w", err)
		}
	}
	v, err := loadConfig(configDir, dataDir)
	if err != nil {
		return sysError("%w", err)
	}
	s, err := settingsFrom(v)
	if err != nil {
		return userError("%w", err)
	}
	logger, err := newLogger(a.flags.verbose, s.LogLevel)
	if err != nil {
		return userError("%w", err)
	}

	a.configDir = configDir
	a.settings = s
	a.logger = logger
	return nil
}

// resolveDataDir follows --data-dir > config.yaml data_dir > FOLIO_DATA_DIR >
// $(CWD)/.folio-data.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
}
