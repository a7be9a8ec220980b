package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelog/internal/config"
	"github.com/javiermolinar/timelog/internal/db"
	"github.com/javiermolinar/timelog/internal/logger"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       timesheet.Repository
	ownsRepo   bool
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo timesheet.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, configPath: config.DefaultConfigPath()}

	a.root = &cobra.Command{
		Use:   "timelog",
		Short: "Reshape timesheets into packed working days",
		Long: `Timelog reads logged work periods and lays them out again on
fixed-capacity working days, splitting work that does not fit and moving
the remainder to the next business day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Init(logger.Config{Debug: a.debug, Dir: a.config.Log.Dir})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.doubleCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.batchesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timelog %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database unless a repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("opened database", "path", path)

	a.repo = repo
	a.ownsRepo = true
	return nil
}

// SetConfigPath changes the file the config command reads and writes.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetInput replaces stdin, for tests.
func (a *App) SetInput(r io.Reader) {
	a.root.SetIn(r)
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database opened by the app and the log file.
func (a *App) Close() error {
	var err error
	if a.ownsRepo && a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
	}
	if closeErr := logger.Close(); err == nil {
		err = closeErr
	}
	return err
}
