package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/keyring"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded; store the full connection string with 'tinyhabits keyring set' instead." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize tinyhabits storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add     cli.AddCmd     `cmd:"" help:"Add a new habit."`
	List    cli.ListCmd    `cmd:"" help:"List habits with their streaks."`
	Today   cli.TodayCmd   `cmd:"" help:"Show today's habit status."`
	Done    cli.DoneCmd    `cmd:"" help:"Mark a habit done for today."`
	Undo    cli.UndoCmd    `cmd:"" help:"Undo today's completion of a habit."`
	Edit    cli.EditCmd    `cmd:"" help:"Edit an existing habit."`
	Delete  cli.DeleteCmd  `cmd:"" help:"Delete a habit."`
	Remind  cli.RemindCmd  `cmd:"" help:"Run the reminder scheduler."`
	Migrate cli.MigrateCmd `cmd:"" help:"Copy habits to a different storage backend."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage file." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore storage from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the database connection string in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the database connection string from the OS keyring."`
	} `cmd:"" help:"Manage database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tiny daily habits with streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	// Initialize storage based on config format
	var store storage.Provider
	if strings.HasPrefix(CLI.Config, "postgres://") || strings.HasPrefix(CLI.Config, "postgresql://") {
		if storage.HasEmbeddedCredentials(CLI.Config) {
			errors.Fatalf("connection strings with embedded credentials are not allowed; store the full connection string with 'tinyhabits keyring set' and pass one without a password")
		}
		connStr := CLI.Config
		if fromKeyring, err := keyring.GetConnectionString(); err == nil {
			connStr = fromKeyring
		}
		store = storage.NewPostgresStore(connStr)
		initLogger(defaultConfigDir())
	} else {
		configPath := expandPath(CLI.Config)
		store = newFileStore(configPath)
		initLogger(filepath.Dir(configPath))
	}

	appCtx := &cli.Context{
		Store:  store,
		Habits: habits.NewStore(store),
		Debug:  CLI.Debug,
	}

	err := ctx.Run(appCtx)
	store.Close()
	errors.Fatal(err)
}

func newFileStore(configPath string) storage.Provider {
	if strings.HasSuffix(configPath, ".json") {
		return storage.NewJSONStore(configPath)
	}
	return storage.NewSQLiteStore(configPath)
}

func initLogger(configDir string) {
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
}

func defaultConfigDir() string {
	return filepath.Dir(expandPath(constants.DefaultConfigPath))
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
