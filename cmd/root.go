/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/logger"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/nakachan-ing/notes-cli/internal/repository"
	"github.com/nakachan-ing/notes-cli/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	notesPath string

	appConfig *model.Config
	appLogger = zap.NewNop()
	repo      *repository.Repository
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "A terminal note manager",
	Long: `notes keeps short text notes with completion tracking.

Run without a subcommand to open the interactive menu, where notes are
created, edited and deleted in memory and saved to or restored from the
notes file on request. The subcommands work directly against the file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLogger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(repo, appConfig.NotesFile, cmd.InOrStdin(), cmd.OutOrStdout(), appLogger)
		return s.run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, opens the log and seeds the repository's
// ID counter from the notes file.
func setup(cmd *cobra.Command, args []string) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	config, err := store.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if notesPath != "" {
		config.NotesFile = notesPath
	}
	appConfig = config

	log, err := logger.New(config.Log)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	appLogger = log

	repo = repository.New(repository.WithLogger(appLogger))

	maxID, err := store.ScanMaxID(config.NotesFile)
	if err != nil {
		appLogger.Warn("bootstrap scan failed", zap.String("file", config.NotesFile), zap.Error(err))
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(),
			"⚠️ Could not read %s, note IDs start from 1: %s\n", config.NotesFile, errs.MessageOf(err))
		maxID = 0
	}
	repo.BootstrapIDCounter(maxID)

	appLogger.Debug("session ready",
		zap.String("command", cmd.Name()),
		zap.String("notes_file", config.NotesFile),
		zap.Int("max_id", maxID))
	return nil
}

// restoreSaved merges the notes file into the repository. A missing or empty
// file leaves the repository empty.
func restoreSaved() error {
	persisted, err := store.ReadSavedNotes(appConfig.NotesFile)
	if err != nil {
		return fmt.Errorf("failed to read notes file: %w", err)
	}
	repo.RestoreMerge(persisted)
	return nil
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return store.GetConfigPath()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $NOTES_CONFIG or <user config dir>/notes-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&notesPath, "file", "f", "", "notes file (overrides notes_file from the config)")
}
