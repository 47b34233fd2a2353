/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/nakachan-ing/notes-cli/internal/store"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config.yaml",
	Args:  cobra.NoArgs,
	// init must work when the current config file is broken, so it skips
	// the config loading done by the root command.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := configPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		out := cmd.OutOrStdout()

		if _, err := os.Stat(configFile); err == nil && !initForce {
			fmt.Fprintln(out, "⚠️ Config file already exists:", configFile)
			fmt.Fprintln(out, "Use --force to overwrite it with the defaults.")
			return nil
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if err := store.SaveConfig(model.DefaultConfig(), configFile); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		fmt.Fprintln(out, "✅ notes initialized successfully!")
		fmt.Fprintln(out, "📄 Config file created at:", configFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
