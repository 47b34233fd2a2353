/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics for the saved notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := restoreSaved(); err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), repo.Stats())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
