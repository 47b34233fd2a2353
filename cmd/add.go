/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/nakachan-ing/notes-cli/internal/store"
	"github.com/nakachan-ing/notes-cli/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addText string
var addEdit bool
var addDone bool

var addCmd = &cobra.Command{
	Use:     "add [title]",
	Short:   "Add a note and save it to the notes file",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"a"},
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		text := addText
		if addEdit {
			edited, err := util.EditText(addText, *appConfig)
			if err != nil {
				return err
			}
			text = edited
		}

		if err := restoreSaved(); err != nil {
			return err
		}

		note, err := repo.Create(title, text, addDone)
		if err != nil {
			return err
		}

		if err := store.WriteNotes(appConfig.NotesFile, repo.Notes()); err != nil {
			return fmt.Errorf("failed to save notes: %w", err)
		}
		appLogger.Info("note added", zap.Int("id", note.ID), zap.String("file", appConfig.NotesFile))

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Note %d (%q) has been saved to %s\n", note.ID, note.Title, appConfig.NotesFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addText, "text", "t", "", "Note text")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Write the note text in the configured editor")
	addCmd.Flags().BoolVarP(&addDone, "done", "d", false, "Mark the note completed")
}
