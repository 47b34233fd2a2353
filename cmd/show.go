/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:     "show [noteID]",
	Short:   "Show a saved note",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"s"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errs.Wrap(errs.Validation, fmt.Sprintf("invalid note ID %q", args[0]), err)
		}

		if err := restoreSaved(); err != nil {
			return err
		}

		note, err := repo.Read(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		titleStyle := color.New(color.FgCyan, color.Bold).SprintFunc()
		fieldStyle := color.New(color.FgHiGreen).SprintFunc()

		fmt.Fprintf(out, "[%v] %v\n", titleStyle(note.ID), titleStyle(note.Title))
		fmt.Fprintln(out, strings.Repeat("-", 50))
		fmt.Fprintf(out, "Completed: %v\n", fieldStyle(yesNo(note.Completed)))
		fmt.Fprintf(out, "Created at: %v\n", fieldStyle(note.CreatedAt.Format(model.TimestampLayout)))
		if note.CompletedAt != nil {
			fmt.Fprintf(out, "Completed at: %v\n", fieldStyle(note.CompletedAt.Format(model.TimestampLayout)))
			if days, err := repo.DaysToComplete(id); err == nil {
				fmt.Fprintf(out, "Days to complete: %v\n", fieldStyle(days))
			}
		}
		fmt.Fprintln(out)

		if showRaw {
			fmt.Fprintln(out, note.Text)
			return nil
		}

		rendered, err := glamour.Render(note.Text, appConfig.Display.MarkdownStyle)
		if err != nil {
			appLogger.Warn("markdown render failed", zap.Int("id", id), zap.Error(err))
			fmt.Fprintln(out, note.Text)
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the text without rendering markdown")
}
