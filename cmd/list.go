/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/nakachan-ing/notes-cli/internal/util"
	"github.com/spf13/cobra"
)

var listFrom string
var listTo string
var listSearchQuery string
var listStatus string
var listPageSize int

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved notes",
	Args:    cobra.NoArgs,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := restoreSaved(); err != nil {
			return err
		}

		filteredNotes := util.FullTextSearch(repo.Notes(), listSearchQuery)
		filteredNotes, err := util.FilterNotes(filteredNotes, listStatus, listFrom, listTo)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		// Handle case where no notes match
		if len(filteredNotes) == 0 {
			fmt.Fprintln(out, "No matching notes found.")
			return nil
		}

		pageSize := listPageSize
		if !cmd.Flags().Changed("limit") {
			pageSize = appConfig.Display.PageSize
		}
		if pageSize <= 0 {
			pageSize = len(filteredNotes)
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		page := 0

		fmt.Fprintln(out, strings.Repeat("=", 30))
		fmt.Fprintf(out, "Notes: %v notes shown\n", len(filteredNotes))
		fmt.Fprintln(out, strings.Repeat("=", 30))

		for {
			start := page * pageSize
			end := start + pageSize

			if start >= len(filteredNotes) {
				fmt.Fprintln(out, "No more notes to display.")
				break
			}
			if end > len(filteredNotes) {
				end = len(filteredNotes)
			}

			renderNotes(out, filteredNotes[start:end])

			if end >= len(filteredNotes) {
				break
			}

			fmt.Fprint(out, "\nPress Enter for the next page (q to quit): ")
			input, err := reader.ReadString('\n')
			input = strings.TrimSpace(input)

			if input == "q" || err != nil {
				break
			}

			page++
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFrom, "from", "", "Filter by start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Filter by end date (YYYY-MM-DD)")
	listCmd.Flags().StringVarP(&listSearchQuery, "search", "q", "", "Search by title or text")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", util.StatusAll, "Filter by completion: all, done or open")
	listCmd.Flags().IntVar(&listPageSize, "limit", 20, "Set the number of notes to display per page (-1 for all)")
}
