/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/nakachan-ing/notes-cli/internal/repository"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleDouble)
	t.Style().Options.SeparateRows = false
	return t
}

func header(columns ...string) table.Row {
	row := table.Row{}
	for _, c := range columns {
		row = append(row, text.FgGreen.Sprintf("%s", c))
	}
	return row
}

// renderTitles prints the ID and title of each note under heading.
func renderTitles(out io.Writer, heading string, notes []*model.Note) {
	fmt.Fprintf(out, "\n%s\n\n", heading)

	t := newTable(out)
	t.AppendHeader(header("ID", text.Bold.Sprintf("Note Title")))
	for _, n := range notes {
		t.AppendRow(table.Row{n.ID, n.Title})
	}
	t.Render()
}

// renderNoteDetail prints every field of a note as it is written to the file.
func renderNoteDetail(out io.Writer, n *model.Note) {
	r := n.Serialize()
	completion := "None"
	if r.CompletionDate != nil {
		completion = *r.CompletionDate
	}

	t := newTable(out)
	t.AppendHeader(header("Attribute", "Value"))
	t.AppendRows([]table.Row{
		{"Note ID", r.ID},
		{"Title", r.Title},
		{"Text", r.Text},
		{"Completed", completedLabel(n)},
		{"Creation Date", r.CreationDate},
		{"Completion Date", completion},
	})
	t.Render()
}

// renderNotes prints one row per note with its dates.
func renderNotes(out io.Writer, notes []*model.Note) {
	t := newTable(out)
	t.AppendHeader(header("ID", text.Bold.Sprintf("Title"), "Text", "Completed", "Created", "Completed at"))
	for _, n := range notes {
		completedAt := ""
		if n.CompletedAt != nil {
			completedAt = n.CompletedAt.Format(model.TimestampLayout)
		}
		t.AppendRow(table.Row{
			n.ID,
			n.Title,
			text.Trim(n.Text, 40),
			completedLabel(n),
			n.CreatedAt.Format(model.TimestampLayout),
			completedAt,
		})
	}
	t.Render()
}

func completedLabel(n *model.Note) string {
	if n.Completed {
		return text.FgHiGreen.Sprintf("Yes")
	}
	return text.FgHiYellow.Sprintf("No")
}

func printStats(out io.Writer, s repository.Stats) {
	fmt.Fprintf(out, "\nTotal number of notes created: %d\n", s.Total)
	if !s.Applicable() {
		fmt.Fprintln(out, "Total number notes not completed: Not applicable")
		return
	}
	fmt.Fprintf(out, "Total number notes not completed: %d\n", s.Incomplete)
	fmt.Fprintf(out, "%% of notes not completed: %.2f%%\n", s.IncompletePercentage)
}
