package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
)

// Status filters accepted by FilterNotes.
const (
	StatusAll  = "all"
	StatusDone = "done"
	StatusOpen = "open"
)

// FullTextSearch keeps notes whose title or text contains query, ignoring case.
func FullTextSearch(notes []*model.Note, query string) []*model.Note {
	if query == "" {
		return notes
	}

	query = strings.ToLower(query)
	var filteredNotes []*model.Note

	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Text), query) {
			filteredNotes = append(filteredNotes, note)
		}
	}

	return filteredNotes
}

// FilterNotes applies the completion status and creation date filters.
// fromDate and toDate are YYYY-MM-DD and may be empty.
func FilterNotes(notes []*model.Note, status, fromDate, toDate string) ([]*model.Note, error) {
	switch status {
	case "", StatusAll, StatusDone, StatusOpen:
	default:
		return nil, errs.New(errs.Validation, fmt.Sprintf("unknown status %q: use all, done or open", status))
	}

	from, err := parseBound(fromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(toDate)
	if err != nil {
		return nil, err
	}

	var filteredNotes []*model.Note
	for _, note := range notes {
		if !HasStatus(note, status) {
			continue
		}
		if !IsWithinDateRange(note.CreatedAt, from, to) {
			continue
		}
		filteredNotes = append(filteredNotes, note)
	}

	return filteredNotes, nil
}

func HasStatus(note *model.Note, status string) bool {
	switch status {
	case "", StatusAll:
		return true
	case StatusDone:
		return note.Completed
	case StatusOpen:
		return !note.Completed
	}
	return false
}

// IsWithinDateRange compares calendar days; a zero bound is open.
func IsWithinDateRange(created time.Time, from, to time.Time) bool {
	day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.Local)

	if !from.IsZero() && day.Before(from) {
		return false
	}
	if !to.IsZero() && day.After(to) {
		return false
	}
	return true
}

func parseBound(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.Validation, fmt.Sprintf("invalid date %q: use YYYY-MM-DD", date), err)
	}
	return t, nil
}
