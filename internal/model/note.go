package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nakachan-ing/notes-cli/internal/errs"
)

const (
	// TimestampLayout is how creation and completion dates are written to the notes file.
	TimestampLayout = "2006-01-02 15:04:05.000000"
	// DateLayout is the layout a user types a completion date in.
	DateLayout = "2006-01-02"

	// CompletionGrace is how far a completion date may precede the creation date.
	CompletionGrace = 24 * time.Hour
)

type Note struct {
	ID          int
	CreatedAt   time.Time
	Title       string
	Text        string
	Completed   bool
	CompletedAt *time.Time
}

// Record is the flat field mapping of a note, one per line in the notes file.
type Record struct {
	ID             string  `yaml:"Note ID"`
	Title          string  `yaml:"Title"`
	Text           string  `yaml:"Text"`
	Completed      string  `yaml:"Completed"`
	CreationDate   string  `yaml:"Creation Date"`
	CompletionDate *string `yaml:"Completion Date"`
}

func (n *Note) UpdateTitle(title string) {
	n.Title = title
}

func (n *Note) UpdateText(text string) {
	n.Text = text
}

// SetCompleted marks the note complete at the given time, replacing any
// previous completion date.
func (n *Note) SetCompleted(at time.Time) {
	n.Completed = true
	n.CompletedAt = &at
}

func (n *Note) SetIncomplete() {
	n.Completed = false
	n.CompletedAt = nil
}

// SetCompletionStatus moves the note to done or not done in one step, so the
// completion date always follows the flag.
func (n *Note) SetCompletionStatus(done bool, at time.Time) {
	if done {
		n.SetCompleted(at)
		return
	}
	n.SetIncomplete()
}

// ToggleCompletion flips the completion status; at is used when the note
// becomes complete.
func (n *Note) ToggleCompletion(at time.Time) {
	n.SetCompletionStatus(!n.Completed, at)
}

// Serialize returns the canonical field mapping of the note.
func (n *Note) Serialize() Record {
	r := Record{
		ID:           strconv.Itoa(n.ID),
		Title:        n.Title,
		Text:         n.Text,
		Completed:    "No",
		CreationDate: n.CreatedAt.Format(TimestampLayout),
	}
	if n.Completed {
		r.Completed = "Yes"
	}
	if n.CompletedAt != nil {
		s := n.CompletedAt.Format(TimestampLayout)
		r.CompletionDate = &s
	}
	return r
}

// Validate checks the invariants every stored note satisfies.
func (n *Note) Validate() error {
	if n.ID <= 0 {
		return errs.New(errs.Validation, fmt.Sprintf("note ID must be positive, got %d", n.ID))
	}
	if err := ValidateTitle(n.Title); err != nil {
		return err
	}
	if err := ValidateText(n.Text); err != nil {
		return err
	}
	if n.Completed != (n.CompletedAt != nil) {
		return errs.New(errs.Validation, fmt.Sprintf("note %d: completion flag and completion date disagree", n.ID))
	}
	if n.CompletedAt != nil && !CompletionAllowed(n.CreatedAt, *n.CompletedAt) {
		return errs.New(errs.Validation, fmt.Sprintf("note %d: completion date cannot be before creation date", n.ID))
	}
	return nil
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	if n.CompletedAt != nil {
		at := *n.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.New(errs.Validation, "note title cannot be empty")
	}
	if !utf8.ValidString(title) {
		return errs.New(errs.Validation, "note title is not valid UTF-8")
	}
	return nil
}

func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.New(errs.Validation, "note text cannot be empty")
	}
	if !utf8.ValidString(text) {
		return errs.New(errs.Validation, "note text is not valid UTF-8")
	}
	return nil
}

// CompletionAllowed reports whether completedAt respects the one-day grace
// window before createdAt.
func CompletionAllowed(createdAt, completedAt time.Time) bool {
	return !completedAt.Before(createdAt.Add(-CompletionGrace))
}

// ParseDate parses a user-typed YYYY-MM-DD date in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.Validation,
			fmt.Sprintf("completion date %q is either not correct or not in the YYYY-MM-DD format", s), err)
	}
	return t, nil
}

// ParseTimestamp parses a date as written to the notes file. The fractional
// seconds may be omitted.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.Validation, fmt.Sprintf("malformed timestamp %q", s), err)
	}
	return t, nil
}
