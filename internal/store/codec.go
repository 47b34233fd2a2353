package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"gopkg.in/yaml.v3"
)

// EncodeNote renders a note as a single-line YAML flow mapping, e.g.
//
//	{Note ID: "1", Title: "Buy milk", Text: "2 liters", Completed: "No", Creation Date: "2024-03-10 09:30:00.000000", Completion Date: null}
func EncodeNote(n *model.Note) (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	r := n.Serialize()

	mapping := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	add := func(key string, value *yaml.Node) {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}

	add("Note ID", quoted(r.ID))
	add("Title", quoted(r.Title))
	add("Text", quoted(r.Text))
	add("Completed", quoted(r.Completed))
	add("Creation Date", quoted(r.CreationDate))
	if r.CompletionDate != nil {
		add("Completion Date", quoted(*r.CompletionDate))
	} else {
		add("Completion Date", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
	}

	out, err := yaml.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("failed to encode note %d: %w", n.ID, err)
	}

	line := strings.TrimRight(string(out), "\n")
	if strings.Contains(line, "\n") {
		return "", fmt.Errorf("note %d does not fit on one line", n.ID)
	}
	return line, nil
}

// DecodeNote parses one line written by EncodeNote. Lines in the older
// single-quoted form ({'Note ID': '1', ..., 'Completion Date': None}) are
// read as well.
func DecodeNote(line string) (model.Note, error) {
	var r model.Record
	if err := yaml.Unmarshal([]byte(line), &r); err != nil {
		return model.Note{}, errs.Wrap(errs.Validation, fmt.Sprintf("malformed note record: %v", err), err)
	}
	return noteFromRecord(r)
}

func noteFromRecord(r model.Record) (model.Note, error) {
	id, err := strconv.Atoi(strings.TrimSpace(r.ID))
	if err != nil || id <= 0 {
		return model.Note{}, errs.New(errs.Validation, fmt.Sprintf("invalid note ID %q", r.ID))
	}

	createdAt, err := model.ParseTimestamp(r.CreationDate)
	if err != nil {
		return model.Note{}, err
	}

	n := model.Note{
		ID:        id,
		CreatedAt: createdAt,
		Title:     r.Title,
		Text:      r.Text,
	}

	switch strings.ToLower(strings.TrimSpace(r.Completed)) {
	case "yes":
		// The persisted completion date is used as written; it is not rebuilt
		// from the creation date. A completed note without a usable
		// completion date falls back to its creation date so the flag and
		// the date stay together.
		completedAt := createdAt
		if s, ok := completionDate(r); ok {
			if completedAt, err = model.ParseTimestamp(s); err != nil {
				return model.Note{}, err
			}
		}
		n.SetCompleted(completedAt)
	case "no":
	default:
		return model.Note{}, errs.New(errs.Validation, fmt.Sprintf("note %d: completed must be Yes or No, got %q", id, r.Completed))
	}

	if err := n.Validate(); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

func completionDate(r model.Record) (string, bool) {
	if r.CompletionDate == nil {
		return "", false
	}
	s := strings.TrimSpace(*r.CompletionDate)
	switch s {
	case "", "None", "null", "~":
		return "", false
	}
	return s, true
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}
