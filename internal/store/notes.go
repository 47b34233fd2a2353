package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
)

var (
	ErrFileMissing = errors.New("notes file does not exist")
	ErrFileEmpty   = errors.New("notes file is empty")
)

// maxLineSize bounds a single note line.
const maxLineSize = 1024 * 1024

// ReadNotes reads every note in the file. A missing file and an empty file
// are reported as distinct persistence errors.
func ReadNotes(path string) ([]model.Note, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.Persistence,
			"no file has been created: no notes have been saved to file previously", ErrFileMissing)
	} else if err != nil {
		return nil, errs.Wrap(errs.Persistence, fmt.Sprintf("failed to check notes file %s", path), err)
	}
	if info.Size() == 0 {
		return nil, emptyFileError()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, fmt.Sprintf("failed to read notes file %s", path), err)
	}

	var notes []model.Note
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := DecodeNote(line)
		if err != nil {
			return nil, errs.Wrap(errs.Validation,
				fmt.Sprintf("notes file line %d: %s", lineNo, errs.MessageOf(err)), err)
		}
		notes = append(notes, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.Persistence, fmt.Sprintf("failed to read notes file %s", path), err)
	}

	if len(notes) == 0 {
		return nil, emptyFileError()
	}
	return notes, nil
}

// ReadSavedNotes is ReadNotes for callers that treat a missing or empty file
// as "nothing saved yet".
func ReadSavedNotes(path string) ([]model.Note, error) {
	notes, err := ReadNotes(path)
	if errors.Is(err, ErrFileMissing) || errors.Is(err, ErrFileEmpty) {
		return nil, nil
	}
	return notes, err
}

// WriteNotes overwrites the file with one line per note, in the given order.
func WriteNotes(path string, notes []*model.Note) error {
	var buf bytes.Buffer
	for _, n := range notes {
		line, err := EncodeNote(n)
		if err != nil {
			return errs.Wrap(errs.KindOf(err), fmt.Sprintf("failed to encode note %d: %s", n.ID, errs.MessageOf(err)), err)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errs.Wrap(errs.Persistence, "failed to create notes directory", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errs.Wrap(errs.Persistence, fmt.Sprintf("failed to write notes file %s", path), err)
	}
	return nil
}

// ScanMaxID returns the highest note ID in the file, or 0 when nothing has
// been saved.
func ScanMaxID(path string) (int, error) {
	notes, err := ReadSavedNotes(path)
	if err != nil {
		return 0, err
	}

	maxID := 0
	for _, n := range notes {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID, nil
}

func emptyFileError() error {
	return errs.Wrap(errs.Persistence,
		"file is empty: either its contents have been deleted or no notes have been saved previously", ErrFileEmpty)
}
