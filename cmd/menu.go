/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/nakachan-ing/notes-cli/internal/repository"
	"github.com/nakachan-ing/notes-cli/internal/store"
	"go.uber.org/zap"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

type menuItem struct {
	label string
	run   func(*session) error
}

// menuItems are numbered from 1 in the order shown. The last one ends the
// session.
var menuItems = []menuItem{
	{"Add a new note.", (*session).create},
	{"Read a specific note.", (*session).read},
	{"Update a specific note.", (*session).update},
	{"Delete a specific note.", (*session).delete},
	{"Add note completion date.", (*session).addCompletionDate},
	{"Find number of days it took to complete the notes.", (*session).daysToComplete},
	{"Save all notes to file.", (*session).save},
	{"Restore file contents.", (*session).restore},
	{"Show notes statistics.", (*session).stats},
	{"Exit.", nil},
}

// session is one interactive run of the menu against a repository.
type session struct {
	repo      *repository.Repository
	notesFile string
	in        *bufio.Reader
	out       io.Writer
	log       *zap.Logger
}

func newSession(repo *repository.Repository, notesFile string, in io.Reader, out io.Writer, log *zap.Logger) *session {
	return &session{
		repo:      repo,
		notesFile: notesFile,
		in:        bufio.NewReader(in),
		out:       out,
		log:       log,
	}
}

// run shows the menu until the user exits or input ends.
func (s *session) run() error {
	for {
		s.displayMenu()

		choice, err := s.prompt("\nEnter selection: ")
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(choice))
		if convErr != nil || n < 1 || n > len(menuItems) {
			s.fail(errs.New(errs.Validation,
				fmt.Sprintf("Invalid Input!\nEnter from the given options above (ranging 1-%d).", len(menuItems))))
			continue
		}

		item := menuItems[n-1]
		if item.run == nil {
			fmt.Fprintln(s.out, "\nSad to see you go. See you soon again!")
			return nil
		}

		if err := s.dispatch(item); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.fail(err)
		}
	}
}

// dispatch runs one menu action, turning a panic into an internal error so
// the session survives it.
func (s *session) dispatch(item menuItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("menu action panicked",
				zap.String("action", item.label),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = errs.New(errs.Internal, fmt.Sprintf("unexpected error: %v", r))
		}
	}()
	return item.run(s)
}

func (s *session) displayMenu() {
	fmt.Fprintf(s.out, "\n\n%s\n", strings.Repeat("*", 60))
	fmt.Fprintln(s.out, "Welcome to your Notes Handler!")
	fmt.Fprintln(s.out, "\nChoose one of the below menu options and enter to proceed: \n(For example, enter '1' to add a new note.)")
	fmt.Fprintln(s.out)
	for i, item := range menuItems {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintln(s.out, strings.Repeat("*", 60))
}

func (s *session) create() error {
	title, err := s.promptValid("Enter title (An apt title to summarize the note) : ", model.ValidateTitle)
	if err != nil {
		return err
	}
	text, err := s.promptValid("Enter text (Note's main body) : ", model.ValidateText)
	if err != nil {
		return err
	}
	completed, err := s.promptYesNo("Is this note complete? (Y/N) : ")
	if err != nil {
		return err
	}

	n, err := s.repo.Create(title, text, completed)
	if err != nil {
		return err
	}
	s.success(fmt.Sprintf("A new Note - '%s' - has been created with ID: %d", n.Title, n.ID))
	return nil
}

func (s *session) read() error {
	_, err := s.selectNote(false)
	return err
}

func (s *session) update() error {
	n, err := s.selectNote(false)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nWhat do you want to update: \n(For example, enter '1' to update note title.)")
	fmt.Fprintln(s.out, "\n1. Note title.")
	fmt.Fprintln(s.out, "2. Note text.")
	fmt.Fprintln(s.out, "3. Note completion status.")
	fmt.Fprintln(s.out, "4. Exit.")

	var choice string
	for choice == "" {
		input, err := s.prompt("\nEnter selection: ")
		if err != nil {
			return err
		}
		switch input = strings.TrimSpace(input); input {
		case "1", "2", "3", "4":
			choice = input
		default:
			s.printError(errs.New(errs.Validation, "Invalid Input!\nEnter from one of the options above (Integers ranging 1-4)."))
		}
	}

	var field repository.Field
	var value string
	switch choice {
	case "1":
		field = repository.FieldTitle
		if value, err = s.promptValid("Enter new title: ", model.ValidateTitle); err != nil {
			return err
		}
	case "2":
		field = repository.FieldText
		if value, err = s.promptValid("Enter new text: ", model.ValidateText); err != nil {
			return err
		}
	case "3":
		field = repository.FieldCompletion
	default:
		fmt.Fprintln(s.out, "\nGoing to the main menu...")
		return nil
	}

	updated, err := s.repo.Update(n.ID, field, value)
	if err != nil {
		return err
	}
	if field == repository.FieldCompletion {
		if updated.Completed {
			s.success("Note marked complete.")
		} else {
			s.success("Note marked incomplete.")
		}
	}
	s.success(fmt.Sprintf("Note ID %d has been updated.", n.ID))
	return nil
}

func (s *session) delete() error {
	n, err := s.selectNote(false)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(n.ID); err != nil {
		return err
	}
	s.success(fmt.Sprintf("Note ID %d has been deleted.", n.ID))
	return nil
}

func (s *session) addCompletionDate() error {
	n, err := s.selectNote(true)
	if err != nil {
		return err
	}

	input, err := s.prompt("\nEnter the completion date (YYYY-MM-DD) ('2018-12-31' for 31st December 2018) : ")
	if err != nil {
		return err
	}
	date, err := model.ParseDate(input)
	if err != nil {
		return err
	}

	if _, err := s.repo.SetCompletionDate(n.ID, date); err != nil {
		return err
	}
	s.success("Note has been marked complete with the specified completion date.")
	return nil
}

func (s *session) daysToComplete() error {
	n, err := s.selectNote(true)
	if err != nil {
		return err
	}

	days, err := s.repo.DaysToComplete(n.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nIt took %d days for the note to be completed.\n", days)
	return nil
}

func (s *session) save() error {
	if s.repo.Len() == 0 {
		return emptySessionError()
	}
	notes := s.repo.Notes()
	renderTitles(s.out, "Here is the list of all notes available:", notes)

	var warning string
	persisted, err := store.ReadSavedNotes(s.notesFile)
	if err != nil {
		s.log.Warn("existing notes file unreadable", zap.String("file", s.notesFile), zap.Error(err))
		warning = fmt.Sprintf("The file could not be read (%s). Saving will overwrite its contents.", errs.MessageOf(err))
	} else if absent := s.repo.AbsentIDs(persisted); len(absent) > 0 {
		warning = fmt.Sprintf("There are some notes (IDs %s) already available in the file. Consider restoring before "+
			"saving. Saving before restoring will overwrite file's contents.\nNOTE : Restoration will not overwrite the "+
			"notes already present in the program, but add notes that are not already present in the program. In order "+
			"to not lose any note data, go back to the main menu, select '8' from main menu.", joinIDs(absent))
	}

	if warning != "" {
		s.warn(warning)
		answer, err := s.prompt("Enter '1' to go back to the main menu & '0' if you want to proceed anyway: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(answer) {
		case "0":
		case "1":
			fmt.Fprintln(s.out, "\nGoing to the main menu...")
			return nil
		default:
			return errs.New(errs.Validation, "Invalid Input!\nEnter either '1' or '0'.")
		}
	}

	if err := store.WriteNotes(s.notesFile, notes); err != nil {
		return err
	}
	s.log.Info("notes saved", zap.String("file", s.notesFile), zap.Int("count", len(notes)))
	s.success(fmt.Sprintf("All notes above have been saved to file - '%s'", s.notesFile))
	return nil
}

func (s *session) restore() error {
	persisted, err := store.ReadNotes(s.notesFile)
	if errors.Is(err, store.ErrFileMissing) || errors.Is(err, store.ErrFileEmpty) {
		return errs.Wrap(errs.Persistence, errs.MessageOf(err)+". To save all notes to file, enter '7'.", err)
	} else if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nNOTE : Restoration from file does not overwrite notes already present in the program, "+
		"but add notes that are not already present in the program (including currently deleted notes that were "+
		"saved previously).")

	restored := s.repo.RestoreMerge(persisted)
	s.success(fmt.Sprintf("All notes restored. %d new note(s) added.", len(restored)))

	fmt.Fprint(s.out, "\nHere is the list of notes present in the file:\n\n")
	view := make([]*model.Note, len(persisted))
	for i := range persisted {
		view[i] = &persisted[i]
	}
	renderNotes(s.out, view)
	fmt.Fprintln(s.out, "\nTo see the list of all notes present in the session now and read any note, enter '2'.")
	return nil
}

func (s *session) stats() error {
	printStats(s.out, s.repo.Stats())
	return nil
}

// selectNote lists the notes, asks for an ID and shows that note. split lists
// non-completed and completed notes separately.
func (s *session) selectNote(split bool) (*model.Note, error) {
	if s.repo.Len() == 0 {
		return nil, emptySessionError()
	}

	notes := s.repo.Notes()
	if split {
		var open, done []*model.Note
		for _, n := range notes {
			if n.Completed {
				done = append(done, n)
			} else {
				open = append(open, n)
			}
		}
		renderTitles(s.out, "Here is the list of all non-completed notes:", open)
		renderTitles(s.out, "Here is the list of all completed notes:", done)
	} else {
		renderTitles(s.out, "Here is the list of all notes available:", notes)
	}

	input, err := s.prompt("\nEnter note ID: ")
	if err != nil {
		return nil, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(input))
	if convErr != nil {
		return nil, errs.Wrap(errs.Validation, "Invalid Input! Please enter a valid note ID number.", convErr)
	}

	n, err := s.repo.Read(id)
	if errs.Is(err, errs.NotFound) {
		return nil, errs.Wrap(errs.NotFound, "Note not found!\nAbove is the list of notes available.", err)
	} else if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "\nHere is note ID %d:\n\n", id)
	renderNoteDetail(s.out, n)
	return n, nil
}

// prompt prints label and reads one line without its line ending. A final
// line without a newline is returned as is; io.EOF means no input was left.
func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptValid asks until validate accepts the answer.
func (s *session) promptValid(label string, validate func(string) error) (string, error) {
	for {
		v, err := s.prompt(label)
		if err != nil {
			return "", err
		}
		if err := validate(v); err != nil {
			s.printError(err)
			continue
		}
		return v, nil
	}
}

func (s *session) promptYesNo(label string) (bool, error) {
	for {
		v, err := s.prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		s.printError(errs.New(errs.Validation, "Invalid Input!\nEnter: 'Y' for completed and 'N' for not completed."))
	}
}

// fail reports an error that ended the current action.
func (s *session) fail(err error) {
	s.log.Warn("menu action failed", zap.String("kind", string(errs.KindOf(err))), zap.Error(err))
	s.printError(err)
	fmt.Fprintln(s.out, "Starting Over...")
}

func (s *session) printError(err error) {
	errorColor.Fprintf(s.out, "\nERROR : %s\n", errs.MessageOf(err))
}

func (s *session) warn(msg string) {
	warningColor.Fprintf(s.out, "\nWARNING : %s\n", msg)
}

func (s *session) success(msg string) {
	successColor.Fprintf(s.out, "\nSUCCESS : %s\n", msg)
}

func emptySessionError() error {
	return errs.New(errs.EmptyRepository, "No notes have been created yet! To create a note, enter '1'.\n"+
		"If notes have been previously stored in a file, enter '8' to restore contents to program.")
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
