// Package repository owns the in-memory note collection and the ID sequence.
package repository

import (
	"fmt"
	"math"
	"time"

	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"go.uber.org/zap"
)

// Field selects what Update changes.
type Field int

const (
	FieldTitle Field = iota + 1
	FieldText
	FieldCompletion
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldText:
		return "text"
	case FieldCompletion:
		return "completion status"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Stats summarises completion over the notes in memory.
type Stats struct {
	Total                int
	Incomplete           int
	IncompletePercentage float64
}

// Applicable reports whether the percentage means anything, i.e. there is at
// least one note.
func (s Stats) Applicable() bool {
	return s.Total > 0
}

type Option func(*Repository)

// WithClock replaces time.Now as the source of creation and completion times.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// Repository is not safe for concurrent use; one interactive session owns it.
type Repository struct {
	idCounter int
	notes     map[int]*model.Note
	order     []int
	now       func() time.Time
	log       *zap.Logger
}

func New(opts ...Option) *Repository {
	r := &Repository{
		notes: make(map[int]*model.Note),
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BootstrapIDCounter seeds the ID sequence with the highest ID found in the
// notes file at startup.
func (r *Repository) BootstrapIDCounter(maxID int) {
	if maxID < 0 {
		maxID = 0
	}
	r.idCounter = maxID
	r.log.Debug("id counter bootstrapped", zap.Int("max_id", maxID))
}

// NextID hands out the next ID. IDs are never reused, even after a delete.
func (r *Repository) NextID() int {
	r.idCounter++
	return r.idCounter
}

// Len returns the number of notes in memory.
func (r *Repository) Len() int {
	return len(r.notes)
}

func (r *Repository) Create(title, text string, completed bool) (*model.Note, error) {
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := model.ValidateText(text); err != nil {
		return nil, err
	}

	now := r.clock()
	n := &model.Note{
		ID:        r.NextID(),
		CreatedAt: now,
		Title:     title,
		Text:      text,
	}
	if completed {
		n.SetCompleted(now)
	}
	r.insert(n)

	r.log.Info("note created", zap.Int("id", n.ID), zap.Bool("completed", completed))
	return n.Clone(), nil
}

func (r *Repository) Read(id int) (*model.Note, error) {
	n, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// Update changes one field of a note. Editing the title or text of a completed
// note moves its completion date to now.
func (r *Repository) Update(id int, field Field, value string) (*model.Note, error) {
	n, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldTitle:
		if err := model.ValidateTitle(value); err != nil {
			return nil, err
		}
		n.UpdateTitle(value)
		r.restamp(n)
	case FieldText:
		if err := model.ValidateText(value); err != nil {
			return nil, err
		}
		n.UpdateText(value)
		r.restamp(n)
	case FieldCompletion:
		n.ToggleCompletion(r.clock())
	default:
		return nil, errs.New(errs.Validation, fmt.Sprintf("cannot update %s", field))
	}

	r.log.Info("note updated", zap.Int("id", id), zap.Stringer("field", field))
	return n.Clone(), nil
}

func (r *Repository) Delete(id int) error {
	if _, err := r.lookup(id); err != nil {
		return err
	}

	delete(r.notes, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Info("note deleted", zap.Int("id", id))
	return nil
}

// SetCompletionDate marks the note complete on date, overwriting any earlier
// completion date.
func (r *Repository) SetCompletionDate(id int, date time.Time) (*model.Note, error) {
	n, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if !model.CompletionAllowed(n.CreatedAt, date) {
		return nil, errs.New(errs.Validation, "note completion date cannot be before note creation date")
	}

	n.SetCompleted(date)
	r.log.Info("completion date set", zap.Int("id", id), zap.Time("date", date))
	return n.Clone(), nil
}

// DaysToComplete returns the whole days between creation and completion.
func (r *Repository) DaysToComplete(id int) (int, error) {
	n, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	if !n.Completed || n.CompletedAt == nil {
		return 0, errs.New(errs.IncompleteNote, fmt.Sprintf("note %d has no completion date", id))
	}

	d := n.CompletedAt.Sub(n.CreatedAt)
	return int(math.Floor(d.Hours() / 24)), nil
}

func (r *Repository) Stats() Stats {
	s := Stats{Total: len(r.notes)}
	for _, n := range r.notes {
		if !n.Completed {
			s.Incomplete++
		}
	}
	if s.Total > 0 {
		s.IncompletePercentage = 100 * float64(s.Incomplete) / float64(s.Total)
	}
	return s
}

// Notes returns copies of all notes in insertion order.
func (r *Repository) Notes() []*model.Note {
	out := make([]*model.Note, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.notes[id].Clone())
	}
	return out
}

// AbsentIDs returns the persisted IDs that are not in memory, in file order.
// Saving would drop those notes from the file.
func (r *Repository) AbsentIDs(persisted []model.Note) []int {
	var out []int
	seen := make(map[int]bool)
	for _, p := range persisted {
		if _, ok := r.notes[p.ID]; ok || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.ID)
	}
	return out
}

// RestoreMerge adds every persisted note whose ID is not already in memory
// and returns the notes it added. Notes in memory are never overwritten, so
// restoring the same set twice changes nothing the second time.
func (r *Repository) RestoreMerge(persisted []model.Note) []*model.Note {
	var restored []*model.Note
	for i := range persisted {
		p := persisted[i]
		if _, ok := r.notes[p.ID]; ok {
			continue
		}
		n := p.Clone()
		r.insert(n)
		if n.ID > r.idCounter {
			r.idCounter = n.ID
		}
		restored = append(restored, n.Clone())
	}

	r.log.Info("notes restored", zap.Int("persisted", len(persisted)), zap.Int("restored", len(restored)))
	return restored
}

func (r *Repository) lookup(id int) (*model.Note, error) {
	if len(r.notes) == 0 {
		return nil, errs.New(errs.EmptyRepository, "no notes have been created yet")
	}
	n, ok := r.notes[id]
	if !ok {
		return nil, errs.New(errs.NotFound, fmt.Sprintf("note %d not found", id))
	}
	return n, nil
}

func (r *Repository) insert(n *model.Note) {
	r.notes[n.ID] = n
	r.order = append(r.order, n.ID)
}

// restamp keeps a completed note's completion date in line with its last edit.
func (r *Repository) restamp(n *model.Note) {
	if n.Completed {
		n.SetCompleted(r.clock())
	}
}

// clock truncates to the precision of the notes file so a saved note reads
// back equal.
func (r *Repository) clock() time.Time {
	return r.now().Truncate(time.Microsecond)
}
