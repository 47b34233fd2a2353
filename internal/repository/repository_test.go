package repository

import (
	"testing"
	"time"

	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestRepository() (*Repository, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)}
	return New(WithClock(clock.Now)), clock
}

func TestCreate_ExampleSequence(t *testing.T) {
	repo, clock := newTestRepository()

	first, err := repo.Create("Buy milk", "2 liters, whole", false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.False(t, first.Completed)
	assert.Nil(t, first.CompletedAt)
	assert.True(t, clock.Now().Equal(first.CreatedAt))

	second, err := repo.Create("Pay bills", "due Friday", true)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.True(t, second.Completed)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CreatedAt.Equal(*second.CompletedAt))

	assert.Equal(t, Stats{Total: 2, Incomplete: 1, IncompletePercentage: 50.0}, repo.Stats())
}

func TestCreate_RejectsBlankInput(t *testing.T) {
	repo, _ := newTestRepository()

	_, err := repo.Create("   ", "text", false)
	assert.True(t, errs.Is(err, errs.Validation))

	_, err = repo.Create("title", "\t\n", false)
	assert.True(t, errs.Is(err, errs.Validation))

	assert.Equal(t, 0, repo.Len())
	note, err := repo.Create("title", "text", false)
	require.NoError(t, err)
	assert.Equal(t, 1, note.ID, "failed creates must not consume IDs")
}

func TestCreate_RejectsInvalidUTF8(t *testing.T) {
	repo, _ := newTestRepository()
	_, err := repo.Create("Buy milk", "2 liters", false)
	require.NoError(t, err)

	_, err = repo.Create("caf\xe9", "latin-1 input", false)
	assert.True(t, errs.Is(err, errs.Validation))
	_, err = repo.Create("cafe", "cr\xe8me", false)
	assert.True(t, errs.Is(err, errs.Validation))

	_, err = repo.Update(1, FieldTitle, "caf\xe9")
	assert.True(t, errs.Is(err, errs.Validation))
	_, err = repo.Update(1, FieldText, "cr\xe8me")
	assert.True(t, errs.Is(err, errs.Validation))

	assert.Equal(t, 1, repo.Len())
	n, err := repo.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", n.Title)
	assert.Equal(t, "2 liters", n.Text)
}

func TestCreate_ContinuesFromBootstrap(t *testing.T) {
	repo, _ := newTestRepository()
	repo.BootstrapIDCounter(41)

	note, err := repo.Create("a", "b", false)
	require.NoError(t, err)
	assert.Equal(t, 42, note.ID)
}

func TestRead_EmptyAndMissing(t *testing.T) {
	repo, _ := newTestRepository()

	_, err := repo.Read(1)
	assert.True(t, errs.Is(err, errs.EmptyRepository))

	_, err = repo.Create("a", "b", false)
	require.NoError(t, err)

	_, err = repo.Read(7)
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestRead_ReturnsCopy(t *testing.T) {
	repo, _ := newTestRepository()
	_, err := repo.Create("a", "b", false)
	require.NoError(t, err)

	n, err := repo.Read(1)
	require.NoError(t, err)
	n.Title = "mutated"

	again, err := repo.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Title)
}

func TestDelete_ThenRead(t *testing.T) {
	repo, _ := newTestRepository()
	_, _ = repo.Create("Buy milk", "2 liters, whole", false)
	_, _ = repo.Create("Pay bills", "due Friday", true)

	require.NoError(t, repo.Delete(1))

	_, err := repo.Read(1)
	assert.True(t, errs.Is(err, errs.NotFound))

	n, err := repo.Read(2)
	require.NoError(t, err)
	assert.Equal(t, "Pay bills", n.Title)

	assert.True(t, errs.Is(repo.Delete(1), errs.NotFound))
}

func TestDelete_IDsAreNotReused(t *testing.T) {
	repo, _ := newTestRepository()
	_, _ = repo.Create("a", "b", false)
	require.NoError(t, repo.Delete(1))

	n, err := repo.Create("c", "d", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n.ID)
}

func TestUpdate_TitleRestampsCompletedNote(t *testing.T) {
	repo, clock := newTestRepository()
	_, _ = repo.Create("a", "b", true)

	clock.Advance(48 * time.Hour)
	n, err := repo.Update(1, FieldTitle, "new title")
	require.NoError(t, err)

	assert.Equal(t, "new title", n.Title)
	require.NotNil(t, n.CompletedAt)
	assert.True(t, clock.Now().Equal(*n.CompletedAt))
}

func TestUpdate_TextOnOpenNoteKeepsItOpen(t *testing.T) {
	repo, clock := newTestRepository()
	_, _ = repo.Create("a", "b", false)

	clock.Advance(time.Hour)
	n, err := repo.Update(1, FieldText, "new text")
	require.NoError(t, err)

	assert.Equal(t, "new text", n.Text)
	assert.False(t, n.Completed)
	assert.Nil(t, n.CompletedAt)
}

func TestUpdate_RejectsBlankValue(t *testing.T) {
	repo, _ := newTestRepository()
	_, _ = repo.Create("a", "b", false)

	_, err := repo.Update(1, FieldTitle, " ")
	assert.True(t, errs.Is(err, errs.Validation))
	_, err = repo.Update(1, FieldText, "")
	assert.True(t, errs.Is(err, errs.Validation))
	_, err = repo.Update(1, Field(99), "x")
	assert.True(t, errs.Is(err, errs.Validation))

	n, _ := repo.Read(1)
	assert.Equal(t, "a", n.Title)
	assert.Equal(t, "b", n.Text)
}

func TestUpdate_CompletionToggles(t *testing.T) {
	repo, clock := newTestRepository()
	_, _ = repo.Create("a", "b", false)

	clock.Advance(time.Hour)
	n, err := repo.Update(1, FieldCompletion, "")
	require.NoError(t, err)
	assert.True(t, n.Completed)
	require.NotNil(t, n.CompletedAt)
	assert.True(t, clock.Now().Equal(*n.CompletedAt))

	n, err = repo.Update(1, FieldCompletion, "")
	require.NoError(t, err)
	assert.False(t, n.Completed)
	assert.Nil(t, n.CompletedAt)
}

func TestSetCompletionDate(t *testing.T) {
	repo, _ := newTestRepository()
	created, _ := repo.Create("a", "b", false)

	_, err := repo.SetCompletionDate(1, created.CreatedAt.Add(-25*time.Hour))
	assert.True(t, errs.Is(err, errs.Validation))

	boundary := created.CreatedAt.Add(-24 * time.Hour)
	n, err := repo.SetCompletionDate(1, boundary)
	require.NoError(t, err)
	assert.True(t, n.Completed)
	assert.True(t, boundary.Equal(*n.CompletedAt))

	later := created.CreatedAt.Add(72 * time.Hour)
	n, err = repo.SetCompletionDate(1, later)
	require.NoError(t, err, "an already completed note accepts a new date")
	assert.True(t, later.Equal(*n.CompletedAt))
}

func TestDaysToComplete(t *testing.T) {
	repo, _ := newTestRepository()
	created, _ := repo.Create("a", "b", false)

	_, err := repo.DaysToComplete(1)
	assert.True(t, errs.Is(err, errs.IncompleteNote))

	_, err = repo.SetCompletionDate(1, created.CreatedAt.Add(3*24*time.Hour+5*time.Hour))
	require.NoError(t, err)
	days, err := repo.DaysToComplete(1)
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	_, err = repo.SetCompletionDate(1, created.CreatedAt.Add(-time.Hour))
	require.NoError(t, err)
	days, err = repo.DaysToComplete(1)
	require.NoError(t, err)
	assert.Equal(t, -1, days, "whole days are floored")
}

func TestStats_Empty(t *testing.T) {
	repo, _ := newTestRepository()
	s := repo.Stats()
	assert.Equal(t, Stats{}, s)
	assert.False(t, s.Applicable())
}

func TestAbsentIDs(t *testing.T) {
	repo, _ := newTestRepository()
	_, _ = repo.Create("a", "b", false)

	persisted := []model.Note{{ID: 1}, {ID: 3}, {ID: 2}, {ID: 3}}
	assert.Equal(t, []int{3, 2}, repo.AbsentIDs(persisted))
}

func persistedNote(id int, created time.Time) model.Note {
	return model.Note{ID: id, CreatedAt: created, Title: "saved", Text: "from file"}
}

func TestRestoreMerge_DoesNotOverwrite(t *testing.T) {
	repo, clock := newTestRepository()
	_, _ = repo.Create("in memory", "edited", false)

	restored := repo.RestoreMerge([]model.Note{
		persistedNote(1, clock.Now()),
		persistedNote(5, clock.Now()),
	})

	require.Len(t, restored, 1)
	assert.Equal(t, 5, restored[0].ID)

	n, err := repo.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "in memory", n.Title)

	next, err := repo.Create("new", "note", false)
	require.NoError(t, err)
	assert.Equal(t, 6, next.ID, "restored IDs are never handed out again")
}

func TestRestoreMerge_RestoresDeletedNote(t *testing.T) {
	repo, clock := newTestRepository()
	_, _ = repo.Create("a", "b", false)
	saved := repo.Notes()
	require.NoError(t, repo.Delete(1))

	persisted := []model.Note{*saved[0]}
	restored := repo.RestoreMerge(persisted)
	require.Len(t, restored, 1)

	n, err := repo.Read(1)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(n.CreatedAt))
}

func TestNotes_InsertionOrder(t *testing.T) {
	repo, clock := newTestRepository()
	repo.RestoreMerge([]model.Note{persistedNote(9, clock.Now()), persistedNote(4, clock.Now())})
	_, _ = repo.Create("a", "b", false)

	var ids []int
	for _, n := range repo.Notes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int{9, 4, 10}, ids)
}

func testIDsAreMonotonic(t *rapid.T) {
	repo := New()
	start := rapid.IntRange(0, 1000).Draw(t, "start")
	repo.BootstrapIDCounter(start)

	lastID := start
	var live []int
	steps := rapid.IntRange(1, 40).Draw(t, "steps")
	for i := 0; i < steps; i++ {
		if len(live) > 0 && rapid.Bool().Draw(t, "delete") {
			idx := rapid.IntRange(0, len(live)-1).Draw(t, "idx")
			if err := repo.Delete(live[idx]); err != nil {
				t.Fatalf("delete %d: %v", live[idx], err)
			}
			live = append(live[:idx], live[idx+1:]...)
			continue
		}
		n, err := repo.Create("title", "text", rapid.Bool().Draw(t, "completed"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if n.ID != lastID+1 {
			t.Fatalf("expected id %d, got %d", lastID+1, n.ID)
		}
		lastID = n.ID
		live = append(live, n.ID)
	}
}

func TestProperty_IDsAreMonotonic(t *testing.T) {
	rapid.Check(t, testIDsAreMonotonic)
}

func testCompletionInvariant(t *rapid.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)}
	repo := New(WithClock(clock.Now))

	steps := rapid.IntRange(1, 50).Draw(t, "steps")
	for i := 0; i < steps; i++ {
		clock.Advance(time.Duration(rapid.IntRange(0, 72).Draw(t, "hours")) * time.Hour)
		id := rapid.IntRange(1, 5).Draw(t, "id")
		switch rapid.IntRange(0, 4).Draw(t, "op") {
		case 0:
			_, _ = repo.Create("t", "x", rapid.Bool().Draw(t, "completed"))
		case 1:
			_, _ = repo.Update(id, FieldCompletion, "")
		case 2:
			_, _ = repo.Update(id, FieldTitle, "renamed")
		case 3:
			offset := time.Duration(rapid.IntRange(-48, 48).Draw(t, "offset")) * time.Hour
			_, _ = repo.SetCompletionDate(id, clock.Now().Add(offset))
		case 4:
			_ = repo.Delete(id)
		}

		for _, n := range repo.Notes() {
			if err := n.Validate(); err != nil {
				t.Fatalf("invariant broken after step %d: %v", i, err)
			}
		}
	}
}

func TestProperty_CompletionInvariant(t *testing.T) {
	rapid.Check(t, testCompletionInvariant)
}

func testRestoreMergeIdempotent(t *rapid.T) {
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local)
	ids := rapid.SliceOfNDistinct(rapid.IntRange(1, 30), 0, 12, rapid.ID[int]).Draw(t, "ids")
	persisted := make([]model.Note, 0, len(ids))
	for _, id := range ids {
		n := persistedNote(id, base)
		if rapid.Bool().Draw(t, "completed") {
			n.SetCompleted(base.Add(time.Hour))
		}
		persisted = append(persisted, n)
	}

	once := New(WithClock(func() time.Time { return base }))
	twice := New(WithClock(func() time.Time { return base }))
	existing := rapid.IntRange(0, 5).Draw(t, "existing")
	for i := 0; i < existing; i++ {
		_, _ = once.Create("mem", "ory", false)
		_, _ = twice.Create("mem", "ory", false)
	}

	once.RestoreMerge(persisted)
	twice.RestoreMerge(persisted)
	if again := twice.RestoreMerge(persisted); len(again) != 0 {
		t.Fatalf("second restore added %d notes", len(again))
	}

	assert.Equal(t, once.Notes(), twice.Notes())
}

func TestProperty_RestoreMergeIdempotent(t *testing.T) {
	rapid.Check(t, testRestoreMergeIdempotent)
}
