package database

import (
	"testing"
	"time"

	"github.com/rpupo63/readinglog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock advances one minute per call so ordering by UpdatedAt is deterministic.
func tickingClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestPostStoreCreateTrimsAndAssignsIDs(t *testing.T) {
	s := NewPostStore(WithClock(tickingClock()))

	first := s.Create(models.PostInput{Title: "  Hello ", Content: " World\n"})
	require.Equal(t, models.OutcomePersisted, first.Outcome)
	assert.Equal(t, "1", first.Record.ID)
	assert.Equal(t, "Hello", first.Record.Title)
	assert.Equal(t, "World", first.Record.Content)
	assert.Equal(t, first.Record.CreatedAt, first.Record.UpdatedAt)

	second := s.Create(models.PostInput{Title: "B", Content: "b"})
	assert.Equal(t, "2", second.Record.ID)

	got, ok := s.Find("1")
	require.True(t, ok)
	assert.Equal(t, first.Record, got)
}

func TestPostStoreRejectsMissingFields(t *testing.T) {
	s := NewPostStore()

	res := s.Create(models.PostInput{Title: "A", Content: ""})
	assert.Equal(t, models.OutcomeRejected, res.Outcome)
	assert.Equal(t, models.PostRequiredMessage, res.Message)
	assert.Equal(t, 0, s.Len())
}

func TestPostStoreIDsAreNotReused(t *testing.T) {
	s := NewPostStore()
	s.Create(models.PostInput{Title: "A", Content: "a"})
	s.Delete("1")

	res := s.Create(models.PostInput{Title: "B", Content: "b"})
	assert.Equal(t, "2", res.Record.ID)
}

func TestPostStoreUpdate(t *testing.T) {
	s := NewPostStore(WithClock(tickingClock()))
	created := s.Create(models.PostInput{Title: "A", Content: "a"}).Record

	res := s.Update(created.ID, models.PostInput{Title: " A2 ", Content: "a2"})
	require.Equal(t, models.OutcomePersisted, res.Outcome)
	assert.Equal(t, "A2", res.Record.Title)
	assert.Equal(t, created.CreatedAt, res.Record.CreatedAt)
	assert.True(t, res.Record.UpdatedAt.After(created.UpdatedAt))

	rejected := s.Update(created.ID, models.PostInput{Title: "", Content: "x"})
	assert.Equal(t, models.OutcomeRejected, rejected.Outcome)
	assert.Equal(t, "A2", rejected.Record.Title)

	got, _ := s.Find(created.ID)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, "a2", got.Content)
}

func TestPostStoreUnknownIDNeverMutates(t *testing.T) {
	s := NewPostStore()
	s.Create(models.PostInput{Title: "A", Content: "a"})
	before := s.List()

	res := s.Update("99", models.PostInput{Title: "X", Content: "y"})
	assert.Equal(t, models.OutcomeNotFound, res.Outcome)

	s.Delete("99")
	s.Delete("99")

	assert.Equal(t, before, s.List())
	_, ok := s.Find("99")
	assert.False(t, ok)
}

func TestPostStoreListOrder(t *testing.T) {
	s := NewPostStore(WithClock(tickingClock()))
	s.Create(models.PostInput{Title: "one", Content: "1"})
	s.Create(models.PostInput{Title: "two", Content: "2"})
	s.Create(models.PostInput{Title: "three", Content: "3"})
	s.Update("1", models.PostInput{Title: "one again", Content: "1"})

	var titles []string
	for _, p := range s.List() {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"one again", "three", "two"}, titles)
}

func TestPostStoreListTiesPreferNewerID(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewPostStore(WithClock(func() time.Time { return fixed }))
	for i := 0; i < 11; i++ {
		s.Create(models.PostInput{Title: "t", Content: "c"})
	}

	list := s.List()
	assert.Equal(t, "11", list[0].ID)
	assert.Equal(t, "10", list[1].ID)
	assert.Equal(t, "1", list[len(list)-1].ID)
}

func TestPostStoreListReturnsCopies(t *testing.T) {
	s := NewPostStore()
	s.Create(models.PostInput{Title: "A", Content: "a"})

	list := s.List()
	list[0].Title = "mutated"

	got, _ := s.Find("1")
	assert.Equal(t, "A", got.Title)
}
