package query_test

import (
	"testing"

	"localforum/internal/models"
	"localforum/internal/query"

	"github.com/stretchr/testify/assert"
)

func msg(id int, text, createdAt, updatedAt string, good int) models.Message {
	return models.Message{
		ID:        id,
		Text:      text,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Author:    "alice",
		Comments:  []models.Comment{},
		Good:      good,
	}
}

func ids(messages []models.Message) []int {
	out := make([]int, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func TestViewFilterCaseInsensitive(t *testing.T) {
	messages := []models.Message{
		msg(1, "Hello World", "2024-01-01 10:00:00", "", 0),
		msg(2, "goodbye", "2024-01-02 10:00:00", "", 0),
		msg(3, "HELLO again", "2024-01-03 10:00:00", "", 0),
	}

	tests := []struct {
		name   string
		search string
		want   []int
	}{
		{"lowercase token", "hello", []int{3, 1}},
		{"uppercase token", "HELLO", []int{3, 1}},
		{"mixed-case token", "HeLLo", []int{3, 1}},
		{"substring match", "bye", []int{2}},
		{"no match", "zzz", []int{}},
		{"empty keeps all", "", []int{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := query.View(messages, tt.search, query.SortNew)
			assert.Equal(t, tt.want, ids(view))
		})
	}
}

func TestViewSortModes(t *testing.T) {
	messages := []models.Message{
		msg(1, "first", "2024-01-01 10:00:00", "", 1),
		msg(2, "second", "2024-01-03 10:00:00", "", 5),
		msg(3, "third", "2024-01-02 10:00:00", "2024-01-04 12:00:00", 5),
	}

	tests := []struct {
		name string
		sort string
		want []int
	}{
		{"new is created descending", query.SortNew, []int{2, 3, 1}},
		{"old is created ascending", query.SortOld, []int{1, 3, 2}},
		{"updated prefers edit time", query.SortUpdated, []int{3, 2, 1}},
		{"likes descending with created tiebreak", query.SortLikes, []int{2, 3, 1}},
		{"unrecognized falls back to new", "whatever", []int{2, 3, 1}},
		{"empty falls back to new", "", []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := query.View(messages, "", tt.sort)
			assert.Equal(t, tt.want, ids(view))
		})
	}
}

func TestViewStableOnEqualTimestamps(t *testing.T) {
	messages := []models.Message{
		msg(1, "a", "2024-01-01 10:00:00", "", 2),
		msg(2, "b", "2024-01-01 10:00:00", "", 2),
		msg(3, "c", "2024-01-01 10:00:00", "", 2),
	}

	// Equal sort keys across the board: every mode must preserve the
	// original relative order.
	for _, mode := range []string{query.SortNew, query.SortOld, query.SortUpdated, query.SortLikes} {
		view := query.View(messages, "", mode)
		assert.Equal(t, []int{1, 2, 3}, ids(view), "mode %s", mode)
	}
}

func TestViewUnparseableTimestamps(t *testing.T) {
	messages := []models.Message{
		msg(1, "bad", "not a timestamp", "", 0),
		msg(2, "good", "2024-01-01 10:00:00", "", 0),
	}

	// Unparseable timestamps sort as the minimum value: last in
	// descending order, first in ascending.
	assert.Equal(t, []int{2, 1}, ids(query.View(messages, "", query.SortNew)))
	assert.Equal(t, []int{1, 2}, ids(query.View(messages, "", query.SortOld)))
}

func TestViewDoesNotMutateInput(t *testing.T) {
	messages := []models.Message{
		msg(1, "a", "2024-01-01 10:00:00", "", 0),
		msg(2, "b", "2024-01-02 10:00:00", "", 0),
	}

	view := query.View(messages, "", query.SortNew)

	assert.Equal(t, []int{2, 1}, ids(view))
	assert.Equal(t, []int{1, 2}, ids(messages), "input order must be untouched")

	// Same inputs, same output.
	again := query.View(messages, "", query.SortNew)
	assert.Equal(t, view, again)
}
