// Package query builds display-ready views of the message collection.
// Everything here is pure: the input slice is never mutated and the
// same inputs always yield the same ordering.
package query

import (
	"sort"
	"strings"

	"localforum/internal/models"
)

// Sort modes accepted by View. Anything else falls back to SortNew.
const (
	SortNew     = "new"
	SortOld     = "old"
	SortUpdated = "updated"
	SortLikes   = "likes"
)

// View filters messages by a case-insensitive substring search and
// sorts the result according to sortMode. Sorting is stable, so
// messages with equal keys keep their relative store order.
func View(messages []models.Message, search, sortMode string) []models.Message {
	view := filter(messages, search)

	switch strings.ToLower(sortMode) {
	case SortOld:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].CreatedTime().Before(view[j].CreatedTime())
		})
	case SortUpdated:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].LastActivityTime().After(view[j].LastActivityTime())
		})
	case SortLikes:
		sort.SliceStable(view, func(i, j int) bool {
			if view[i].Good != view[j].Good {
				return view[i].Good > view[j].Good
			}
			return view[i].CreatedTime().After(view[j].CreatedTime())
		})
	default:
		// "new" and any unrecognized mode.
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].CreatedTime().After(view[j].CreatedTime())
		})
	}

	return view
}

// filter returns a fresh slice holding the messages whose text
// contains search case-insensitively. An empty search keeps everything.
func filter(messages []models.Message, search string) []models.Message {
	if search == "" {
		view := make([]models.Message, len(messages))
		copy(view, messages)
		return view
	}

	needle := strings.ToLower(search)
	view := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Text), needle) {
			view = append(view, m)
		}
	}
	return view
}
