package models

import "time"

// TimeLayout is the timestamp format used everywhere in the persisted
// data files, kept identical to the legacy board's format.
const TimeLayout = "2006-01-02 15:04:05"

// Comment represents a single comment attached to a message.
// Comments are append-only and carry no identifier.
type Comment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Message represents a post on the board.
//
// Timestamps are stored as strings in TimeLayout so the persisted file
// round-trips exactly; they are parsed lazily when sorting. Important
// is a legacy flag preserved for file compatibility and never set.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	Author    string    `json:"author"`
	Important bool      `json:"important"`
	Comments  []Comment `json:"comments"`
	Good      int       `json:"good"`
}

// ParseTimestamp parses a TimeLayout string. Unparseable input yields
// the zero time so it sorts last in descending orders and first in
// ascending ones, matching the legacy board's behavior.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTimestamp renders t in the persisted timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimeLayout)
}

// CreatedTime returns the parsed creation timestamp.
func (m Message) CreatedTime() time.Time {
	return ParseTimestamp(m.CreatedAt)
}

// LastActivityTime returns the later of the creation and update
// timestamps. Messages that were never edited sort by creation time.
func (m Message) LastActivityTime() time.Time {
	created := ParseTimestamp(m.CreatedAt)
	if m.UpdatedAt == "" {
		return created
	}
	if updated := ParseTimestamp(m.UpdatedAt); updated.After(created) {
		return updated
	}
	return created
}
