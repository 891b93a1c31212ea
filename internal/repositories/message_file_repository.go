package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"localforum/internal/models"
)

// FileMessageRepository is a file-backed implementation of
// MessageRepository. The whole collection lives in memory and is
// rewritten to an indented JSON file on every mutation, before the
// mutating call returns. IDs increase strictly and are never reused,
// even after a delete.
type FileMessageRepository struct {
	path     string
	mu       sync.RWMutex
	messages []models.Message
	nextID   int
}

// NewFileMessageRepository loads the message collection from path. A
// missing file yields an empty collection; a malformed file is a hard
// error, callers are expected to treat it as fatal at startup.
func NewFileMessageRepository(path string) (*FileMessageRepository, error) {
	repo := &FileMessageRepository{
		path:     path,
		messages: []models.Message{},
		nextID:   1,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("failed to read message store %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &repo.messages); err != nil {
		return nil, fmt.Errorf("failed to parse message store %s: %w", path, err)
	}
	if repo.messages == nil {
		repo.messages = []models.Message{}
	}

	// The next ID continues from the highest one ever persisted.
	for _, m := range repo.messages {
		if m.ID >= repo.nextID {
			repo.nextID = m.ID + 1
		}
	}

	return repo, nil
}

// save rewrites the whole collection. Callers must hold the write lock.
// The legacy data files use a three-space indent; keeping it means a
// read-modify-write cycle over existing data stays diff-friendly.
func (r *FileMessageRepository) save() error {
	data, err := json.MarshalIndent(r.messages, "", "   ")
	if err != nil {
		return fmt.Errorf("failed to encode message store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write message store %s: %w", r.path, err)
	}
	return nil
}

// GetAll returns a snapshot of all messages in store order.
func (r *FileMessageRepository) GetAll() ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]models.Message, len(r.messages))
	copy(messages, r.messages)
	return messages, nil
}

// GetByID returns a copy of the message with the given ID.
func (r *FileMessageRepository) GetByID(id int) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			message := r.messages[i]
			return &message, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetByAuthor returns the author's messages in store order, without
// re-sorting.
func (r *FileMessageRepository) GetByAuthor(username string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]models.Message, 0)
	for _, m := range r.messages {
		if m.Author == username {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

// Create assigns the next ID, appends the message and persists. The
// counter increment and the append happen under the same lock so
// concurrent creates can never share an ID.
func (r *FileMessageRepository) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.nextID
	r.nextID++
	if message.Comments == nil {
		message.Comments = []models.Comment{}
	}
	r.messages = append(r.messages, *message)

	return r.save()
}

// UpdateText replaces the text of the matching message, stamps its
// update timestamp and persists.
func (r *FileMessageRepository) UpdateText(id int, text, updatedAt string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Text = text
			r.messages[i].UpdatedAt = updatedAt
			if err := r.save(); err != nil {
				return nil, err
			}
			message := r.messages[i]
			return &message, nil
		}
	}
	return nil, models.ErrNotFound
}

// Delete removes the matching message and persists. It reports whether
// a message was actually removed; the freed ID is never handed out
// again.
func (r *FileMessageRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			if err := r.save(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Like increments the like counter of the matching message by one and
// persists. There is no per-actor deduplication.
func (r *FileMessageRepository) Like(id int) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Good++
			if err := r.save(); err != nil {
				return nil, err
			}
			message := r.messages[i]
			return &message, nil
		}
	}
	return nil, models.ErrNotFound
}

// AddComment appends a comment to the matching message and persists.
// It reports whether a message matched; insertion order is preserved.
func (r *FileMessageRepository) AddComment(id int, comment models.Comment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Comments = append(r.messages[i].Comments, comment)
			if err := r.save(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
