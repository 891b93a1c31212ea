package repositories

import (
	"localforum/internal/models"
)

// MessageRepository defines the interface for message data access.
// Mutating operations are atomic: the matching record is located,
// changed and persisted under a single lock.
type MessageRepository interface {
	GetAll() ([]models.Message, error)
	GetByID(id int) (*models.Message, error)
	GetByAuthor(username string) ([]models.Message, error)
	Create(message *models.Message) error
	UpdateText(id int, text, updatedAt string) (*models.Message, error)
	Delete(id int) (bool, error)
	Like(id int) (*models.Message, error)
	AddComment(id int, comment models.Comment) (bool, error)
}
