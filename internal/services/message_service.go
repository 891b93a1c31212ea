package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"localforum/internal/models"
	"localforum/internal/query"
	"localforum/internal/repositories"
	"localforum/pkg/rabbitmq"
)

// MessageService handles business logic for board messages: creation,
// author-only edits and deletes, likes, comments and timeline views.
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	mqClient    *rabbitmq.Client // optional, nil disables event publishing
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		mqClient:    mqClient,
	}
}

// CreateMessage posts a new message for author. The text is trimmed
// and must not be empty; the author must be a registered user.
func (s *MessageService) CreateMessage(author, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.ErrEmptyText
	}

	if _, err := s.userRepo.GetByUsername(author); err != nil {
		return nil, fmt.Errorf("unknown author %s: %w", author, err)
	}

	message := &models.Message{
		Text:      text,
		CreatedAt: models.FormatTimestamp(time.Now()),
		Author:    author,
		Comments:  []models.Comment{},
		Good:      0,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.publishEvent("message.created", map[string]interface{}{
		"message_id": message.ID,
		"author":     message.Author,
		"created_at": message.CreatedAt,
	})

	return message, nil
}

// EditMessage replaces the text of the actor's own message and stamps
// its update time. When the new text is empty after trimming, the
// stored message is returned alongside ErrEmptyText so the caller can
// redisplay it with the rejected draft.
func (s *MessageService) EditMessage(id int, actor, text string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(actor, message.Author); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return message, models.ErrEmptyText
	}

	return s.messageRepo.UpdateText(id, text, models.FormatTimestamp(time.Now()))
}

// DeleteMessage removes the actor's own message. An unknown ID is a
// silent no-op, a quirk carried over from the legacy board; the
// ownership check only applies when a message matches.
func (s *MessageService) DeleteMessage(id int, actor string) error {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := requireAuthor(actor, message.Author); err != nil {
		return err
	}

	_, err = s.messageRepo.Delete(id)
	return err
}

// LikeMessage increments the like counter of a message. Any
// authenticated actor may like any message any number of times; no
// identity is recorded.
func (s *MessageService) LikeMessage(id int) (*models.Message, error) {
	message, err := s.messageRepo.Like(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent("message.liked", map[string]interface{}{
		"message_id": message.ID,
		"good":       message.Good,
	})

	return message, nil
}

// AddComment appends a comment to a message. Like DeleteMessage, an
// unknown ID is a silent no-op rather than an error.
func (s *MessageService) AddComment(id int, author, text string) error {
	comment := models.Comment{
		Author:    author,
		Text:      strings.TrimSpace(text),
		CreatedAt: models.FormatTimestamp(time.Now()),
	}
	_, err := s.messageRepo.AddComment(id, comment)
	return err
}

// ListByAuthor returns the author's messages in store order.
func (s *MessageService) ListByAuthor(username string) ([]models.Message, error) {
	return s.messageRepo.GetByAuthor(username)
}

// Timeline returns the filtered, sorted view of the whole board.
func (s *MessageService) Timeline(search, sortMode string) ([]models.Message, error) {
	messages, err := s.messageRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return query.View(messages, strings.TrimSpace(search), sortMode), nil
}

// publishEvent sends a board event to the message queue. Publishing is
// best-effort: a missing client or a broker failure never fails the
// operation that triggered the event.
func (s *MessageService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishBoardEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
