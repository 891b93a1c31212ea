package handlers

import (
	"errors"
	"log"
	"strconv"

	"localforum/internal/models"
	"localforum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for board messages.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the message routes with the Fiber app.
// All of these require an authenticated actor.
func (h *MessageHandler) RegisterRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Get("/", h.HandleTimeline)
	messageRoutes.Post("/", h.HandleCreate)
	messageRoutes.Put("/:id", h.HandleEdit)
	messageRoutes.Delete("/:id", h.HandleDelete)
	messageRoutes.Post("/:id/like", h.HandleLike)
	messageRoutes.Post("/:id/comments", h.HandleAddComment)
}

// MessageRequest represents the request body for posting or editing a
// message.
type MessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentRequest represents the request body for commenting.
type CommentRequest struct {
	Text string `json:"text"`
}

// HandleTimeline returns the filtered, sorted view of the board.
// Supported query parameters: q (substring search) and sort
// (new/old/updated/likes; anything else behaves like new).
func (h *MessageHandler) HandleTimeline(c *fiber.Ctx) error {
	messages, err := h.service.Timeline(c.Query("q"), c.Query("sort", "new"))
	if err != nil {
		log.Printf("Error building timeline: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve messages",
			"error":   err.Error(),
		})
	}
	return c.JSON(messages)
}

// HandleCreate posts a new message authored by the current actor.
func (h *MessageHandler) HandleCreate(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing message request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	message, err := h.service.CreateMessage(actor, req.Text)
	if err != nil {
		log.Printf("Error creating message for %s: %v", actor, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not create message",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleEdit replaces the text of the actor's own message. Rejecting
// an empty edit echoes the stored message back so the client can
// redisplay the form.
func (h *MessageHandler) HandleEdit(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message id",
		})
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	message, err := h.service.EditMessage(id, actor, req.Text)
	if err != nil {
		log.Printf("Error editing message %d by %s: %v", id, actor, err)
		resp := fiber.Map{
			"message": "Could not edit message",
			"error":   err.Error(),
		}
		if errors.Is(err, models.ErrEmptyText) && message != nil {
			resp["original"] = message
		}
		return c.Status(statusForError(err)).JSON(resp)
	}

	return c.JSON(message)
}

// HandleDelete removes the actor's own message. Deleting an unknown
// ID succeeds without doing anything, matching the legacy board.
func (h *MessageHandler) HandleDelete(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message id",
		})
	}

	if err := h.service.DeleteMessage(id, actor); err != nil {
		log.Printf("Error deleting message %d by %s: %v", id, actor, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete message",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleLike increments a message's like counter.
func (h *MessageHandler) HandleLike(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message id",
		})
	}

	message, err := h.service.LikeMessage(id)
	if err != nil {
		log.Printf("Error liking message %d: %v", id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not like message",
			"error":   err.Error(),
		})
	}

	return c.JSON(message)
}

// HandleAddComment appends a comment by the current actor. Commenting
// on an unknown ID is a silent no-op, like delete.
func (h *MessageHandler) HandleAddComment(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message id",
		})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.AddComment(id, actor, req.Text); err != nil {
		log.Printf("Error commenting on message %d by %s: %v", id, actor, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not add comment",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
