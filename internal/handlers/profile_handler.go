package handlers

import (
	"log"

	"localforum/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	profileService *services.ProfileService
	messageService *services.MessageService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, messageService *services.MessageService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		messageService: messageService,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profiles")
	profileRoutes.Get("/:username", h.HandleGetProfile)
	profileRoutes.Put("/:username", h.HandleUpdateBio)
}

// BioRequest represents the request body for a bio update.
type BioRequest struct {
	Bio string `json:"bio"`
}

// HandleGetProfile returns a user's profile together with their
// messages in store order.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	profile, err := h.profileService.GetProfile(username)
	if err != nil {
		log.Printf("Error getting profile for %s: %v", username, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}

	messages, err := h.messageService.ListByAuthor(username)
	if err != nil {
		log.Printf("Error listing messages for %s: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve messages",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"username": username,
		"profile":  profile,
		"messages": messages,
	})
}

// HandleUpdateBio updates the bio on the actor's own profile.
func (h *ProfileHandler) HandleUpdateBio(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	username := c.Params("username")

	var req BioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.profileService.UpdateBio(username, actor, req.Bio); err != nil {
		log.Printf("Error updating bio for %s by %s: %v", username, actor, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update profile",
			"error":   err.Error(),
		})
	}

	profile, err := h.profileService.GetProfile(username)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
