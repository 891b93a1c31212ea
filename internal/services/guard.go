package services

import "localforum/internal/models"

// requireAuthor is the single ownership rule applied to every mutating
// operation on an owned resource: the acting user must be the author,
// compared by exact string match. Authentication itself happens
// upstream in the middleware; by the time a service runs, the actor is
// a verified username.
func requireAuthor(actor, author string) error {
	if actor != author {
		return models.ErrForbidden
	}
	return nil
}
