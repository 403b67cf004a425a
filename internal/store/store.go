// Package store is the persistence gateway for the response-interaction engine.
package store

import (
	"context"
	"errors"

	"delipucash/internal/models"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned when a create violates the (userId, responseId) unique index.
	ErrConflict = errors.New("store: unique constraint conflict")
)

// Store is the CRUD contract consumed by the services. Every call is independently
// failable; nothing is assumed to stay consistent between two calls.
type Store interface {
	FindResponse(ctx context.Context, id string) (*models.Response, error)
	FindUser(ctx context.Context, id string) (*models.AppUser, error)

	HasReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) (bool, error)
	CreateReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) error
	DeleteReactions(ctx context.Context, kind models.ReactionKind, userID, responseID string) (int64, error)
	CountReactions(ctx context.Context, kind models.ReactionKind, responseID string) (int64, error)

	CreateReply(ctx context.Context, reply *models.ResponseReply) error
	ListReplies(ctx context.Context, responseID string) ([]models.ResponseReply, error)
	CountReplies(ctx context.Context, responseID string) (int64, error)

	Ping(ctx context.Context) error
}
