package store

import (
	"context"

	"github.com/me/fleetgate/pkg/model"
)

// Store defines the persistence layer for gateway sessions.
// The session is the only entity this subsystem owns; every other record
// lives upstream in the rental platform.
type Store interface {
	CreateSession(ctx context.Context, sess *model.Session) error
	// GetSession returns nil, nil when no session exists for the ID.
	GetSession(ctx context.Context, id string) (*model.Session, error)
	UpdateSession(ctx context.Context, sess *model.Session) error
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpiredSessions removes sessions past their hard ceiling and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	Close() error
	Migrate(ctx context.Context) error
}
