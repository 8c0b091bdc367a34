package repository

import (
	"context"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

// AdminRepository tracks operator sessions and the action audit log.
type AdminRepository interface {
	// CreateSession stores a fresh operator session.
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// DeleteSession removes the session (logout).
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user has a live session.
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// LogAction appends an audit record.
	LogAction(ctx context.Context, action entity.AdminAction) error
}
