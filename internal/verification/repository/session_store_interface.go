package repository

import (
	"context"
	"time"

	verificationdomain "callbox-backend/internal/verification/domain"
)

// SessionStore defines the interface for ephemeral verification state
type SessionStore interface {
	// Get the session for (user, phone); (nil, nil) when none exists
	Get(ctx context.Context, userID, phone string) (*verificationdomain.Session, error)
	// Save the session, replacing any prior one, with the given time-to-live
	Save(ctx context.Context, session *verificationdomain.Session, ttl time.Duration) error
	// MarkVerified records that the phone is usable for dispatch
	MarkVerified(ctx context.Context, userID, phone string, ttl time.Duration) error
	// IsVerified reports whether the phone was verified and is still within its window
	IsVerified(ctx context.Context, userID, phone string) (bool, error)
}
