package repository

import (
	"time"

	notificationdomain "callbox-backend/internal/notification/domain"
)

// NotificationRepository defines the interface for the dispatch log
type NotificationRepository interface {
	// Create a new record; one per dispatch attempt
	Create(record *notificationdomain.NotificationRecord) error
	// Get one record by ID, scoped to the user
	FindByID(userID, recordID string) (*notificationdomain.NotificationRecord, error)
	// Get one record by provider reference
	FindByProviderRef(providerRef string) (*notificationdomain.NotificationRecord, error)
	// Get records for a user, newest first, optionally since a timestamp
	FindByUser(userID string, since *time.Time, limit int) ([]*notificationdomain.NotificationRecord, error)
	// Apply a provider-reported status. Records already in a terminal
	// status are left untouched, which makes duplicate callbacks harmless.
	UpdateStatusByRef(providerRef string, status notificationdomain.Status, durationSeconds int) error
	// Count dispatches for a user since a timestamp (caller-side dedup)
	CountForUserSince(userID string, since time.Time) (int64, error)
}
