package repository

import senderdomain "callbox-backend/internal/sender/domain"

// SenderRepository defines the interface for sender persistence
type SenderRepository interface {
	// Get all senders for a user
	FindByUser(userID string) ([]*senderdomain.Sender, error)
	// Get one sender by ID, scoped to the user
	FindByID(userID, senderID string) (*senderdomain.Sender, error)
	// Get one sender by email address, scoped to the user
	FindByEmail(userID, email string) (*senderdomain.Sender, error)
	// Create a new sender
	Create(sender *senderdomain.Sender) error
	// Update an existing sender
	Update(sender *senderdomain.Sender) error
	// Set the stored category for a sender
	SetCategory(userID, senderID string, category senderdomain.Category) error
}
