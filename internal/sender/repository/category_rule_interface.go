package repository

import senderdomain "callbox-backend/internal/sender/domain"

// CategoryRuleRepository defines the interface for category rule persistence
type CategoryRuleRepository interface {
	// Get all rules for a user
	FindByUser(userID string) ([]*senderdomain.CategoryRule, error)
	// Create or replace the rule for (user, domain)
	Upsert(rule *senderdomain.CategoryRule) error
	// Delete the rule for (user, domain)
	Delete(userID, domain string) error
}
