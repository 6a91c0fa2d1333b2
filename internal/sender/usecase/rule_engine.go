package usecase

import (
	senderdomain "callbox-backend/internal/sender/domain"
)

// ResolveCategory resolves a sender's effective bucket. A rule matching the
// sender's domain always wins over the stored category. Total and
// deterministic: with duplicate rules for one domain the most recently
// created rule is picked, and anything unset or invalid resolves to
// unassigned.
func ResolveCategory(sender *senderdomain.Sender, rules []*senderdomain.CategoryRule) senderdomain.Category {
	var match *senderdomain.CategoryRule
	for _, rule := range rules {
		if rule == nil || rule.Domain != sender.Domain {
			continue
		}
		if match == nil || rule.CreatedAt.After(match.CreatedAt) {
			match = rule
		}
	}
	if match != nil && match.Category.Valid() {
		return match.Category
	}

	if sender.Category.Valid() {
		return sender.Category
	}
	return senderdomain.CategoryUnassigned
}
