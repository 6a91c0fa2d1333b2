package repository

import (
	"time"

	senderdomain "callbox-backend/internal/sender/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// categoryRuleRepository implements CategoryRuleRepository using GORM
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new instance of categoryRuleRepository
func NewCategoryRuleRepository(db *gorm.DB) CategoryRuleRepository {
	return &categoryRuleRepository{db: db}
}

func (r *categoryRuleRepository) FindByUser(userID string) ([]*senderdomain.CategoryRule, error) {
	var rules []*senderdomain.CategoryRule
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// Upsert enforces at most one active rule per (user, domain) by replacing any
// existing rule inside a transaction
func (r *categoryRuleRepository) Upsert(rule *senderdomain.CategoryRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND domain = ?", rule.UserID, rule.Domain).
			Delete(&senderdomain.CategoryRule{}).Error; err != nil {
			return err
		}
		return tx.Create(rule).Error
	})
}

func (r *categoryRuleRepository) Delete(userID, domain string) error {
	return r.db.Where("user_id = ? AND domain = ?", userID, domain).
		Delete(&senderdomain.CategoryRule{}).Error
}
