package domain

import "time"

// CategoryRule is a user-authored domain override. At most one active rule per
// (user, domain); the rule always beats the sender's stored category.
type CategoryRule struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index:idx_user_domain;not null"`
	Domain    string    `json:"domain" gorm:"index:idx_user_domain;not null"`
	Category  Category  `json:"category" gorm:"not null"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
