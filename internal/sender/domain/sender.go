package domain

import "time"

// Category is the closed set of buckets a sender can be assigned to
type Category string

const (
	CategoryCallMe         Category = "call-me"
	CategoryRemindMe       Category = "remind-me"
	CategoryKeepQuiet      Category = "keep-quiet"
	CategoryNewsletter     Category = "newsletter"
	CategoryWhyDidISignup  Category = "why-did-i-signup"
	CategoryDontTellAnyone Category = "dont-tell-anyone"
	CategoryUnassigned     Category = "unassigned"
)

// Valid reports whether c is one of the enumerated categories
func (c Category) Valid() bool {
	switch c {
	case CategoryCallMe, CategoryRemindMe, CategoryKeepQuiet, CategoryNewsletter,
		CategoryWhyDidISignup, CategoryDontTellAnyone, CategoryUnassigned:
		return true
	}
	return false
}

// Sender represents one email-sending identity observed for a user.
// Senders are never hard-deleted; the category may be reset to unassigned.
type Sender struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index:idx_user_email;not null"`
	Email         string    `json:"email" gorm:"index:idx_user_email;not null"`
	Domain        string    `json:"domain" gorm:"index;not null"`
	DisplayName   string    `json:"display_name,omitempty"`
	Category      Category  `json:"category" gorm:"not null;default:'unassigned'"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int       `json:"message_count" gorm:"not null;default:0"`
	LastSubject   string    `json:"last_subject"`
	LastPreview   string    `json:"last_preview" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name returns the display name, falling back to the email address
func (s *Sender) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Email
}
