package domain

import (
	"errors"
	"time"
)

// Channel is the closed set of delivery channels
type Channel string

const (
	ChannelVoice    Channel = "voice"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Valid reports whether c is one of the enumerated channels
func (c Channel) Valid() bool {
	switch c {
	case ChannelVoice, ChannelSMS, ChannelWhatsApp:
		return true
	}
	return false
}

// Status is the closed set of delivery states
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusFailed     Status = "failed"
)

// Terminal reports whether a record in this status is never updated again
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// ErrNotVerified means the destination has no verified session; the caller
// must run the one-time-code challenge first
var ErrNotVerified = errors.New("destination not verified: complete phone verification first")

// MapProviderStatus maps the provider's free-form status strings onto the
// closed status enumeration. Unknown strings map to queued, the safest
// non-terminal state.
func MapProviderStatus(providerStatus string) Status {
	switch providerStatus {
	case "queued", "accepted", "initiated", "ringing", "scheduled", "sending":
		return StatusQueued
	case "in-progress", "answered":
		return StatusInProgress
	case "completed", "sent", "delivered", "read":
		return StatusDelivered
	case "busy", "no-answer", "canceled", "failed", "undelivered":
		return StatusFailed
	default:
		return StatusQueued
	}
}

// NotificationRecord is one dispatch attempt over one channel. Exactly one
// record exists per attempt, provider failures included, so dispatch history
// is complete for auditing and dedup checks.
type NotificationRecord struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"user_id" gorm:"index;not null"`
	Destination     string    `json:"destination" gorm:"not null"`
	Channel         Channel   `json:"channel" gorm:"not null"`
	ProviderRef     string    `json:"provider_ref,omitempty" gorm:"index"`
	Status          Status    `json:"status" gorm:"not null;default:'queued'"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	EmailCount      int       `json:"email_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
