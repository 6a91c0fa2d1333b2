package domain

import (
	"errors"
	"time"
)

// State is the verification session state. A session starts at CodeSent
// (there is no stored record for the none state) and ends at Verified,
// Expired or Locked.
type State string

const (
	StateCodeSent State = "code_sent"
	StateVerified State = "verified"
	StateExpired  State = "expired"
	StateLocked   State = "locked"
)

var (
	// ErrNoSession means no code was sent for this (user, phone) pair
	ErrNoSession = errors.New("no verification session: request a new code")
	// ErrCodeExpired means the absolute expiry passed before a successful check
	ErrCodeExpired = errors.New("verification code expired: request a new code")
	// ErrCodeMismatch means the candidate did not match; the session stays open
	ErrCodeMismatch = errors.New("verification code does not match")
	// ErrTooManyAttempts means the attempt cap was exhausted and the session is locked
	ErrTooManyAttempts = errors.New("too many attempts: request a new code")
	// ErrCodeConsumed means the code was already used successfully
	ErrCodeConsumed = errors.New("verification code already used")
)

// Session is the ephemeral one-time-code record for one (user, phone) pair.
// The code is single-use and the expiry is absolute, not sliding.
type Session struct {
	UserID    string    `json:"user_id"`
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"consumed"`
	Attempts  int       `json:"attempts"`
	State     State     `json:"state"`
}
