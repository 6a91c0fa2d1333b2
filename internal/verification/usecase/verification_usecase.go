package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"

	verificationdomain "callbox-backend/internal/verification/domain"
	"callbox-backend/internal/verification/repository"
	"callbox-backend/pkg/phone"
	"callbox-backend/pkg/telephony"
)

const codeLength = 6

// CodeSender sends the one-time code over SMS
type CodeSender interface {
	SendMessage(ctx context.Context, to, from, body string) (*telephony.MessageResult, error)
}

// VerificationUsecase manages one-time-code challenges per (user, phone) pair
type VerificationUsecase interface {
	// SendCode issues a fresh code and dispatches it by SMS. Any prior
	// session for the pair is superseded. On provider failure no session
	// is created.
	SendCode(ctx context.Context, userID, destination string) error
	// VerifyCode checks a candidate against the stored code
	VerifyCode(ctx context.Context, userID, destination, candidate string) error
	// IsVerified reports whether the destination is usable for dispatch
	IsVerified(ctx context.Context, userID, destination string) (bool, error)
}

// verificationUsecase implements VerificationUsecase. Operations on the same
// (user, phone) pair are serialized through a per-pair mutex so concurrent
// verifications cannot both win.
type verificationUsecase struct {
	store       repository.SessionStore
	codeSender  CodeSender
	codeTTL     time.Duration
	maxAttempts int
	verifiedTTL time.Duration
	// locks holds one mutex per (user, phone) pair and is never evicted;
	// growth is bounded by the number of distinct pairs seen since startup
	locks sync.Map
	now   func() time.Time
}

// NewVerificationUsecase creates a new instance of verificationUsecase
func NewVerificationUsecase(store repository.SessionStore, codeSender CodeSender, codeTTL time.Duration, maxAttempts int, verifiedTTL time.Duration) VerificationUsecase {
	return &verificationUsecase{
		store:       store,
		codeSender:  codeSender,
		codeTTL:     codeTTL,
		maxAttempts: maxAttempts,
		verifiedTTL: verifiedTTL,
		now:         time.Now,
	}
}

func (u *verificationUsecase) pairLock(userID, destination string) *sync.Mutex {
	actual, _ := u.locks.LoadOrStore(userID+"|"+destination, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (u *verificationUsecase) SendCode(ctx context.Context, userID, destination string) error {
	if err := phone.Validate(destination); err != nil {
		return err
	}

	lock := u.pairLock(userID, destination)
	lock.Lock()
	defer lock.Unlock()

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	body := fmt.Sprintf("Your CallBox verification code is %s. It expires in %d minutes.",
		code, int(u.codeTTL.Minutes()))
	if _, err := u.codeSender.SendMessage(ctx, destination, "", body); err != nil {
		// No half-state: the session is only written after the SMS went out
		return err
	}

	now := u.now()
	session := &verificationdomain.Session{
		UserID:    userID,
		Phone:     destination,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(u.codeTTL),
		State:     verificationdomain.StateCodeSent,
	}
	// Keep the record past its logical expiry so a late check still reports
	// CodeExpired instead of no-session
	return u.store.Save(ctx, session, u.codeTTL*2)
}

func (u *verificationUsecase) VerifyCode(ctx context.Context, userID, destination, candidate string) error {
	if err := phone.Validate(destination); err != nil {
		return err
	}

	lock := u.pairLock(userID, destination)
	lock.Lock()
	defer lock.Unlock()

	session, err := u.store.Get(ctx, userID, destination)
	if err != nil {
		return err
	}
	if session == nil {
		return verificationdomain.ErrNoSession
	}

	switch session.State {
	case verificationdomain.StateLocked:
		return verificationdomain.ErrTooManyAttempts
	case verificationdomain.StateExpired:
		return verificationdomain.ErrCodeExpired
	case verificationdomain.StateVerified:
		return verificationdomain.ErrCodeConsumed
	}
	if session.Consumed {
		return verificationdomain.ErrCodeConsumed
	}

	if u.now().After(session.ExpiresAt) {
		session.State = verificationdomain.StateExpired
		if err := u.store.Save(ctx, session, u.codeTTL); err != nil {
			return err
		}
		return verificationdomain.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(session.Code), []byte(candidate)) != 1 {
		session.Attempts++
		if session.Attempts >= u.maxAttempts {
			session.State = verificationdomain.StateLocked
			if err := u.store.Save(ctx, session, u.codeTTL); err != nil {
				return err
			}
			return verificationdomain.ErrTooManyAttempts
		}
		if err := u.store.Save(ctx, session, u.codeTTL*2); err != nil {
			return err
		}
		return verificationdomain.ErrCodeMismatch
	}

	session.State = verificationdomain.StateVerified
	session.Consumed = true
	if err := u.store.Save(ctx, session, u.codeTTL); err != nil {
		return err
	}
	return u.store.MarkVerified(ctx, userID, destination, u.verifiedTTL)
}

func (u *verificationUsecase) IsVerified(ctx context.Context, userID, destination string) (bool, error) {
	return u.store.IsVerified(ctx, userID, destination)
}

// generateCode produces a fixed-length numeric code
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, n), nil
}
