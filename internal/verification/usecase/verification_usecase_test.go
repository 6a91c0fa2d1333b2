package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	verificationdomain "callbox-backend/internal/verification/domain"
	"callbox-backend/internal/verification/repository"
	"callbox-backend/pkg/phone"
	"callbox-backend/pkg/telephony"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "+15551234567"

type fakeCodeSender struct {
	mu     sync.Mutex
	bodies []string
	fail   bool
}

func (f *fakeCodeSender) SendMessage(ctx context.Context, to, from, body string) (*telephony.MessageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("%w: connection refused", telephony.ErrProviderUnavailable)
	}
	f.bodies = append(f.bodies, body)
	return &telephony.MessageResult{Ref: "SM1", Status: "queued"}, nil
}

func newTestUsecase(t *testing.T, sender *fakeCodeSender) (*verificationUsecase, repository.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewRedisSessionStore(client)

	u := &verificationUsecase{
		store:       store,
		codeSender:  sender,
		codeTTL:     5 * time.Minute,
		maxAttempts: 3,
		verifiedTTL: 24 * time.Hour,
		now:         time.Now,
	}
	return u, store
}

func storedCode(t *testing.T, store repository.SessionStore, userID, destination string) string {
	t.Helper()
	session, err := store.Get(context.Background(), userID, destination)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session.Code
}

func TestSendCodeStoresSessionAndSendsSMS(t *testing.T) {
	sender := &fakeCodeSender{}
	u, store := newTestUsecase(t, sender)

	require.NoError(t, u.SendCode(context.Background(), "u1", testPhone))

	session, err := store.Get(context.Background(), "u1", testPhone)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, verificationdomain.StateCodeSent, session.State)
	assert.Len(t, session.Code, 6)
	assert.Equal(t, 0, session.Attempts)

	require.Len(t, sender.bodies, 1)
	assert.Contains(t, sender.bodies[0], session.Code)
}

func TestSendCodeProviderFailureLeavesNoSession(t *testing.T) {
	sender := &fakeCodeSender{fail: true}
	u, store := newTestUsecase(t, sender)

	err := u.SendCode(context.Background(), "u1", testPhone)
	require.ErrorIs(t, err, telephony.ErrProviderUnavailable)

	session, err := store.Get(context.Background(), "u1", testPhone)
	require.NoError(t, err)
	assert.Nil(t, session, "no half-state on provider failure")
}

func TestSendCodeRejectsMalformedDestination(t *testing.T) {
	u, _ := newTestUsecase(t, &fakeCodeSender{})

	err := u.SendCode(context.Background(), "u1", "555-123-4567")
	assert.ErrorIs(t, err, phone.ErrMalformedDestination)
}

func TestVerifyCodeSuccessIsSingleUse(t *testing.T) {
	u, store := newTestUsecase(t, &fakeCodeSender{})
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	code := storedCode(t, store, "u1", testPhone)

	require.NoError(t, u.VerifyCode(ctx, "u1", testPhone, code))

	verified, err := u.IsVerified(ctx, "u1", testPhone)
	require.NoError(t, err)
	assert.True(t, verified)

	err = u.VerifyCode(ctx, "u1", testPhone, code)
	assert.ErrorIs(t, err, verificationdomain.ErrCodeConsumed)
}

func TestVerifyCodeLocksAfterCap(t *testing.T) {
	u, store := newTestUsecase(t, &fakeCodeSender{})
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	code := storedCode(t, store, "u1", testPhone)

	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, "000000"), verificationdomain.ErrCodeMismatch)
	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, "000000"), verificationdomain.ErrCodeMismatch)
	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, "000000"), verificationdomain.ErrTooManyAttempts)

	// The correct code no longer helps once locked
	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, code), verificationdomain.ErrTooManyAttempts)

	session, err := store.Get(ctx, "u1", testPhone)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, verificationdomain.StateLocked, session.State)

	verified, err := u.IsVerified(ctx, "u1", testPhone)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyCodeExpires(t *testing.T) {
	u, store := newTestUsecase(t, &fakeCodeSender{})
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	code := storedCode(t, store, "u1", testPhone)

	// Simulate a clock skip past the absolute expiry
	u.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, code), verificationdomain.ErrCodeExpired)
	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, code), verificationdomain.ErrCodeExpired)

	verified, err := u.IsVerified(ctx, "u1", testPhone)
	require.NoError(t, err)
	assert.False(t, verified, "expired session must never transition to verified")
}

func TestVerifiedMarkerLapsesWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewRedisSessionStore(client)

	u := &verificationUsecase{
		store:       store,
		codeSender:  &fakeCodeSender{},
		codeTTL:     5 * time.Minute,
		maxAttempts: 3,
		verifiedTTL: 24 * time.Hour,
		now:         time.Now,
	}
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	require.NoError(t, u.VerifyCode(ctx, "u1", testPhone, storedCode(t, store, "u1", testPhone)))

	verified, err := u.IsVerified(ctx, "u1", testPhone)
	require.NoError(t, err)
	require.True(t, verified)

	mr.FastForward(24*time.Hour + time.Minute)

	verified, err = u.IsVerified(ctx, "u1", testPhone)
	require.NoError(t, err)
	assert.False(t, verified, "a lapsed marker requires a fresh challenge")
}

func TestVerifyCodeWithoutSession(t *testing.T) {
	u, _ := newTestUsecase(t, &fakeCodeSender{})

	err := u.VerifyCode(context.Background(), "u1", testPhone, "123456")
	assert.ErrorIs(t, err, verificationdomain.ErrNoSession)
}

func TestSendCodeSupersedesPriorSession(t *testing.T) {
	u, store := newTestUsecase(t, &fakeCodeSender{})
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	firstCode := storedCode(t, store, "u1", testPhone)
	assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, "000000"), verificationdomain.ErrCodeMismatch)

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	session, err := store.Get(ctx, "u1", testPhone)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 0, session.Attempts, "fresh session resets the attempt counter")

	if session.Code != firstCode {
		assert.ErrorIs(t, u.VerifyCode(ctx, "u1", testPhone, firstCode), verificationdomain.ErrCodeMismatch)
	}
}

func TestConcurrentVerifyOnlyOneWins(t *testing.T) {
	u, store := newTestUsecase(t, &fakeCodeSender{})
	ctx := context.Background()

	require.NoError(t, u.SendCode(ctx, "u1", testPhone))
	code := storedCode(t, store, "u1", testPhone)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- u.VerifyCode(ctx, "u1", testPhone, code)
		}()
	}
	wg.Wait()
	close(results)

	var wins, consumed int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, verificationdomain.ErrCodeConsumed):
			consumed++
		default:
			t.Fatalf("unexpected verify error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent verify may win")
	assert.Equal(t, 1, consumed)
}
