package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	digestusecase "callbox-backend/internal/digest/usecase"
	notificationdomain "callbox-backend/internal/notification/domain"
	"callbox-backend/internal/notification/repository"
	"callbox-backend/pkg/phone"
	"callbox-backend/pkg/telephony"
)

// whatsAppBodyLimit bounds the templated WhatsApp message
const whatsAppBodyLimit = 1000

// Verifier gates dispatch on a verified destination
type Verifier interface {
	IsVerified(ctx context.Context, userID, destination string) (bool, error)
}

// ProviderClient is the telephony provider surface the dispatcher needs
type ProviderClient interface {
	CreateCall(ctx context.Context, to, markup string) (*telephony.CallResult, error)
	SendMessage(ctx context.Context, to, from, body string) (*telephony.MessageResult, error)
}

// VoiceResolver picks a synthesis voice, degrading to a default on failure
type VoiceResolver interface {
	ResolveVoice(ctx context.Context, preferred string) string
}

// DispatchUsecase delivers digest scripts over a chosen channel and keeps the
// dispatch log
type DispatchUsecase interface {
	// Dispatch delivers the script to a verified destination. Exactly one
	// NotificationRecord is created per attempt, provider failures
	// included; precondition failures (malformed destination, not
	// verified) create none.
	Dispatch(ctx context.Context, userID, destination string, channel notificationdomain.Channel, script *digestusecase.DigestScript, preferredVoice string) (*notificationdomain.NotificationRecord, error)
	// ApplyProviderStatus applies an asynchronous provider status update.
	// Idempotent: duplicate terminal updates are no-ops.
	ApplyProviderStatus(ctx context.Context, providerRef, providerStatus string, durationSeconds int) error
}

// dispatchUsecase implements DispatchUsecase with one handler per channel
// variant behind a common interface
type dispatchUsecase struct {
	notificationRepo repository.NotificationRepository
	verifier         Verifier
	handlers         map[notificationdomain.Channel]channelHandler
}

// NewDispatchUsecase creates a new instance of dispatchUsecase
func NewDispatchUsecase(notificationRepo repository.NotificationRepository, verifier Verifier, provider ProviderClient, voices VoiceResolver, whatsAppFrom string) DispatchUsecase {
	return &dispatchUsecase{
		notificationRepo: notificationRepo,
		verifier:         verifier,
		handlers: map[notificationdomain.Channel]channelHandler{
			notificationdomain.ChannelVoice:    &voiceHandler{provider: provider, voices: voices},
			notificationdomain.ChannelSMS:      &smsHandler{provider: provider},
			notificationdomain.ChannelWhatsApp: &whatsAppHandler{provider: provider, from: whatsAppFrom},
		},
	}
}

func (u *dispatchUsecase) Dispatch(ctx context.Context, userID, destination string, channel notificationdomain.Channel, script *digestusecase.DigestScript, preferredVoice string) (*notificationdomain.NotificationRecord, error) {
	if err := phone.Validate(destination); err != nil {
		return nil, err
	}

	handler, ok := u.handlers[channel]
	if !ok {
		return nil, fmt.Errorf("unsupported channel %q", channel)
	}

	// WhatsApp piggybacks on the same verified number as voice and SMS
	verified, err := u.verifier.IsVerified(ctx, userID, destination)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, notificationdomain.ErrNotVerified
	}

	record := &notificationdomain.NotificationRecord{
		UserID:      userID,
		Destination: destination,
		Channel:     channel,
		EmailCount:  script.SendersAnalyzed,
	}

	ref, providerStatus, sendErr := handler.send(ctx, destination, script, preferredVoice)
	if sendErr != nil {
		record.Status = notificationdomain.StatusFailed
		if err := u.notificationRepo.Create(record); err != nil {
			log.Printf("[Dispatch] Failed to log failed %s dispatch for user %s: %v", channel, userID, err)
		}
		return record, sendErr
	}

	record.ProviderRef = ref
	record.Status = notificationdomain.MapProviderStatus(providerStatus)
	if err := u.notificationRepo.Create(record); err != nil {
		return nil, err
	}

	log.Printf("[Dispatch] %s dispatch for user %s queued with ref %s", channel, userID, ref)
	return record, nil
}

func (u *dispatchUsecase) ApplyProviderStatus(ctx context.Context, providerRef, providerStatus string, durationSeconds int) error {
	record, err := u.notificationRepo.FindByProviderRef(providerRef)
	if err != nil {
		return err
	}
	if record == nil {
		// Providers occasionally call back for refs we never logged
		log.Printf("[Dispatch] Status callback for unknown ref %s ignored", providerRef)
		return nil
	}

	status := notificationdomain.MapProviderStatus(providerStatus)
	return u.notificationRepo.UpdateStatusByRef(providerRef, status, durationSeconds)
}

// channelHandler sends one script over one channel variant
type channelHandler interface {
	send(ctx context.Context, destination string, script *digestusecase.DigestScript, preferredVoice string) (ref, providerStatus string, err error)
}

type voiceHandler struct {
	provider ProviderClient
	voices   VoiceResolver
}

func (h *voiceHandler) send(ctx context.Context, destination string, script *digestusecase.DigestScript, preferredVoice string) (string, string, error) {
	voice := h.voices.ResolveVoice(ctx, preferredVoice)
	markup := fmt.Sprintf(`<Response><Say voice="%s">%s</Say></Response>`, voice, xmlEscape(script.Script))

	result, err := h.provider.CreateCall(ctx, destination, markup)
	if err != nil {
		return "", "", err
	}
	return result.Ref, result.Status, nil
}

type smsHandler struct {
	provider ProviderClient
}

func (h *smsHandler) send(ctx context.Context, destination string, script *digestusecase.DigestScript, _ string) (string, string, error) {
	result, err := h.provider.SendMessage(ctx, destination, "", script.Script)
	if err != nil {
		return "", "", err
	}
	return result.Ref, result.Status, nil
}

type whatsAppHandler struct {
	provider ProviderClient
	from     string
}

func (h *whatsAppHandler) send(ctx context.Context, destination string, script *digestusecase.DigestScript, _ string) (string, string, error) {
	body := fmt.Sprintf("📬 *Inbox digest*\n\n%s\n\n✉️ %d analyzed · ⭐ %d important · 📅 %d meetings",
		script.Script, script.SendersAnalyzed, script.ImportantFound, script.MeetingsFound)
	if runes := []rune(body); len(runes) > whatsAppBodyLimit {
		body = string(runes[:whatsAppBodyLimit-1]) + "…"
	}

	result, err := h.provider.SendMessage(ctx, phone.WhatsAppAddress(destination), phone.WhatsAppAddress(h.from), body)
	if err != nil {
		return "", "", err
	}
	return result.Ref, result.Status, nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
