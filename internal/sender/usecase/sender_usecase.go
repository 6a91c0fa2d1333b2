package usecase

import (
	"errors"
	"strings"
	"time"

	senderdomain "callbox-backend/internal/sender/domain"
	"callbox-backend/internal/sender/repository"
)

// SenderUsecase defines sender and category rule operations
type SenderUsecase interface {
	// List all senders for a user with their resolved categories applied
	ListSenders(userID string) ([]*senderdomain.Sender, error)
	// Record one observed message from a sender, creating it on first sight
	RecordMessage(userID, email, displayName, subject, preview string, at time.Time) (*senderdomain.Sender, error)
	// Set the stored category for a sender
	SetCategory(userID, senderID string, category senderdomain.Category) error
	// List the user's category rules
	ListRules(userID string) ([]*senderdomain.CategoryRule, error)
	// Create or replace the rule for a domain
	UpsertRule(userID, domain string, category senderdomain.Category, reason string) (*senderdomain.CategoryRule, error)
	// Delete the rule for a domain
	DeleteRule(userID, domain string) error
}

// senderUsecase implements SenderUsecase
type senderUsecase struct {
	senderRepo repository.SenderRepository
	ruleRepo   repository.CategoryRuleRepository
}

// NewSenderUsecase creates a new instance of senderUsecase
func NewSenderUsecase(senderRepo repository.SenderRepository, ruleRepo repository.CategoryRuleRepository) SenderUsecase {
	return &senderUsecase{
		senderRepo: senderRepo,
		ruleRepo:   ruleRepo,
	}
}

func (u *senderUsecase) ListSenders(userID string) ([]*senderdomain.Sender, error) {
	senders, err := u.senderRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	rules, err := u.ruleRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	for _, sender := range senders {
		sender.Category = ResolveCategory(sender, rules)
	}
	return senders, nil
}

func (u *senderUsecase) RecordMessage(userID, email, displayName, subject, preview string, at time.Time) (*senderdomain.Sender, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("invalid sender email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]

	sender, err := u.senderRepo.FindByEmail(userID, email)
	if err != nil {
		return nil, err
	}

	if sender == nil {
		sender = &senderdomain.Sender{
			UserID:        userID,
			Email:         email,
			Domain:        domain,
			DisplayName:   displayName,
			Category:      senderdomain.CategoryUnassigned,
			LastMessageAt: at,
			MessageCount:  1,
			LastSubject:   subject,
			LastPreview:   preview,
		}
		if err := u.senderRepo.Create(sender); err != nil {
			return nil, err
		}
		return sender, nil
	}

	sender.MessageCount++
	sender.LastSubject = subject
	sender.LastPreview = preview
	if displayName != "" {
		sender.DisplayName = displayName
	}
	if at.After(sender.LastMessageAt) {
		sender.LastMessageAt = at
	}
	if err := u.senderRepo.Update(sender); err != nil {
		return nil, err
	}
	return sender, nil
}

func (u *senderUsecase) SetCategory(userID, senderID string, category senderdomain.Category) error {
	if !category.Valid() {
		return errors.New("invalid category")
	}
	sender, err := u.senderRepo.FindByID(userID, senderID)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.New("sender not found")
	}
	return u.senderRepo.SetCategory(userID, senderID, category)
}

func (u *senderUsecase) ListRules(userID string) ([]*senderdomain.CategoryRule, error) {
	return u.ruleRepo.FindByUser(userID)
}

func (u *senderUsecase) UpsertRule(userID, domain string, category senderdomain.Category, reason string) (*senderdomain.CategoryRule, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, errors.New("rule domain is required")
	}
	if !category.Valid() || category == senderdomain.CategoryUnassigned {
		return nil, errors.New("invalid rule category")
	}

	rule := &senderdomain.CategoryRule{
		UserID:   userID,
		Domain:   domain,
		Category: category,
		Reason:   reason,
	}
	if err := u.ruleRepo.Upsert(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (u *senderUsecase) DeleteRule(userID, domain string) error {
	return u.ruleRepo.Delete(userID, strings.ToLower(strings.TrimSpace(domain)))
}
