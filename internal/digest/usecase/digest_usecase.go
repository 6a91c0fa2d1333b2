package usecase

import (
	"fmt"
	"sort"
	"strings"

	senderdomain "callbox-backend/internal/sender/domain"
	"callbox-backend/internal/sender/repository"
	senderusecase "callbox-backend/internal/sender/usecase"
)

// maxDigestSenders bounds the spoken script to a roughly constant length
const maxDigestSenders = 5

// meetingKeywords are scanned case-insensitively in the latest subjects of the
// selected senders
var meetingKeywords = []string{"meeting", "call", "zoom", "conference", "appointment"}

// DigestScript is the generated digest for one delivery. It is rebuilt fresh
// on every request; the underlying sender set can change between calls.
type DigestScript struct {
	Senders         []*senderdomain.Sender `json:"senders"`
	Script          string                 `json:"script"`
	SendersAnalyzed int                    `json:"senders_analyzed"`
	ImportantFound  int                    `json:"important_found"`
	MeetingsFound   int                    `json:"meetings_found"`
}

// Empty reports whether the call-me bucket had no senders
func (d *DigestScript) Empty() bool {
	return d.ImportantFound == 0
}

// DigestUsecase defines digest generation
type DigestUsecase interface {
	// Generate builds the digest for the user's current call-me bucket.
	// An empty bucket is not an error: the returned script says so, because
	// callers must always receive a deliverable script.
	Generate(userID string) (*DigestScript, error)
}

// digestUsecase implements DigestUsecase
type digestUsecase struct {
	senderRepo repository.SenderRepository
	ruleRepo   repository.CategoryRuleRepository
}

// NewDigestUsecase creates a new instance of digestUsecase
func NewDigestUsecase(senderRepo repository.SenderRepository, ruleRepo repository.CategoryRuleRepository) DigestUsecase {
	return &digestUsecase{
		senderRepo: senderRepo,
		ruleRepo:   ruleRepo,
	}
}

func (u *digestUsecase) Generate(userID string) (*DigestScript, error) {
	senders, err := u.senderRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	rules, err := u.ruleRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	var bucket []*senderdomain.Sender
	for _, sender := range senders {
		if sender.MessageCount <= 0 {
			continue
		}
		if senderusecase.ResolveCategory(sender, rules) == senderdomain.CategoryCallMe {
			bucket = append(bucket, sender)
		}
	}

	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].LastMessageAt.After(bucket[j].LastMessageAt)
	})

	selected := bucket
	if len(selected) > maxDigestSenders {
		selected = selected[:maxDigestSenders]
	}

	meetings := 0
	for _, sender := range selected {
		subject := strings.ToLower(sender.LastSubject)
		for _, keyword := range meetingKeywords {
			if strings.Contains(subject, keyword) {
				meetings++
				break
			}
		}
	}

	digest := &DigestScript{
		Senders:         selected,
		Script:          buildScript(selected, meetings),
		SendersAnalyzed: len(bucket),
		ImportantFound:  len(selected),
		MeetingsFound:   meetings,
	}
	return digest, nil
}

// buildScript tiers the wording by sender count so spoken length stays
// roughly constant
func buildScript(selected []*senderdomain.Sender, meetings int) string {
	var b strings.Builder

	switch {
	case len(selected) == 0:
		b.WriteString("I checked your inbox, but no senders are categorized for calls yet. ")
		b.WriteString("Mark your important contacts as call-me and I'll have a briefing for you next time.")
		return b.String()
	case len(selected) == 1:
		sender := selected[0]
		b.WriteString(fmt.Sprintf("One priority today: %s wrote to you about \"%s\".", sender.Name(), sender.LastSubject))
	case len(selected) <= 3:
		names := make([]string, len(selected))
		for i, sender := range selected {
			names[i] = sender.Name()
		}
		last := names[len(names)-1]
		rest := strings.Join(names[:len(names)-1], ", ")
		b.WriteString(fmt.Sprintf("You have %d important contacts waiting: %s and %s.", len(selected), rest, last))
	default:
		b.WriteString(fmt.Sprintf("Your top priorities are %s and %s, +%d other important contacts.",
			selected[0].Name(), selected[1].Name(), len(selected)-2))
	}

	if meetings == 1 {
		b.WriteString(" One of them looks like a meeting.")
	} else if meetings > 1 {
		b.WriteString(fmt.Sprintf(" %d of them look like meetings.", meetings))
	}
	return b.String()
}
