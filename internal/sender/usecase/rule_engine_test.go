package usecase

import (
	"testing"
	"time"

	senderdomain "callbox-backend/internal/sender/domain"
)

func rule(domain string, category senderdomain.Category, createdAt time.Time) *senderdomain.CategoryRule {
	return &senderdomain.CategoryRule{
		ID:        domain + "-" + string(category),
		UserID:    "u1",
		Domain:    domain,
		Category:  category,
		CreatedAt: createdAt,
	}
}

func TestResolveCategory(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		sender *senderdomain.Sender
		rules  []*senderdomain.CategoryRule
		want   senderdomain.Category
	}{
		{
			name:   "rule overrides stored category",
			sender: &senderdomain.Sender{Domain: "acme.com", Category: senderdomain.CategoryNewsletter},
			rules:  []*senderdomain.CategoryRule{rule("acme.com", senderdomain.CategoryCallMe, now)},
			want:   senderdomain.CategoryCallMe,
		},
		{
			name:   "no rule falls back to stored category",
			sender: &senderdomain.Sender{Domain: "acme.com", Category: senderdomain.CategoryRemindMe},
			rules:  []*senderdomain.CategoryRule{rule("other.com", senderdomain.CategoryCallMe, now)},
			want:   senderdomain.CategoryRemindMe,
		},
		{
			name:   "no rule and no stored category defaults to unassigned",
			sender: &senderdomain.Sender{Domain: "acme.com"},
			rules:  nil,
			want:   senderdomain.CategoryUnassigned,
		},
		{
			name:   "invalid stored category defaults to unassigned",
			sender: &senderdomain.Sender{Domain: "acme.com", Category: "vip"},
			rules:  nil,
			want:   senderdomain.CategoryUnassigned,
		},
		{
			name:   "duplicate rules pick most recently created",
			sender: &senderdomain.Sender{Domain: "acme.com", Category: senderdomain.CategoryKeepQuiet},
			rules: []*senderdomain.CategoryRule{
				rule("acme.com", senderdomain.CategoryNewsletter, now.Add(-time.Hour)),
				rule("acme.com", senderdomain.CategoryCallMe, now),
				rule("acme.com", senderdomain.CategoryRemindMe, now.Add(-2*time.Hour)),
			},
			want: senderdomain.CategoryCallMe,
		},
		{
			name:   "duplicate rules order independent",
			sender: &senderdomain.Sender{Domain: "acme.com"},
			rules: []*senderdomain.CategoryRule{
				rule("acme.com", senderdomain.CategoryCallMe, now),
				rule("acme.com", senderdomain.CategoryNewsletter, now.Add(-time.Hour)),
			},
			want: senderdomain.CategoryCallMe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCategory(tt.sender, tt.rules); got != tt.want {
				t.Errorf("ResolveCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}
