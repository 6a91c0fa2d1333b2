package phone

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"us number", "+15551234567", false},
		{"uk number", "+447911123456", false},
		{"vn number", "+84912345678", false},
		{"max length", "+123456789012345", false},
		{"min length", "+12345678", false},
		{"missing plus", "15551234567", true},
		{"double zero prefix", "0015551234567", true},
		{"leading zero country code", "+05551234567", true},
		{"spaces", "+1 555 123 4567", true},
		{"hyphens", "+1-555-123-4567", true},
		{"parentheses", "+1(555)1234567", true},
		{"too short", "+1234567", true},
		{"too long", "+1234567890123456", true},
		{"letters", "+1555CALLME", true},
		{"whatsapp prefix not accepted raw", "whatsapp:+15551234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestWhatsAppAddress(t *testing.T) {
	if got := WhatsAppAddress("+15551234567"); got != "whatsapp:+15551234567" {
		t.Errorf("WhatsAppAddress() = %q", got)
	}
	if got := WhatsAppAddress("whatsapp:+15551234567"); got != "whatsapp:+15551234567" {
		t.Errorf("WhatsAppAddress() should not double-prefix, got %q", got)
	}
}
