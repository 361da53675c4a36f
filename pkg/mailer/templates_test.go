package mailer

import (
	"strings"
	"testing"
)

func TestRenderVerificationTemplate(t *testing.T) {
	html, err := Render(TemplateVerification, TemplateData{
		AppName:     "Daycare Directory Service",
		FirstName:   "jordan",
		Link:        "https://example.com/verify?token=abc",
		ExpiryHours: 24,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(html, "Jordan") {
		t.Error("Expected the first name to be title cased")
	}
	if !strings.Contains(html, "https://example.com/verify?token=abc") {
		t.Error("Expected the verification link in the body")
	}
	if !strings.Contains(html, "24 hours") {
		t.Error("Expected the expiry window in the body")
	}
}

func TestRenderPasswordResetPluralization(t *testing.T) {
	tests := []struct {
		name        string
		expiryHours int
		expect      string
	}{
		{name: "single hour", expiryHours: 1, expect: "1 hour."},
		{name: "multiple hours", expiryHours: 2, expect: "2 hours."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := Render(TemplatePasswordReset, TemplateData{
				AppName:     "Daycare Directory Service",
				FirstName:   "sam",
				Link:        "https://example.com/reset",
				ExpiryHours: tt.expiryHours,
			})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !strings.Contains(html, tt.expect) {
				t.Errorf("Expected %q in the body", tt.expect)
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("missing", TemplateData{}); err == nil {
		t.Error("Expected an error for an unknown template name")
	}
}
