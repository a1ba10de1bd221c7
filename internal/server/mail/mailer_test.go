package mail

import (
	"strings"
	"testing"
)

func TestRenderVerification_EmbedsLinkAndLogin(t *testing.T) {
	t.Parallel()

	body, err := renderVerification("alice", "https://ft.example/v1/auth/verify-email?token=abc")
	if err != nil {
		t.Fatalf("renderVerification error: %v", err)
	}
	if !strings.Contains(body, "Welcome, alice!") {
		t.Fatalf("expected login greeting in body")
	}
	if strings.Count(body, "https://ft.example/v1/auth/verify-email?token=abc") != 2 {
		t.Fatalf("expected link twice (button and fallback), body:\n%s", body)
	}
}

func TestRenderVerification_NoLoginFallback(t *testing.T) {
	t.Parallel()

	body, err := renderVerification("", "https://ft.example/x")
	if err != nil {
		t.Fatalf("renderVerification error: %v", err)
	}
	if !strings.Contains(body, "Welcome!") {
		t.Fatalf("expected generic greeting in body")
	}
}

func TestRenderPasswordReset_EmbedsLink(t *testing.T) {
	t.Parallel()

	body, err := renderPasswordReset("https://ft.example/v1/auth/password-reset/confirm?token=xyz")
	if err != nil {
		t.Fatalf("renderPasswordReset error: %v", err)
	}
	if !strings.Contains(body, "password-reset/confirm?token=xyz") {
		t.Fatalf("expected reset link in body")
	}
}
