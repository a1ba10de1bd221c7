package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/forwardtrading/authsvc/internal/common"
)

func newTestIssuer(secret string) *Issuer {
	return NewIssuer([]byte(secret), 30*time.Minute, 24*time.Hour, time.Hour)
}

func TestIssueAndVerifySession_Success(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("super-secret")

	tok, err := i.IssueSession(42, "alice", false)
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	claims, err := i.VerifySession(tok)
	if err != nil {
		t.Fatalf("VerifySession error: %v", err)
	}
	if claims.UserID != 42 || claims.Login != "alice" || claims.EmailVerified {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestVerifySession_Expired(t *testing.T) {
	t.Parallel()

	i := NewIssuer([]byte("secret"), -1*time.Second, time.Hour, time.Hour)

	tok, err := i.IssueSession(1, "u1", true)
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	_, err = i.VerifySession(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerifySession_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestIssuer("right-secret").IssueSession(2, "u2", false)
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	_, err = newTestIssuer("wrong-secret").VerifySession(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongPurpose(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	reset, err := i.IssuePasswordReset("a@b.com")
	if err != nil {
		t.Fatalf("IssuePasswordReset error: %v", err)
	}
	verify, err := i.IssueEmailVerification("a@b.com")
	if err != nil {
		t.Fatalf("IssueEmailVerification error: %v", err)
	}

	if _, err := i.VerifyEmailVerification(reset); !errors.Is(err, common.ErrWrongPurpose) {
		t.Fatalf("reset token accepted for verification: %v", err)
	}
	if _, err := i.VerifyPasswordReset(verify); !errors.Is(err, common.ErrWrongPurpose) {
		t.Fatalf("verification token accepted for reset: %v", err)
	}
	if _, err := i.VerifySession(reset); !errors.Is(err, common.ErrWrongPurpose) {
		t.Fatalf("reset token accepted as session: %v", err)
	}
}

func TestVerifyEmailVerification_Success(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	tok, err := i.IssueEmailVerification("user@example.com")
	if err != nil {
		t.Fatalf("IssueEmailVerification error: %v", err)
	}

	email, err := i.VerifyEmailVerification(tok)
	if err != nil {
		t.Fatalf("VerifyEmailVerification error: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("email mismatch: got %q", email)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	if _, err := i.VerifySession("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}
