// Package auth implements the credential and token primitives of the
// service: bcrypt password hashing and purpose-tagged, expiring JWTs
// (HS256). Tokens are the only authorization evidence; there is no
// server-side session store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/forwardtrading/authsvc/internal/common"
)

// Purpose restricts which operation may consume a token.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Claims is the signed JWT payload. Purpose is always present; the other
// custom fields depend on it: session tokens carry UserID/Login/EmailVerified,
// verification and reset tokens carry only Email.
type Claims struct {
	jwt.RegisteredClaims
	Purpose       Purpose `json:"purpose"`
	UserID        int64   `json:"user_id,omitempty"`
	Login         string  `json:"login,omitempty"`
	EmailVerified bool    `json:"email_verified,omitempty"`
	Email         string  `json:"email,omitempty"`
}

// SessionClaims is the decoded payload of a session token. EmailVerified is
// a snapshot taken at login time, for display only.
type SessionClaims struct {
	UserID        int64
	Login         string
	EmailVerified bool
}

// Issuer mints and verifies tokens. The secret and the per-purpose
// lifetimes are immutable once constructed.
type Issuer struct {
	secret     []byte
	sessionTTL time.Duration
	verifyTTL  time.Duration
	resetTTL   time.Duration
}

func NewIssuer(secret []byte, sessionTTL, verifyTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     secret,
		sessionTTL: sessionTTL,
		verifyTTL:  verifyTTL,
		resetTTL:   resetTTL,
	}
}

// SessionTTL reports the configured session token lifetime, used by the
// HTTP layer for the cookie max-age.
func (i *Issuer) SessionTTL() time.Duration {
	return i.sessionTTL
}

// IssueSession mints a session token embedding enough user data to avoid a
// directory read on every authenticated request. Changes to the account
// during a live session are not reflected until re-login.
func (i *Issuer) IssueSession(userID int64, login string, emailVerified bool) (string, error) {
	return i.issue(Claims{
		Purpose:       PurposeSession,
		UserID:        userID,
		Login:         login,
		EmailVerified: emailVerified,
	}, i.sessionTTL)
}

// IssueEmailVerification mints a token authorizing verification of the given
// address. The action is keyed by identity, so only the email is embedded.
func (i *Issuer) IssueEmailVerification(email string) (string, error) {
	return i.issue(Claims{Purpose: PurposeEmailVerification, Email: email}, i.verifyTTL)
}

// IssuePasswordReset mints a token authorizing a password reset for the
// given address.
func (i *Issuer) IssuePasswordReset(email string) (string, error) {
	return i.issue(Claims{Purpose: PurposePasswordReset, Email: email}, i.resetTTL)
}

func (i *Issuer) issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// VerifySession checks signature, expiry and purpose of a session token.
func (i *Issuer) VerifySession(tokenString string) (*SessionClaims, error) {
	claims, err := i.parse(tokenString, PurposeSession)
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Login == "" {
		return nil, common.ErrInvalidToken
	}
	return &SessionClaims{
		UserID:        claims.UserID,
		Login:         claims.Login,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// VerifyEmailVerification returns the email authorized by an
// email-verification token.
func (i *Issuer) VerifyEmailVerification(tokenString string) (string, error) {
	return i.verifyEmail(tokenString, PurposeEmailVerification)
}

// VerifyPasswordReset returns the email authorized by a password-reset token.
func (i *Issuer) VerifyPasswordReset(tokenString string) (string, error) {
	return i.verifyEmail(tokenString, PurposePasswordReset)
}

func (i *Issuer) verifyEmail(tokenString string, purpose Purpose) (string, error) {
	claims, err := i.parse(tokenString, purpose)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Email, nil
}

// parse validates the signature and expiry, then the purpose. Expiry,
// signature and purpose failures are reported as distinct sentinels so the
// service layer can collapse them into one user-facing message per purpose.
func (i *Issuer) parse(tokenString string, expected Purpose) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	switch claims.Purpose {
	case PurposeSession, PurposeEmailVerification, PurposePasswordReset:
	default:
		return nil, common.ErrInvalidToken
	}
	if claims.Purpose != expected {
		return nil, common.ErrWrongPurpose
	}

	return claims, nil
}
