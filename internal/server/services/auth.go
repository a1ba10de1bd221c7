// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates registration, email verification, login,
// session checks, and password resets over the user directory, the token
// issuer, and the mail dispatcher.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forwardtrading/authsvc/internal/common"
	"github.com/forwardtrading/authsvc/internal/dbx"
	"github.com/forwardtrading/authsvc/internal/logging"
	"github.com/forwardtrading/authsvc/internal/server/auth"
	"github.com/forwardtrading/authsvc/internal/server/config"
	"github.com/forwardtrading/authsvc/internal/server/mail"
	"github.com/forwardtrading/authsvc/internal/server/models"
	"github.com/forwardtrading/authsvc/internal/server/repositories/repomanager"
)

// MinPasswordLength applies to new passwords on registration and reset.
const MinPasswordLength = 8

// AuthService provides the account lifecycle operations:
// - Register: create users and send a verification mail
// - VerifyEmail: redeem a verification token
// - Login: verify credentials and mint a session token
// - RequestPasswordReset / ConfirmPasswordReset
// - CheckSession: validate a session token against the directory
type AuthService struct {
	db                   *sql.DB
	repomanager          repomanager.RepositoryManager
	issuer               *auth.Issuer
	dispatcher           mail.Dispatcher
	logger               logging.Logger
	loginFailureDelay    time.Duration
	requireVerifiedEmail bool
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, dispatcher mail.Dispatcher, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                   db,
		repomanager:          m,
		issuer:               issuer,
		dispatcher:           dispatcher,
		logger:               logger.With("module", "auth_service"),
		loginFailureDelay:    cfg.LoginFailureDelay,
		requireVerifiedEmail: cfg.RequireVerifiedEmail,
	}
}

// Register creates a new unverified user and queues the verification mail.
// The email is normalized (trimmed, lower-cased) before any comparison or
// storage. Conflicts are checked email first, login second, so when both
// collide the email conflict is the one reported. The existence pre-checks
// are only a fast path: the storage unique constraints remain the
// authoritative guard against concurrent registrations.
func (s *AuthService) Register(ctx context.Context, login, rawEmail, rawPassword string) error {
	email := normalizeEmail(rawEmail)
	repo := s.repomanager.Users(s.db)

	emailTaken, err := repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if emailTaken {
		return common.ErrorEmailTaken
	}

	loginTaken, err := repo.LoginExists(ctx, login)
	if err != nil {
		return fmt.Errorf("error checking login: %w", err)
	}
	if loginTaken {
		return common.ErrorLoginTaken
	}

	hash, err := auth.HashPassword(rawPassword)
	if err != nil {
		return common.ErrorInternal
	}

	user := &models.User{Login: login, Email: email, HashedPassword: hash, EmailVerified: false}
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Lost the race to a concurrent registration; the constraint
			// name in the error tells which field collided.
			if strings.Contains(err.Error(), "email") {
				return common.ErrorEmailTaken
			}
			return common.ErrorLoginTaken
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issuer.IssueEmailVerification(email)
	if err != nil {
		// The account exists; a failed token mint only costs the mail.
		s.logger.Error(ctx, "verification token mint failed", "email", email, "error", err)
		return nil
	}
	s.dispatcher.EnqueueVerification(email, login, token)

	return nil
}

// VerifyEmail redeems an email-verification token. Redeeming a valid token
// for an already-verified account is harmless, and the token stays
// replayable until its own expiry (there is no revocation).
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	email, err := s.issuer.VerifyEmailVerification(token)
	if err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	matched, err := repo.SetEmailVerified(ctx, email)
	if err != nil {
		return fmt.Errorf("error updating verification flag: %w", err)
	}
	if !matched {
		// The account behind a still-valid token is gone; nothing to do.
		s.logger.Warn(ctx, "verification token for unknown email", "email", email)
	}

	return nil
}

// Login verifies credentials and mints a session token. Unknown login and
// wrong password return the same error after the same deliberate delay, so
// response timing does not reveal whether the login exists.
func (s *AuthService) Login(ctx context.Context, login, rawPassword string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByLoginWithHash(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.failureDelay(ctx)
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.VerifyPassword(rawPassword, user.HashedPassword) {
		s.failureDelay(ctx)
		return "", common.ErrorInvalidCredentials
	}

	if s.requireVerifiedEmail && !user.EmailVerified {
		return "", common.ErrorEmailNotVerified
	}

	token, err := s.issuer.IssueSession(user.ID, user.Login, user.EmailVerified)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// RequestPasswordReset mints and mails a reset token if the email belongs
// to an account. The caller always gets the same acknowledgment, so the
// response does not reveal whether the account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, rawEmail string) error {
	email := normalizeEmail(rawEmail)
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "password reset requested for unknown email", "email", email)
			return nil
		}
		return common.ErrorInternal
	}

	token, err := s.issuer.IssuePasswordReset(user.Email)
	if err != nil {
		return common.ErrorInternal
	}
	s.dispatcher.EnqueuePasswordReset(user.Email, token)

	return nil
}

// ConfirmPasswordReset redeems a reset token and overwrites the stored
// password hash. Lookup and update run in one transaction.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newRawPassword string) error {
	if len(newRawPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password shorter than %d characters", common.ErrorValidation, MinPasswordLength)
	}

	email, err := s.issuer.VerifyPasswordReset(token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newRawPassword)
	if err != nil {
		return common.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return repo.UpdatePassword(ctx, user.ID, hash)
	})
}

// CheckSession validates a session token and re-resolves the user from the
// directory. The embedded claims are only trusted for display; the fresh
// read is what fails when the account has vanished.
func (s *AuthService) CheckSession(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.VerifySession(token)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return user, nil
}


// failureDelay pauses for the configured interval, identically on the
// unknown-login and wrong-password branches.
func (s *AuthService) failureDelay(ctx context.Context) {
	if s.loginFailureDelay <= 0 {
		return
	}
	t := time.NewTimer(s.loginFailureDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
