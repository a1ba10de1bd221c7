// Package httpapi exposes the auth operations over HTTP under /v1/auth.
// Handlers validate input at the boundary, delegate to the service layer,
// and map sentinel errors to stable status codes without leaking internals.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/forwardtrading/authsvc/internal/common"
	"github.com/forwardtrading/authsvc/internal/logging"
	"github.com/forwardtrading/authsvc/internal/server/models"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "ft_access_token"

// AuthService is the subset of the service layer the handlers need.
type AuthService interface {
	Register(ctx context.Context, login, rawEmail, rawPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, login, rawPassword string) (string, error)
	RequestPasswordReset(ctx context.Context, rawEmail string) error
	ConfirmPasswordReset(ctx context.Context, token, newRawPassword string) error
	CheckSession(ctx context.Context, token string) (*models.User, error)
}

type Handler struct {
	service    AuthService
	validate   *validator.Validate
	logger     logging.Logger
	sessionTTL time.Duration
}

func NewHandler(service AuthService, logger logging.Logger, sessionTTL time.Duration) *Handler {
	return &Handler{
		service:    service,
		validate:   validator.New(),
		logger:     logger.With("module", "http_handler"),
		sessionTTL: sessionTTL,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Login    string `json:"login" validate:"required,min=3,max=200"`
		Email    string `json:"email" validate:"required,email,max=100"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.service.Register(r.Context(), body.Login, body.Email, body.Password)
	if err != nil {
		recordAuthAttempt("register", false)
		switch {
		case errors.Is(err, common.ErrorEmailTaken):
			writeErr(w, http.StatusConflict, "email already taken")
		case errors.Is(err, common.ErrorLoginTaken):
			writeErr(w, http.StatusConflict, "login already taken")
		default:
			h.internalError(w, r, "register failed", err)
		}
		return
	}

	recordAuthAttempt("register", true)
	writeAck(w, "confirmation email sent")
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		if isTokenError(err) {
			// One message for expired, forged, and mismatched tokens, so a
			// caller cannot probe which check failed.
			writeErr(w, http.StatusBadRequest, "verification link is invalid or expired")
			return
		}
		h.internalError(w, r, "verify email failed", err)
		return
	}

	writeAck(w, "email verified")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Login    string `json:"login" validate:"required,max=200"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.Login(r.Context(), body.Login, body.Password)
	if err != nil {
		recordAuthAttempt("login", false)
		switch {
		case errors.Is(err, common.ErrorInvalidCredentials):
			writeErr(w, http.StatusUnauthorized, "invalid login or password")
		case errors.Is(err, common.ErrorEmailNotVerified):
			writeErr(w, http.StatusForbidden, "email not verified")
		default:
			h.internalError(w, r, "login failed", err)
		}
		return
	}

	recordAuthAttempt("login", true)
	http.SetCookie(w, h.sessionCookie(token, h.sessionTTL))
	writeAck(w, "logged in")
}

func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "token is missing")
		return
	}

	user, err := h.service.CheckSession(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case isTokenError(err):
			writeErr(w, http.StatusUnauthorized, "session is invalid or expired")
		case errors.Is(err, common.ErrorNotFound):
			writeErr(w, http.StatusNotFound, "user not found")
		default:
			h.internalError(w, r, "check auth failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":             user.ID,
			"login":          user.Login,
			"email":          user.Email,
			"email_verified": user.EmailVerified,
		},
	})
}

// Logout is stateless: it clears the cookie client-side, but the token
// itself stays valid until its natural expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -time.Second))
	writeAck(w, "logged out")
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), body.Email); err != nil {
		h.internalError(w, r, "password reset request failed", err)
		return
	}

	// Same acknowledgment whether or not the account exists.
	writeAck(w, "if the account exists, a reset link has been sent")
}

func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ConfirmPasswordReset(r.Context(), body.Token, body.NewPassword); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeErr(w, http.StatusBadRequest, "password is too short")
		case isTokenError(err):
			writeErr(w, http.StatusBadRequest, "reset link is invalid or expired")
		case errors.Is(err, common.ErrorNotFound):
			writeErr(w, http.StatusNotFound, "user not found")
		default:
			h.internalError(w, r, "password reset confirm failed", err)
		}
		return
	}

	writeAck(w, "password updated")
}

func (h *Handler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(r.Context(), msg, "error", err)
	writeErr(w, http.StatusInternalServerError, "internal error")
}

func isTokenError(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrWrongPurpose)
}
