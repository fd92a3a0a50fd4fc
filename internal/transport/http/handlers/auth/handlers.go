package authhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/auth"
	"paydesk/internal/requestctx"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Service interface {
	Register(ctx context.Context, in auth.Registration) (auth.User, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout(ctx context.Context, session requestctx.Session) error
}

type Handler struct {
	Service     Service
	AllowSignup bool
}

func NewHandler(service Service, allowSignup bool) *Handler {
	return &Handler{Service: service, AllowSignup: allowSignup}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRoutes mounts the auth endpoints. Logout needs a session; the
// others are public.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.With(middleware.RequireSession).Post("/logout", h.HandleLogout)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self registration is disabled", reqID)
		return
	}
	var payload auth.Registration
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("name", payload.Name, "name is required")
	validator.Required("email", payload.Email, "email is required")
	validator.Required("password", payload.Password, "password is required")
	if validator.Reject(w, reqID) {
		return
	}

	user, err := h.Service.Register(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err, "register_failed")
		return
	}
	slog.Info("user registered", "userId", user.ID, "requestId", reqID)
	api.Created(w, user, reqID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	session, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.fail(w, r, err, "login_failed")
		return
	}
	api.Success(w, session, reqID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if err := h.Service.Logout(r.Context(), session); err != nil {
		h.fail(w, r, err, "logout_failed")
		return
	}
	api.Success(w, map[string]string{"status": "logged_out"}, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
	case errors.Is(err, auth.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", err.Error(), reqID)
	case errors.Is(err, auth.ErrInvalidName):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "name", Reason: err.Error()}})
	case errors.Is(err, auth.ErrInvalidEmail):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "email", Reason: err.Error()}})
	case errors.Is(err, auth.ErrWeakPassword):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "password", Reason: err.Error()}})
	default:
		slog.Error("auth request failed", "code", fallbackCode, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal server error", reqID)
	}
}
