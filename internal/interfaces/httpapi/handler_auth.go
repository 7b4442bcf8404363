package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const maxAuthBodyBytes = 16 << 10

type signupRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=256"`
	Name     string `json:"name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=256"`
}

type signupResponse struct {
	Message string    `json:"message"`
	User    user.User `json:"user"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      user.Principal `json:"user"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Signup")
	defer span.End()

	var req signupRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.fail(ctx, w, "decode request body failed", err, "path", r.URL.Path)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	item, err := h.auth.Signup(ctx, usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.fail(ctx, w, "signup failed", err)
		return
	}

	writeNoStore(ctx, w, http.StatusCreated, signupResponse{
		Message: "User created successfully",
		User:    item,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.fail(ctx, w, "decode request body failed", err, "path", r.URL.Path)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.auth.Login(ctx, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(ctx, w, "login failed", err)
		return
	}

	writeNoStore(ctx, w, http.StatusOK, loginResponse{
		Token:     out.Token,
		TokenType: out.TokenType,
		ExpiresAt: out.ExpiresAt,
		User:      out.User,
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		h.fail(ctx, w, "resolve current user failed", fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	current, err := h.auth.CurrentUser(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "resolve current user failed", err, "user_id", principal.UserID)
		return
	}

	writeNoStore(ctx, w, http.StatusOK, current)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
