package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/finbook/bookkeeper/internal/auth"
	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/internal/services"
	xhttp "github.com/finbook/bookkeeper/pkg/http"
)

type AuthService interface {
	Register(ctx context.Context, p model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/token", h.Token)
	e.POST("/auth/token/refresh", h.RefreshToken)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	var req registerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	user, err := h.svc.Register(ctx, model.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 201, user)
}

func (h *AuthHandler) Token(ctx *xhttp.RequestCtx) {
	var req tokenRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	pair, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, 401, "No active account found with the given credentials.")
			return
		}
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, pair)
}

func (h *AuthHandler) RefreshToken(ctx *xhttp.RequestCtx) {
	var req refreshRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	pair, err := h.svc.Refresh(req.Refresh)
	if err != nil {
		writeError(ctx, 401, "Token is invalid or expired.")
		return
	}
	writeJSON(ctx, 200, pair)
}
