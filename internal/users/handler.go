package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/shared/auth"
	"resume-matcher-backend/internal/shared/server/respond"
	"resume-matcher-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc    *Service
	Tokens *auth.Tokens
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, tokens *auth.Tokens) *Handler {
	return &Handler{Svc: svc, Tokens: tokens}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "username or email already taken", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	token, err := h.Tokens.Sign(user.ID, user.Username)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	respond.JSON(c, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid username or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		}
		return
	}

	token, err := h.Tokens.Sign(user.ID, user.Username)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	respond.OK(c, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}
