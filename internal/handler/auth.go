package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/auth"
)

// AuthHandler issues session tokens. In production identities come from the
// hosted auth provider; this endpoint backs local development and tests.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest is the HTTP request body for issuing a token.
type TokenRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// TokenResponse is the HTTP response carrying a signed token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST /v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	token, err := h.authService.IssueToken(req.UserID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TokenResponse{Token: token})
}
