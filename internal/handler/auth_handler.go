package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/internal/service"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/response"
)

// AuthHandler exposes the admin token endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Token godoc
// @Summary Issue an admin access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Admin credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid credentials payload"))
		return
	}
	token, err := h.auth.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token, nil)
}
