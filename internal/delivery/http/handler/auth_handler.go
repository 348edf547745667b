package handler

import (
	"net/http"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/registration/.
func (h *AuthHandler) Register(c *gin.Context) {
	var input entity.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resp, err := h.authService.Register(&input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/login/. The username field also accepts an
// email address.
func (h *AuthHandler) Login(c *gin.Context) {
	var input entity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	resp, err := h.authService.Login(&input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/logout/ by deleting the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.authService.Logout(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondDetail(c, http.StatusOK, "Logged out.")
}
