package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/auth"
	"github.com/quangdm/finvi/internal/models"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input models.UserRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, "account created", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.UserLogin
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "logged in", response)
}
