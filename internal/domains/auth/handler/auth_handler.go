package handler

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/auth/model"
	"shop-backend/internal/domains/auth/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

type AuthHandler struct {
	service service.ServiceInterface
}

func NewAuthHandler(svc service.ServiceInterface) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !response.BindJSON(c, &req) {
		return
	}
	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, token)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !response.BindJSON(c, &req) {
		return
	}
	token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, token)
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	user, err := h.service.Session(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
