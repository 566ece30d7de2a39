package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/application"
	"github.com/oksasatya/devconnector/pkg/response"
	"github.com/oksasatya/devconnector/pkg/validation"
)

type IdentityHandler struct {
	Svc    *application.IdentityService
	Logger *logrus.Logger
}

func NewIdentityHandler(svc *application.IdentityService, logger *logrus.Logger) *IdentityHandler {
	return &IdentityHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank" msg:"Type a valid name"`
	Email    string `json:"email" binding:"required,email" msg:"Type a valid email"`
	Password string `json:"password" binding:"required,pwd" msg:"Password must be at least 6 chars"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" binding:"required" msg:"Password is required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/users.
func (h *IdentityHandler) Register(c *gin.Context) {
	var req registerRequest
	if items := validation.BindJSON(c, &req); items != nil {
		response.Errors(c, items...)
		return
	}

	token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgIdentityNotFound)
		return
	}
	response.JSON(c, http.StatusOK, tokenResponse{Token: token})
}

// Login handles POST /api/auth.
func (h *IdentityHandler) Login(c *gin.Context) {
	var req loginRequest
	if items := validation.BindJSON(c, &req); items != nil {
		response.Errors(c, items...)
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err, msgIdentityNotFound)
		return
	}
	response.JSON(c, http.StatusOK, tokenResponse{Token: token})
}

// Me handles GET /api/auth.
func (h *IdentityHandler) Me(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgIdentityNotFound)
		return
	}
	id, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err, msgIdentityNotFound)
		return
	}
	response.JSON(c, http.StatusOK, id)
}
