package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/devconnector/internal/interface/http"
	"github.com/oksasatya/devconnector/internal/interface/middleware"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

// IdentityModule wires registration and login.
// Public: POST /api/users, POST /api/auth
// Protected: GET /api/auth
type IdentityModule struct {
	Handler *handlers.IdentityHandler
	JWT     *helpers.JWTManager
	Limit   Limiter
}

func NewIdentityModule(h *handlers.IdentityHandler, jwt *helpers.JWTManager, limit Limiter) *IdentityModule {
	return &IdentityModule{Handler: h, JWT: jwt, Limit: limit}
}

func (m *IdentityModule) Name() string { return "identity" }

func (m *IdentityModule) Register(rg *gin.RouterGroup) {
	registerLimiter := m.Limit(10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := m.Limit(10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/auth", loginLimiter, m.Handler.Login)
	rg.GET("/auth", middleware.Auth(m.JWT), m.Handler.Me)
}
