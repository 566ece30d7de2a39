package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devconnector/internal/interface/middleware"
)

type DebugModule struct {
	Limit Limiter
}

func NewDebugModule(limit Limiter) *DebugModule { return &DebugModule{Limit: limit} }

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP; in-cluster scrapers are exempt
	rl := m.Limit(120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
