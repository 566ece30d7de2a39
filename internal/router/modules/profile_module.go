package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/devconnector/internal/interface/http"
	"github.com/oksasatya/devconnector/internal/interface/middleware"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Limit   Limiter
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, limit Limiter) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Limit: limit}
}

func (m *ProfileModule) Name() string { return "profile" }

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	p := rg.Group("/profile")

	// Public
	p.GET("", m.Handler.List)
	p.GET("/user/:user_id", m.Handler.ByUser)
	p.GET("/search", m.Limit(60, time.Minute, middleware.KeyByIP()), m.Handler.Search)
	p.GET("/github/:username", m.Limit(30, time.Minute, middleware.KeyByIP()), m.Handler.GitHubRepos)

	// Protected
	auth := p.Group("")
	auth.Use(
		middleware.Auth(m.JWT),
		m.Limit(120, time.Minute, middleware.KeyByUserID()),
	)
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.Delete)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
