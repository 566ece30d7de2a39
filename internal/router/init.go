package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/application"
	"github.com/oksasatya/devconnector/internal/container"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
	handlers "github.com/oksasatya/devconnector/internal/interface/http"
	"github.com/oksasatya/devconnector/internal/router/modules"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

// Deps is everything the HTTP modules need. Jobs and Index may be nil.
type Deps struct {
	Identities repo.IdentityRepository
	Profiles   repo.ProfileRepository
	Accounts   repo.AccountRepository
	JWT        *helpers.JWTManager
	Jobs       application.JobPublisher
	Index      application.ProfileIndexer
	GitHub     *application.GitHubService
	Redis      *redis.Client
	Logger     *logrus.Logger

	RateLimitEnabled    bool
	DebugMetricsEnabled bool
}

// BuildDeps assembles Deps from the container singletons set up in main.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	gh := application.NewGitHubService(
		container.GetGitHubHTTP(),
		application.GitHubOptions{
			BaseURL:      cfg.GitHubAPIURL,
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			CacheTTL:     cfg.GitHubCacheTTL,
		},
		container.GetRedis(),
		container.GetLogger(),
	)

	return Deps{
		Identities:          container.GetIdentityRepo(),
		Profiles:            container.GetProfileRepo(),
		Accounts:            container.GetAccountRepo(),
		JWT:                 container.GetJWT(),
		Jobs:                container.GetJobs(),
		Index:               container.GetProfileIndex(),
		GitHub:              gh,
		Redis:               container.GetRedis(),
		Logger:              container.GetLogger(),
		RateLimitEnabled:    cfg.RateLimitEnabled,
		DebugMetricsEnabled: cfg.DebugMetricsEnabled,
	}
}

// InitModules wires services, handlers and modules into the registry.
// Call it once during startup, before RegisterAll.
func InitModules(r *Registry, d Deps) {
	identitySvc := application.NewIdentityService(d.Identities, d.JWT, d.Jobs, d.Logger)
	profileSvc := application.NewProfileService(d.Profiles, d.Accounts, d.Index, d.Logger)

	limiter := modules.NewLimiter(d.Redis, d.RateLimitEnabled)

	r.Engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API running")
	})

	r.Add(modules.NewIdentityModule(handlers.NewIdentityHandler(identitySvc, d.Logger), d.JWT, limiter))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, d.GitHub, d.Logger), d.JWT, limiter))
	if d.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}
