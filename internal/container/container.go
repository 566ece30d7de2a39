package container

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/config"
	"github.com/oksasatya/devconnector/internal/application"
	repo "github.com/oksasatya/devconnector/internal/domain/repository"
	"github.com/oksasatya/devconnector/internal/infrastructure/search"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router builds its module deps from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	githubHTTP  *http.Client

	identities repo.IdentityRepository
	profiles   repo.ProfileRepository
	accounts   repo.AccountRepository

	jwtManager *helpers.JWTManager

	rabbitPub    *helpers.RabbitPublisher
	profileIndex *search.ProfileIndex
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGitHubHTTP(c *http.Client) { githubHTTP = c }
func GetGitHubHTTP() *http.Client  { return githubHTTP }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// SetStore installs the repositories of the selected store driver.
func SetStore(i repo.IdentityRepository, p repo.ProfileRepository, a repo.AccountRepository) {
	identities, profiles, accounts = i, p, a
}

func GetIdentityRepo() repo.IdentityRepository { return identities }
func GetProfileRepo() repo.ProfileRepository   { return profiles }
func GetAccountRepo() repo.AccountRepository   { return accounts }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }

// GetJobs returns nil (not a typed nil) when no broker is configured.
func GetJobs() application.JobPublisher {
	if rabbitPub == nil {
		return nil
	}
	return rabbitPub
}

func SetES(c *elasticsearch.Client, index string) {
	profileIndex = nil
	if c != nil {
		profileIndex = search.NewProfileIndex(c, index)
	}
}

// GetProfileIndex returns nil (not a typed nil) when search is disabled.
func GetProfileIndex() application.ProfileIndexer {
	if profileIndex == nil {
		return nil
	}
	return profileIndex
}
