package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/pkg/helpers"
)

const maxUpstreamBody = 1 << 20

// GitHubService proxies the public repository listing of a GitHub user.
type GitHubService struct {
	HTTP         *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	UserAgent    string
	Redis        *redis.Client // optional response cache
	CacheTTL     time.Duration
	Logger       *logrus.Logger
}

type GitHubOptions struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	CacheTTL     time.Duration
}

func NewGitHubService(client *http.Client, opts GitHubOptions, rdb *redis.Client, logger *logrus.Logger) *GitHubService {
	if client == nil {
		client = http.DefaultClient
	}
	return &GitHubService{
		HTTP:         client,
		BaseURL:      strings.TrimRight(opts.BaseURL, "/"),
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		UserAgent:    "node.js",
		Redis:        rdb,
		CacheTTL:     opts.CacheTTL,
		Logger:       logger,
	}
}

func repoCacheKey(username string) string {
	return "github:repos:" + strings.ToLower(username)
}

// FetchRepos returns the five oldest repositories of username as the raw
// upstream JSON. A transport failure is ErrUpstreamUnavailable and any
// non-200 answer is ErrUpstreamNotFound; neither path reads a body.
func (s *GitHubService) FetchRepos(ctx context.Context, username string) (json.RawMessage, error) {
	const op = "github.FetchRepos"

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUpstreamNotFound
	}

	if s.Redis != nil {
		var cached json.RawMessage
		key := repoCacheKey(username)
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached)
		switch {
		case err != nil:
			helpers.LogWarn(s.Logger, "github cache read failed", err, logrus.Fields{"username": username})
			// an undecodable entry would keep failing until it expires
			if derr := helpers.RedisDel(ctx, s.Redis, key); derr != nil {
				helpers.LogWarn(s.Logger, "github cache evict failed", derr, logrus.Fields{"username": username})
			}
		case ok:
			return cached, nil
		}
	}

	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if s.ClientID != "" {
		q.Set("client_id", s.ClientID)
	}
	if s.ClientSecret != "" {
		q.Set("client_secret", s.ClientSecret)
	}
	endpoint := s.BaseURL + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := s.HTTP.Do(req)
	if err != nil {
		helpers.LogWarn(s.Logger, "github request failed", err, logrus.Fields{"username": username})
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, ErrUpstreamNotFound
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: %w: invalid json body", op, ErrUpstreamUnavailable)
	}
	raw := json.RawMessage(body)

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, repoCacheKey(username), raw, s.CacheTTL); err != nil {
			helpers.LogWarn(s.Logger, "github cache write failed", err, logrus.Fields{"username": username})
		}
	}
	return raw, nil
}
