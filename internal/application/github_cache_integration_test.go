package application

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/devconnector/pkg/helpers"
)

// Run with: GO_TEST_INTEGRATION=1 go test ./internal/application -run Cache -v -count=1
func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestFetchRepos_CacheEvictsCorruptEntry(t *testing.T) {
	rdb := helpers.NewRedisClient(startRedis(t), "", 0)
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`[{"name":"dotfiles"}]`))
	}))
	defer srv.Close()

	svc := NewGitHubService(srv.Client(), GitHubOptions{BaseURL: srv.URL, CacheTTL: time.Minute}, rdb, helpers.NewDiscardLogger())

	require.NoError(t, rdb.Set(ctx, repoCacheKey("octocat"), "{not json", time.Minute).Err())

	body, err := svc.FetchRepos(ctx, "octocat")
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"dotfiles"}]`, string(body))
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// the bad entry was replaced, so the next read is served from cache
	body, err = svc.FetchRepos(ctx, "OctoCat")
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"dotfiles"}]`, string(body))
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
