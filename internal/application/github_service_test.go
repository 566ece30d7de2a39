package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector/pkg/helpers"
)

func TestFetchRepos_PassesBodyThrough(t *testing.T) {
	var gotQuery, gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"dotfiles","stargazers_count":3}]`))
	}))
	defer srv.Close()

	svc := NewGitHubService(srv.Client(), GitHubOptions{BaseURL: srv.URL + "/", ClientID: "cid", ClientSecret: "csecret"}, nil, helpers.NewDiscardLogger())

	body, err := svc.FetchRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"dotfiles","stargazers_count":3}]`, string(body))

	require.Equal(t, "/users/octocat/repos", gotPath)
	require.Contains(t, gotQuery, "per_page=5")
	require.Contains(t, gotQuery, "sort=created%3Aasc")
	require.Contains(t, gotQuery, "client_id=cid")
	require.Contains(t, gotQuery, "client_secret=csecret")
	require.NotEmpty(t, gotUA)
}

func TestFetchRepos_NonOKIsUpstreamNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	svc := NewGitHubService(srv.Client(), GitHubOptions{BaseURL: srv.URL}, nil, nil)

	_, err := svc.FetchRepos(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUpstreamNotFound)
}

func TestFetchRepos_TransportErrorShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	svc := NewGitHubService(&http.Client{Timeout: time.Second}, GitHubOptions{BaseURL: base}, nil, nil)

	body, err := svc.FetchRepos(context.Background(), "octocat")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	require.Nil(t, body)
}

func TestFetchRepos_EmptyUsername(t *testing.T) {
	svc := NewGitHubService(nil, GitHubOptions{BaseURL: "http://127.0.0.1:1"}, nil, nil)

	_, err := svc.FetchRepos(context.Background(), " ")
	require.ErrorIs(t, err, ErrUpstreamNotFound)
}
