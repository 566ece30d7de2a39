package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector/internal/domain/entity"
)

type call struct {
	method, path, body string
}

// fakeES answers like an Elasticsearch node, including the product header
// the client checks before trusting a response.
func fakeES(t *testing.T, status int, reply string) (*elasticsearch.Client, *[]call) {
	t.Helper()
	var mu sync.Mutex
	calls := &[]call{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		*calls = append(*calls, call{r.Method, r.URL.Path, string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, calls
}

func TestProfileIndex_Index(t *testing.T) {
	es, calls := fakeES(t, http.StatusCreated, `{"result":"created"}`)
	x := NewProfileIndex(es, "profiles")

	p := &entity.Profile{OwnerID: "u1", Status: "Developer", Skills: []string{"go"}, Owner: &entity.Owner{Name: "Ana"}}
	require.NoError(t, x.Index(context.Background(), p))

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	require.Equal(t, http.MethodPut, c.method)
	require.Equal(t, "/profiles/_doc/u1", c.path)

	var doc entity.ProfileSummary
	require.NoError(t, json.Unmarshal([]byte(c.body), &doc))
	require.Equal(t, "Ana", doc.Name)
	require.Equal(t, []string{"go"}, doc.Skills)
}

func TestProfileIndex_DeleteMissingIsOK(t *testing.T) {
	es, _ := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	x := NewProfileIndex(es, "profiles")

	require.NoError(t, x.Delete(context.Background(), "u1"))
}

func TestProfileIndex_Search(t *testing.T) {
	es, calls := fakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"u1","_source":{"user_id":"u1","status":"Developer","skills":["go"]}}]}}`)
	x := NewProfileIndex(es, "profiles")

	hits, err := x.Search(context.Background(), "go", 5)
	require.NoError(t, err)
	require.Equal(t, []entity.ProfileSummary{{OwnerID: "u1", Status: "Developer", Skills: []string{"go"}}}, hits)

	c := (*calls)[0]
	require.True(t, strings.HasSuffix(c.path, "/_search"))
	require.Contains(t, c.body, `"multi_match"`)
	require.Contains(t, c.body, `"size":5`)
}

func TestProfileIndex_SearchMissingIndex(t *testing.T) {
	es, _ := fakeES(t, http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`)
	x := NewProfileIndex(es, "profiles")

	hits, err := x.Search(context.Background(), "go", 5)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestProfileIndex_SearchError(t *testing.T) {
	es, _ := fakeES(t, http.StatusBadRequest, `{"error":{"type":"parse_exception"}}`)
	x := NewProfileIndex(es, "profiles")

	_, err := x.Search(context.Background(), "go", 5)
	require.Error(t, err)
}
