package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func mailgunAPI(t *testing.T, status int, reply string) *Mailgun {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewMailgun("mg.example.com", "key-test", "DevConnector <no-reply@example.com>").WithAPIBase(srv.URL + "/v3")
}

func TestMailgun_Send(t *testing.T) {
	m := mailgunAPI(t, http.StatusOK, `{"id":"<1@mg.example.com>","message":"Queued. Thank you."}`)
	require.NoError(t, m.Send(context.Background(), "ana@example.com", "hi", "body", "<p>body</p>"))
}

func TestMailgun_RejectedMessageIsPoison(t *testing.T) {
	m := mailgunAPI(t, http.StatusBadRequest, `{"message":"'to' parameter is not a valid address"}`)

	err := m.Send(context.Background(), "not-an-address", "hi", "body", "")
	require.ErrorIs(t, err, ErrPoisonMessage)
}

func TestMailgun_OutageIsRetryable(t *testing.T) {
	m := mailgunAPI(t, http.StatusServiceUnavailable, `{"message":"try later"}`)

	err := m.Send(context.Background(), "ana@example.com", "hi", "body", "")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPoisonMessage)
}
