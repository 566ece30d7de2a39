package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the search cluster connection.
type ESOptions struct {
	Addrs    []string
	Username string
	Password string
	// Timeout bounds dialing, response headers and the startup ping.
	Timeout    time.Duration
	MaxRetries int
}

// NewESClient builds a client and pings the cluster once so an unreachable
// node is reported at startup instead of on the first profile write.
func NewESClient(ctx context.Context, opts ESOptions) (*elasticsearch.Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     opts.Addrs,
		Username:      opts.Username,
		Password:      opts.Password,
		MaxRetries:    opts.MaxRetries,
		RetryOnStatus: []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		RetryBackoff:  func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: opts.Timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: opts.Timeout}).DialContext,
		},
	})
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	res, err := es.Ping(es.Ping.WithContext(pctx))
	if err != nil {
		return nil, fmt.Errorf("es ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es ping: %s", res.Status())
	}
	return es, nil
}
