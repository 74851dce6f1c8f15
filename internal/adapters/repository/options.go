package repository

import (
	"net/http"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

// RESTOption applies a configuration option to the RESTStore.
type RESTOption func(*RESTStore)

// WithAPIKey sends key as both the apikey header and a bearer token.
func WithAPIKey(key string) RESTOption {
	return func(s *RESTStore) {
		s.apiKey = key
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(s *RESTStore) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRetry sets the first retry delay and the total time spent retrying.
func WithRetry(initial, maxElapsed time.Duration) RESTOption {
	return func(s *RESTStore) {
		if initial > 0 {
			s.retryInitial = initial
		}
		if maxElapsed > 0 {
			s.retryMax = maxElapsed
		}
	}
}

// WithRESTLogger sets the logger.
func WithRESTLogger(l logger.Logger) RESTOption {
	return func(s *RESTStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// FetcherOption applies a configuration option to the Fetcher.
type FetcherOption func(*Fetcher)

// WithPageSize sets the rows requested per page.
func WithPageSize(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithConcurrency bounds the pages fetched in parallel.
func WithConcurrency(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithStoreName labels the fetcher's metrics.
func WithStoreName(name string) FetcherOption {
	return func(f *Fetcher) {
		if name != "" {
			f.name = name
		}
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}
