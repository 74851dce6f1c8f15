package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/metrics"
)

const (
	defaultRESTTimeout     = 15 * time.Second
	defaultRetryInitial    = 200 * time.Millisecond
	defaultRetryMaxElapsed = 10 * time.Second
	maxErrorBody           = 512
)

// RESTStore reads a PostgREST-compatible endpoint such as a hosted Supabase
// project (base URL ending in /rest/v1).
type RESTStore struct {
	base         *url.URL
	apiKey       string
	client       *http.Client
	retryInitial time.Duration
	retryMax     time.Duration
	logger       logger.Logger
}

// NewRESTStore creates a store rooted at baseURL.
func NewRESTStore(baseURL string, opts ...RESTOption) (*RESTStore, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base url %q", ErrInvalidQuery, baseURL)
	}
	s := &RESTStore{
		base:         u,
		client:       &http.Client{Timeout: defaultRESTTimeout},
		retryInitial: defaultRetryInitial,
		retryMax:     defaultRetryMaxElapsed,
		logger:       logger.GetOrNop().Named("rest_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Count implements Store using an exact count header.
func (s *RESTStore) Count(ctx context.Context, q Query) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	params := encodeFilters(q.Filters)
	params.Set("select", ColID)
	params.Set("limit", "1")

	start := time.Now()
	_, hdr, err := s.get(ctx, q.Table, params, true)
	metrics.RecordStoreRequest("rest", "count", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return parseContentRange(hdr.Get("Content-Range"))
}

// Query implements Store.
func (s *RESTStore) Query(ctx context.Context, q Query) ([]model.RawSubmission, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	params := encodeFilters(q.Filters)
	params.Set("select", "*")
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	start := time.Now()
	body, _, err := s.get(ctx, q.Table, params, false)
	metrics.RecordStoreRequest("rest", "query", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	var rows []model.RawSubmission
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode rows: %v", ErrUnexpectedStatus, err)
	}
	return rows, nil
}

// get performs a GET with retries on transport errors, 429 and 5xx.
func (s *RESTStore) get(ctx context.Context, table string, params url.Values, count bool) ([]byte, http.Header, error) {
	u := s.base.JoinPath(table)
	u.RawQuery = params.Encode()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInitial
	bo.MaxElapsedTime = s.retryMax

	var (
		body    []byte
		hdr     http.Header
		attempt int
	)
	op := func() error {
		attempt++
		if attempt > 1 {
			metrics.RecordStoreRetry("rest")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if s.apiKey != "" {
			req.Header.Set("apikey", s.apiKey)
			req.Header.Set("Authorization", "Bearer "+s.apiKey)
		}
		if count {
			req.Header.Set("Prefer", "count=exact")
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			s.logger.Warn(ctx, "store request failed", logger.Int("attempt", attempt), logger.Error(err))
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: read body: %v", ErrStoreUnavailable, err)
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			s.logger.Warn(ctx, "store responded with retryable status",
				logger.Int("attempt", attempt), logger.Int("status", resp.StatusCode))
			return fmt.Errorf("%w: status %d: %s", ErrStoreUnavailable, resp.StatusCode, truncate(b))
		case resp.StatusCode >= http.StatusMultipleChoices:
			return backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrUnexpectedStatus, resp.StatusCode, truncate(b)))
		}
		body, hdr = b, resp.Header
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, nil, err
	}
	return body, hdr, nil
}

// encodeFilters renders filters in PostgREST syntax.
func encodeFilters(filters []Filter) url.Values {
	v := url.Values{}
	for _, f := range filters {
		if f.Op == OpOr {
			parts := make([]string, 0, len(f.Any))
			for _, a := range f.Any {
				parts = append(parts, a.Column+"."+operand(a, true))
			}
			v.Add("or", "("+strings.Join(parts, ",")+")")
			continue
		}
		v.Add(f.Column, operand(f, false))
	}
	return v
}

func operand(f Filter, nested bool) string {
	switch f.Op {
	case OpEq:
		if nested {
			return "eq." + quote(f.Value)
		}
		return "eq." + f.Value
	case OpILike:
		if nested {
			return "ilike." + quote("*"+f.Value+"*")
		}
		return "ilike.*" + f.Value + "*"
	case OpIn:
		quoted := make([]string, len(f.Values))
		for i, x := range f.Values {
			quoted[i] = quote(x)
		}
		return "in.(" + strings.Join(quoted, ",") + ")"
	}
	return ""
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// parseContentRange extracts the total from "0-9/42" or "*/0".
func parseContentRange(h string) (int, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 {
		return 0, fmt.Errorf("%w: missing content range %q", ErrUnexpectedStatus, h)
	}
	n, err := strconv.Atoi(h[i+1:])
	if err != nil {
		return 0, fmt.Errorf("%w: content range total %q", ErrUnexpectedStatus, h)
	}
	return n, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return strings.TrimSpace(string(b))
}
