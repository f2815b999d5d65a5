// Package client is the REST transport for wdq entities. It implements
// wdq.EntityFetcher against the Wikibase REST API and is the only part of
// the repository that performs network I/O.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/dinhhuy2010/wdq-go/wdq"
)

const (
	DefaultBaseURL = "https://www.wikidata.org/w/rest.php/wikibase/v1"

	defaultUserAgent = "wdq-go (+https://github.com/dinhhuy2010/wdq-go)"
)

// StatusError is a non-2xx response from the API. The core propagates it
// unchanged from Resolve calls, so callers can errors.As it back out.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wikibase api request failed with status %d: %s", e.StatusCode, e.URL)
}

type Client struct {
	httpc     *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger
}

type ClientArgs struct {
	Logger    *slog.Logger
	BaseURL   string
	UserAgent string
	// HTTPClient overrides the default 30s-timeout client, e.g. in tests.
	HTTPClient *http.Client
	// RequestsPerSecond throttles outgoing requests. Zero means the default
	// of 10 rps; negative disables throttling.
	RequestsPerSecond float64
}

func NewClient(args ClientArgs) *Client {
	if args.Logger == nil {
		args.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if args.BaseURL == "" {
		args.BaseURL = DefaultBaseURL
	}
	if args.UserAgent == "" {
		args.UserAgent = defaultUserAgent
	}
	if args.HTTPClient == nil {
		args.HTTPClient = &http.Client{
			Timeout: time.Second * 30,
		}
	}

	var limiter *rate.Limiter
	switch {
	case args.RequestsPerSecond == 0:
		limiter = rate.NewLimiter(rate.Limit(10), 1)
	case args.RequestsPerSecond > 0:
		limiter = rate.NewLimiter(rate.Limit(args.RequestsPerSecond), 1)
	}

	return &Client{
		httpc:     args.HTTPClient,
		baseURL:   args.BaseURL,
		userAgent: args.UserAgent,
		limiter:   limiter,
		logger:    args.Logger,
	}
}

func entityPath(kind wdq.EntityKind) (string, error) {
	switch kind {
	case wdq.EntityKindItem:
		return "items", nil
	case wdq.EntityKindProperty:
		return "properties", nil
	default:
		return "", errors.Newf("unknown entity kind %q", kind)
	}
}

// FetchEntity performs one GET against the entity endpoint and returns the
// raw response body. Non-2xx responses come back as *StatusError.
func (c *Client) FetchEntity(ctx context.Context, kind wdq.EntityKind, id string) ([]byte, error) {
	path, err := entityPath(kind)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/entities/%s/%s", c.baseURL, path, id)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching entity", "kind", kind, "id", id, "url", url)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s %s", kind, id)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response for %s %s", kind, id)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       body,
		}
	}

	return body, nil
}

// Item fetches and constructs an item, with this client injected as the
// fetcher for any later Resolve calls.
func (c *Client) Item(ctx context.Context, qid string) (*wdq.Item, error) {
	data, err := c.FetchEntity(ctx, wdq.EntityKindItem, qid)
	if err != nil {
		return nil, err
	}
	return wdq.NewItem(data, wdq.WithFetcher(c))
}

// Property fetches and constructs a property.
func (c *Client) Property(ctx context.Context, pid string) (*wdq.Property, error) {
	data, err := c.FetchEntity(ctx, wdq.EntityKindProperty, pid)
	if err != nil {
		return nil, err
	}
	return wdq.NewProperty(data, wdq.WithFetcher(c))
}
