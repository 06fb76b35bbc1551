package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

var (
	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrNotArray is returned when the response body is not a JSON array.
	ErrNotArray = errors.New("response is not a JSON array")
)

type News struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewNews creates a client for the news endpoint at rawURL.
// The client has no timeout: a hung endpoint keeps the request open.
func NewNews(rawURL string, logger *slog.Logger) (*News, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid news endpoint %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported news endpoint scheme: %q", u.Scheme)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &News{
		endpoint: u.String(),
		client:   &http.Client{},
		logger:   logger,
	}, nil
}

// WithHTTPClient swaps the HTTP client used for the request.
func (n *News) WithHTTPClient(c *http.Client) *News {
	n.client = c
	return n
}

// Endpoint returns the URL the articles are fetched from.
func (n *News) Endpoint() string {
	return n.endpoint
}

// ListArticles fetches the article list, preserving the order served by the endpoint.
func (n *News) ListArticles(ctx context.Context) ([]Article, error) {
	elements, err := getJSONArray(ctx, n.client, n.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles from %s: %w", n.endpoint, err)
	}

	articles := make([]Article, len(elements))
	for i, raw := range elements {
		if !wellFormed(raw) {
			n.logger.Warn("malformed article record, missing fields left empty",
				slog.Int("index", i),
				slog.String("record", string(raw)))
		}
		// Article.UnmarshalJSON never fails.
		_ = articles[i].UnmarshalJSON(raw)
	}

	return articles, nil
}
