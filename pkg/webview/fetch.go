package webview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

var (
	// ErrBodyTooLarge is returned when a page exceeds Options.MaxBodySize.
	ErrBodyTooLarge = errors.New("page body too large")
	// ErrNoContent is returned when no readable content could be extracted.
	ErrNoContent = errors.New("no readable content found")
)

// Options configures page fetching.
type Options struct {
	Timeout     time.Duration
	MaxBodySize int64
	UserAgent   string
}

// Page is the readable part of a web page, ready for rendering.
type Page struct {
	URL      string
	Title    string
	Markdown string
}

// Fetcher downloads a page and extracts its readable content.
type Fetcher struct {
	client *http.Client
	opts   Options
}

func NewFetcher(opts Options) *Fetcher {
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 5 << 20
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// WithHTTPClient swaps the HTTP client. The configured timeout is kept.
func (f *Fetcher) WithHTTPClient(c *http.Client) *Fetcher {
	clone := *c
	clone.Timeout = f.opts.Timeout
	f.client = &clone
	return f
}

// Fetch retrieves rawURL and returns its readable content as markdown.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return Page{}, fmt.Errorf("invalid page url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodySize+1))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.opts.MaxBodySize {
		return Page{}, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.opts.MaxBodySize)
	}

	// readability resolves relative links against the final URL after redirects.
	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("failed to extract content: %w", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return Page{}, ErrNoContent
	}

	md, err := toMarkdown(article.Content)
	if err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(md) == "" {
		return Page{}, ErrNoContent
	}

	return Page{
		URL:      rawURL,
		Title:    article.Title,
		Markdown: md,
	}, nil
}
