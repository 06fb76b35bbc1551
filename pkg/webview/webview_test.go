package webview

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleParagraph = strings.Repeat("Paris Saint-Germain prepared for the weekend fixture with a full training session at Campus PSG, and the coaching staff confirmed that the squad is fit. ", 6)

func articlePage() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Training report</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Training report</h1>
<p>%s</p>
<p>%s</p>
</article>
</body></html>`, articleParagraph, articleParagraph)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher(t *testing.T, handler http.HandlerFunc, opts Options) (*Fetcher, string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFetcher(opts).WithHTTPClient(srv.Client()), srv.URL
}

// runCmd executes cmd and returns the first message that is not a spinner tick.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if loaded, ok := c().(pageLoadedMsg); ok {
				return loaded
			}
		}
		t.Fatalf("no pageLoadedMsg in batch")
	}
	return msg
}

func TestFetchExtractsReadableContent(t *testing.T) {
	var userAgent string
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, articlePage())
	}, Options{Timeout: time.Second, UserAgent: "psgnews-test"})

	page, err := f.Fetch(t.Context(), base+"/article/1")
	require.NoError(t, err)

	assert.Equal(t, "psgnews-test", userAgent)
	assert.Equal(t, base+"/article/1", page.URL)
	assert.Contains(t, page.Markdown, "Campus PSG")
	assert.NotContains(t, page.Markdown, "<p>")
}

func TestFetchFailures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}, Options{})
		_, err := f.Fetch(t.Context(), base)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, articlePage())
		}, Options{MaxBodySize: 64})
		_, err := f.Fetch(t.Context(), base)
		assert.ErrorIs(t, err, ErrBodyTooLarge)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewFetcher(Options{}).Fetch(t.Context(), "mailto:someone@example.com")
		assert.Error(t, err)
	})
}

func TestModelOpenLoadsPage(t *testing.T) {
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, articlePage())
	}, Options{Timeout: time.Second})

	m := New(f, discardLogger())
	m.SetSize(80, 20)
	assert.Empty(t, m.View())

	cmd := m.Open(base + "/a")
	assert.Equal(t, base+"/a", m.Target())
	assert.True(t, m.Loading())

	m, _ = m.Update(runCmd(t, cmd))
	assert.False(t, m.Loading())
	assert.Contains(t, m.View(), "Campus")
}

func TestModelShowsFailure(t *testing.T) {
	m := New(NewFetcher(Options{}), discardLogger())
	m.Open("http://x/2")

	m, _ = m.Update(pageLoadedMsg{seq: m.seq, err: errors.New("boom")})

	assert.False(t, m.Loading())
	assert.Contains(t, m.View(), "Unable to display page")
	assert.Contains(t, m.View(), "http://x/2")
}

func TestModelDropsStaleResults(t *testing.T) {
	m := New(NewFetcher(Options{}), discardLogger())
	m.Open("http://x/1")
	stale := m.seq
	m.Open("http://x/2")

	m, _ = m.Update(pageLoadedMsg{seq: stale, page: Page{Markdown: "stale"}})
	assert.True(t, m.Loading())
	assert.Equal(t, "http://x/2", m.Target())

	m.Close()
	closedSeq := m.seq
	m, _ = m.Update(pageLoadedMsg{seq: closedSeq - 1, page: Page{Markdown: "late"}})
	assert.Empty(t, m.Target())
	assert.Empty(t, m.View())
}
