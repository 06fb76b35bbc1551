package screen

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jiyeol-lee/psgnews/pkg/news"
)

// ArticleLister is the remote source of the article list.
type ArticleLister interface {
	ListArticles(ctx context.Context) ([]news.Article, error)
	Endpoint() string
}

// articlesLoadedMsg is delivered to the Screen when the fetch for one activation
// completes.
type articlesLoadedMsg struct {
	generation int
	articles   []news.Article
	err        error
}

// Loader issues the single request made per activation.
type Loader struct {
	source ArticleLister
	logger *slog.Logger
}

func NewLoader(source ArticleLister, logger *slog.Logger) Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return Loader{source: source, logger: logger}
}

// Load returns a command performing the fetch for the given activation. The request
// has no deadline and is never cancelled; it is up to the receiver to drop a result
// that arrives for an activation that is over.
func (l Loader) Load(generation int) tea.Cmd {
	source, logger := l.source, l.logger
	return func() tea.Msg {
		articles, err := source.ListArticles(context.Background())
		if err != nil {
			logger.Error("failed to load news articles",
				slog.String("endpoint", source.Endpoint()),
				slog.Int("generation", generation),
				slog.String("error", err.Error()))
			return articlesLoadedMsg{generation: generation, err: err}
		}
		logger.Info("news articles loaded",
			slog.Int("count", len(articles)),
			slog.Int("generation", generation))
		return articlesLoadedMsg{generation: generation, articles: articles}
	}
}
