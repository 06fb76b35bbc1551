// Package webview is the embedded content view: given a link it fetches the page,
// extracts the readable part and shows it in a scrollable viewport. Its loading
// state is its own; callers only open and close it.
package webview

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// pageLoadedMsg carries the outcome of one Open call.
type pageLoadedMsg struct {
	seq  int
	page Page
	err  error
}

type Model struct {
	fetcher *Fetcher
	logger  *slog.Logger

	target  string
	seq     int
	loading bool
	err     error
	page    Page

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

func New(fetcher *Fetcher, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		fetcher:  fetcher,
		logger:   logger,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		viewport: viewport.New(0, 0),
	}
}

// Open points the view at uri and starts loading it.
func (m *Model) Open(uri string) tea.Cmd {
	m.seq++
	m.target = uri
	m.loading = true
	m.err = nil
	m.page = Page{}
	m.viewport.SetContent("")
	m.viewport.GotoTop()

	seq := m.seq
	fetcher := m.fetcher
	fetch := func() tea.Msg {
		page, err := fetcher.Fetch(context.Background(), uri)
		return pageLoadedMsg{seq: seq, page: page, err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

// Close forgets the current target; a fetch still in flight is ignored when it lands.
func (m *Model) Close() {
	m.seq++
	m.target = ""
	m.loading = false
	m.err = nil
	m.page = Page{}
	m.viewport.SetContent("")
}

// Target is the link currently shown, or empty when closed.
func (m Model) Target() string {
	return m.target
}

func (m Model) Loading() bool {
	return m.loading
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	if !m.loading && m.err == nil && m.page.Markdown != "" {
		m.viewport.SetContent(m.render(m.page.Markdown))
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("failed to load article page",
				slog.String("url", m.target),
				slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.page = msg.page
		m.viewport.SetContent(m.render(msg.page.Markdown))
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.loading || m.target == "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case m.target == "":
		return ""
	case m.loading:
		return m.centered(m.spinner.View())
	case m.err != nil:
		return m.centered(failureStyle.Render("Unable to display page") + "\n" +
			mutedStyle.Render(m.target))
	default:
		return m.viewport.View()
	}
}

func (m Model) centered(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

// render draws markdown at the current width, falling back to the raw text.
func (m Model) render(md string) string {
	wrap := m.width - 2
	if wrap < 20 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", slog.String("error", err.Error()))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		m.logger.Warn("failed to render markdown", slog.String("error", err.Error()))
		return md
	}
	return strings.TrimRight(out, "\n")
}
