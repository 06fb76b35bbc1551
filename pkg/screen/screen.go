// Package screen is the news reader screen: it loads the article list once per
// activation, tracks which article is open and draws the list or the detail view.
//
// All state changes happen in Update, on the bubbletea event loop. The fetch runs as a
// command and reports back with a message tagged by activation; a result for an
// activation that is over is dropped.
package screen

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jiyeol-lee/psgnews/pkg/news"
	"github.com/jiyeol-lee/psgnews/pkg/webview"
)

// TeardownMsg deactivates the screen and quits the program.
type TeardownMsg struct{}

type Options struct {
	PlaceholderImage string
	Logger           *slog.Logger
}

type Screen struct {
	loader      Loader
	logger      *slog.Logger
	placeholder string

	state      LoadState
	nav        Navigation
	active     bool
	generation int

	list    list.Model
	content webview.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
	height  int
}

func New(source ArticleLister, content webview.Model, opts Options) *Screen {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := list.New(nil, cardDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &Screen{
		loader:      NewLoader(source, logger),
		logger:      logger,
		placeholder: opts.PlaceholderImage,
		state:       Loading{},
		list:        l,
		content:     content,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.Activate()
}

// Activate starts a new activation: the load state goes back to Loading and the
// single fetch for this activation is issued.
func (s *Screen) Activate() tea.Cmd {
	s.active = true
	s.generation++
	s.state = Loading{}
	s.syncList()
	s.logger.Debug("screen activated", slog.Int("generation", s.generation))
	return tea.Batch(s.spinner.Tick, s.loader.Load(s.generation))
}

// Deactivate marks the screen as torn down. Results still in flight are dropped.
func (s *Screen) Deactivate() {
	s.active = false
	s.logger.Debug("screen deactivated", slog.Int("generation", s.generation))
}

func (s *Screen) Active() bool {
	return s.active
}

func (s *Screen) State() LoadState {
	return s.state
}

func (s *Screen) Selection() Selection {
	return s.nav.Current()
}

// Rendered is the view for the current state.
func (s *Screen) Rendered() View {
	return Render(s.state, s.nav.Current(), s.placeholder)
}

// Select opens a in the detail view. Selecting the open article again changes nothing.
func (s *Screen) Select(a news.Article) tea.Cmd {
	already := s.nav.Current().IsSelected(a.Link)
	s.nav.Select(a)
	s.syncList()
	if already && s.content.Target() == a.Link {
		return nil
	}
	return s.content.Open(a.Link)
}

// Dismiss closes the detail view.
func (s *Screen) Dismiss() {
	s.nav.Clear()
	s.content.Close()
	s.syncList()
}

func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case articlesLoadedMsg:
		s.applyLoaded(msg)
		return s, nil

	case TeardownMsg:
		s.Deactivate()
		return s, tea.Quit

	case tea.ResumeMsg:
		return s, s.Activate()

	case tea.WindowSizeMsg:
		s.resize(msg.Width, msg.Height)
		return s, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if _, loading := s.state.(Loading); loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		s.content, cmd = s.content.Update(msg)
		cmds = append(cmds, cmd)
		return s, tea.Batch(cmds...)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.content, cmd = s.content.Update(msg)
	return s, cmd
}

func (s *Screen) View() string {
	return s.draw(s.Rendered())
}

// applyLoaded moves Loading to Failed or Ready, once per activation.
func (s *Screen) applyLoaded(msg articlesLoadedMsg) {
	if !s.active || msg.generation != s.generation {
		s.logger.Debug("dropping stale news result",
			slog.Int("generation", msg.generation),
			slog.Int("current", s.generation),
			slog.Bool("active", s.active))
		return
	}
	if _, loading := s.state.(Loading); !loading {
		return
	}

	if msg.err != nil {
		s.state = Failed{Message: LoadFailedMessage}
	} else {
		s.state = Ready{Articles: msg.articles}
	}
	s.syncList()
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Quit):
		s.Deactivate()
		return tea.Quit
	case key.Matches(msg, s.keys.Suspend):
		s.Deactivate()
		return tea.Suspend
	}

	switch s.Rendered().(type) {
	case ListView:
		if key.Matches(msg, s.keys.Open) {
			ready, _ := s.state.(Ready)
			i := s.list.Index()
			if i < 0 || i >= len(ready.Articles) {
				return nil
			}
			return s.Select(ready.Articles[i])
		}
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return cmd

	case DetailView:
		if key.Matches(msg, s.keys.Close) {
			s.Dismiss()
			return nil
		}
		var cmd tea.Cmd
		s.content, cmd = s.content.Update(msg)
		return cmd
	}
	return nil
}

// syncList refreshes the list items from the current render.
func (s *Screen) syncList() {
	lv, ok := s.Rendered().(ListView)
	if !ok {
		ready, isReady := s.state.(Ready)
		if !isReady || len(ready.Articles) == 0 {
			s.list.SetItems(nil)
		}
		return
	}
	items := make([]list.Item, len(lv.Cards))
	for i, c := range lv.Cards {
		items[i] = cardItem{Card: c}
	}
	s.list.SetItems(items)
}

func (s *Screen) resize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width

	header := lipgloss.Height(headerStyle.Width(width).Render(headerTitle))
	body := max(height-header-1, 0)
	s.list.SetSize(width, body)
	// the article header is one line plus its bottom border
	s.content.SetSize(width, max(body-2, 0))
}
