package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	headerTitle  = "PSG News"
	closeControl = "✕ esc"
)

var (
	accent = lipgloss.Color("#2563eb")
	muted  = lipgloss.Color("#6b7280")
	border = lipgloss.Color("#e5e7eb")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border)
	articleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(border)
	closeStyle       = lipgloss.NewStyle().Foreground(muted)
	loadingTextStyle = lipgloss.NewStyle().Foreground(muted)
	errorTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	emptyTextStyle   = lipgloss.NewStyle().Foreground(muted).MarginTop(2)
	spinnerStyle     = lipgloss.NewStyle().Foreground(accent)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(border).
			PaddingLeft(1)
	focusedCardStyle  = cardStyle.BorderForeground(muted)
	selectedCardStyle = cardStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(accent)
	sourceTagStyle    = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(accent).
				Padding(0, 1)
	imageStyle       = lipgloss.NewStyle().Foreground(muted).Italic(true)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
)

// draw paints v for a terminal of the screen's size.
func (s *Screen) draw(v View) string {
	header := headerStyle.Width(s.width).Render(headerTitle)
	footer := s.help.View(s.keys.helpFor(v))
	bodyHeight := max(s.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	var body string
	switch v := v.(type) {
	case LoadingView:
		body = s.centered(s.spinner.View()+"\n"+loadingTextStyle.Render("Loading news..."), bodyHeight)
	case ErrorView:
		body = s.centered(errorTextStyle.Render(v.Message), bodyHeight)
	case EmptyView:
		body = lipgloss.PlaceHorizontal(s.width, lipgloss.Center, emptyTextStyle.Render(EmptyListMessage))
	case ListView:
		body = s.list.View()
	case DetailView:
		body = s.drawDetail(v)
	default:
		panic(fmt.Sprintf("screen: unknown view %T", v))
	}

	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (s *Screen) drawDetail(v DetailView) string {
	titleWidth := max(s.width-runewidth.StringWidth(closeControl)-2, 1)
	title := clampLines(v.Title, titleWidth, DetailTitleMaxLines)[0]
	title = runewidth.FillRight(title, titleWidth)

	header := articleHeaderStyle.Width(s.width).Render(
		title + "  " + closeStyle.Render(closeControl),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, s.content.View())
}

func (s *Screen) centered(content string, height int) string {
	if s.width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(s.width, height, lipgloss.Center, lipgloss.Center, content)
}

// clampLines wraps s to width and keeps at most n lines, marking a cut with "…".
// It always returns at least one line.
func clampLines(s string, width, n int) []string {
	if width < 1 {
		width = 1
	}
	s = strings.Join(strings.Fields(s), " ")
	lines := strings.Split(wordwrap.String(s, width), "\n")

	cut := len(lines) > n
	if cut {
		lines = lines[:n]
	}
	for i, l := range lines {
		if runewidth.StringWidth(l) > width {
			lines[i] = truncate.StringWithTail(l, uint(width), "…")
		}
	}
	if cut {
		last := lines[n-1]
		if runewidth.StringWidth(last)+1 > width {
			last = truncate.String(last, uint(width-1))
		}
		lines[n-1] = last + "…"
	}
	return lines
}

func padLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
