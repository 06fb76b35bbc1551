package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cardItem adapts a Card to list.Item.
type cardItem struct {
	Card
}

func (i cardItem) FilterValue() string { return i.Title }

// cardHeight is the image/source line plus the clamped title and description.
const cardHeight = 1 + TitleMaxLines + DescriptionMaxLines

type cardDelegate struct{}

func (cardDelegate) Height() int                             { return cardHeight }
func (cardDelegate) Spacing() int                            { return 1 }
func (cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(cardItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderCard(it.Card, m.Width(), index == m.Index()))
}

// renderCard draws c in exactly cardHeight lines.
func renderCard(c Card, width int, focused bool) string {
	style := cardStyle
	switch {
	case c.Selected:
		style = selectedCardStyle
	case focused:
		style = focusedCardStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	// the tag takes at most half the line so the image text keeps some room
	source := clampLines(c.Source, max(inner/2-sourceTagStyle.GetHorizontalFrameSize(), 1), 1)[0]
	tag := sourceTagStyle.Render(source)
	image := imageStyle.Render(clampLines("▣ "+c.Image, inner-lipgloss.Width(tag)-1, 1)[0])
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, tag, " ", image)}

	for _, l := range padLines(clampLines(c.Title, inner, TitleMaxLines), TitleMaxLines) {
		lines = append(lines, titleStyle.Render(l))
	}
	for _, l := range padLines(clampLines(c.Description, inner, DescriptionMaxLines), DescriptionMaxLines) {
		lines = append(lines, descriptionStyle.Render(l))
	}

	return style.Render(strings.Join(lines, "\n"))
}
