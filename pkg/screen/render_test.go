package screen

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiyeol-lee/psgnews/pkg/news"
)

func TestRenderTable(t *testing.T) {
	a := scenarioArticles[0]
	tests := []struct {
		name  string
		state LoadState
		sel   Selection
		want  View
	}{
		{name: "loading", state: Loading{}, sel: NoSelection(), want: LoadingView{}},
		{name: "loading with selection", state: Loading{}, sel: Selected(a), want: LoadingView{}},
		{name: "error", state: Failed{Message: "m"}, sel: NoSelection(), want: ErrorView{Message: "m"}},
		{name: "error with selection", state: Failed{Message: "m"}, sel: Selected(a), want: ErrorView{Message: "m"}},
		{name: "empty", state: Ready{Articles: []news.Article{}}, sel: NoSelection(), want: EmptyView{}},
		{name: "nil list", state: Ready{}, sel: NoSelection(), want: EmptyView{}},
		{
			name:  "list",
			state: Ready{Articles: scenarioArticles},
			sel:   NoSelection(),
			want: ListView{Cards: []Card{
				{Image: placeholder, Source: "S1", Title: "A", Description: "d1", Link: "http://x/1"},
				{Image: placeholder, Source: "S2", Title: "B", Description: "d2", Link: "http://x/2"},
			}},
		},
		{
			name:  "detail",
			state: Ready{Articles: scenarioArticles},
			sel:   Selected(scenarioArticles[1]),
			want:  DetailView{Title: "B", Target: "http://x/2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.state, tt.sel, placeholder)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderKeepsCountAndOrder(t *testing.T) {
	articles := make([]news.Article, 25)
	for i := range articles {
		articles[i] = news.Article{Title: strings.Repeat("t", i+1), Link: "http://x/" + strings.Repeat("i", i+1)}
	}

	lv, ok := Render(Ready{Articles: articles}, NoSelection(), placeholder).(ListView)
	require.True(t, ok)
	require.Len(t, lv.Cards, len(articles))
	for i, c := range lv.Cards {
		assert.Equal(t, articles[i].Title, c.Title)
		assert.Equal(t, articles[i].Link, c.Link)
	}
}

func TestRenderPanicsOnUnknownState(t *testing.T) {
	assert.Panics(t, func() { Render(nil, NoSelection(), placeholder) })
}

func TestCardsMarkSelection(t *testing.T) {
	got := cards(scenarioArticles, Selected(scenarioArticles[1]), placeholder)

	assert.False(t, got[0].Selected)
	assert.True(t, got[1].Selected)
}

func TestCardsKeepImage(t *testing.T) {
	withImage := news.Article{Title: "C", Image: "https://img/c.png", Link: "http://x/c"}

	got := cards([]news.Article{withImage}, NoSelection(), placeholder)

	assert.Equal(t, "https://img/c.png", got[0].Image)
}

func TestClampLines(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		n     int
		want  []string
	}{
		{name: "fits", in: "short title", width: 20, n: 2, want: []string{"short title"}},
		{name: "empty", in: "", width: 20, n: 2, want: []string{""}},
		{name: "wraps", in: "one two three", width: 8, n: 2, want: []string{"one two", "three"}},
		{name: "cut with ellipsis", in: "one two three four five", width: 8, n: 2, want: []string{"one two", "three…"}},
		{name: "cut at full width", in: "abcd efgh ijkl", width: 4, n: 2, want: []string{"abcd", "efg…"}},
		{name: "long word", in: "supercalifragilistic", width: 6, n: 1, want: []string{"super…"}},
		{name: "whitespace collapsed", in: "a\n\n   b", width: 10, n: 1, want: []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLines(tt.in, tt.width, tt.n))
		})
	}
}

func TestRenderCardHeightIsFixed(t *testing.T) {
	long := strings.Repeat("word ", 200)
	for _, c := range []Card{
		{Image: placeholder, Title: "A", Description: "d", Link: "http://x/1"},
		{Image: placeholder, Source: "S", Title: long, Description: long, Link: "http://x/2"},
		{Image: placeholder, Title: long, Description: long, Selected: true},
		{Image: placeholder, Source: "Le Parisien\nSport", Title: "A", Description: "d"},
		{Image: placeholder, Source: strings.Repeat("Source", 20), Title: "A", Description: "d", Selected: true},
	} {
		out := renderCard(c, 60, false)
		assert.Equal(t, cardHeight, lipgloss.Height(out))
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 60)
		}
	}
}

func TestRenderCardShowsPlaceholderAndText(t *testing.T) {
	out := renderCard(Card{Image: placeholder, Source: "S1", Title: "A", Description: "d1"}, 80, true)

	assert.Contains(t, out, placeholder)
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "d1")
}

func TestRenderCardCollapsesSource(t *testing.T) {
	out := renderCard(Card{Image: placeholder, Source: "Le Parisien\nSport", Title: "A"}, 60, false)

	assert.Contains(t, out, "Le Parisien Sport")
}
