package screen

import (
	"fmt"

	"github.com/jiyeol-lee/psgnews/pkg/news"
)

// Line limits for text shown on cards and in the detail header.
const (
	TitleMaxLines       = 2
	DescriptionMaxLines = 3
	DetailTitleMaxLines = 1
)

// EmptyListMessage is shown when the endpoint returned no articles.
const EmptyListMessage = "No news articles available"

// View is what the screen shows for one (LoadState, Selection) pair.
type View interface {
	view()
}

type LoadingView struct{}

type ErrorView struct {
	Message string
}

type EmptyView struct{}

type ListView struct {
	Cards []Card
}

// DetailView shows one article; Target is what the content view loads.
type DetailView struct {
	Title  string
	Target string
}

func (LoadingView) view() {}
func (ErrorView) view()   {}
func (EmptyView) view()   {}
func (ListView) view()    {}
func (DetailView) view()  {}

// Card is one entry of the article list.
type Card struct {
	Image       string
	Source      string
	Title       string
	Description string
	Link        string
	// Selected is never true in a rendered ListView: a selection renders DetailView.
	Selected    bool
}

// Render maps the screen state to the view to show. It has no side effects.
func Render(state LoadState, sel Selection, placeholderImage string) View {
	switch st := state.(type) {
	case Loading:
		return LoadingView{}
	case Failed:
		return ErrorView{Message: st.Message}
	case Ready:
		if a, ok := sel.Article(); ok {
			return DetailView{Title: a.Title, Target: a.Link}
		}
		if len(st.Articles) == 0 {
			return EmptyView{}
		}
		return ListView{Cards: cards(st.Articles, sel, placeholderImage)}
	default:
		panic(fmt.Sprintf("screen: unknown load state %T", state))
	}
}

func cards(articles []news.Article, sel Selection, placeholderImage string) []Card {
	out := make([]Card, len(articles))
	for i, a := range articles {
		image := a.Image
		if image == "" {
			image = placeholderImage
		}
		out[i] = Card{
			Image:       image,
			Source:      a.Source,
			Title:       a.Title,
			Description: a.Description,
			Link:        a.Link,
			Selected:    sel.IsSelected(a.Link),
		}
	}
	return out
}
