package screen

import "github.com/jiyeol-lee/psgnews/pkg/news"

// Selection is either nothing or exactly one article.
type Selection struct {
	article  news.Article
	selected bool
}

// NoSelection is the empty Selection.
func NoSelection() Selection {
	return Selection{}
}

// Selected returns a Selection holding a.
func Selected(a news.Article) Selection {
	return Selection{article: a, selected: true}
}

// Article returns the selected article and whether there is one.
func (s Selection) Article() (news.Article, bool) {
	return s.article, s.selected
}

// IsSelected reports whether the article identified by link is the selected one.
func (s Selection) IsSelected(link string) bool {
	return s.selected && s.article.Link == link
}

// Navigation holds the current Selection. It keeps no history.
type Navigation struct {
	current Selection
}

func (n *Navigation) Select(a news.Article) {
	n.current = Selected(a)
}

func (n *Navigation) Clear() {
	n.current = NoSelection()
}

func (n Navigation) Current() Selection {
	return n.current
}
