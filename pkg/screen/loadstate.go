package screen

import "github.com/jiyeol-lee/psgnews/pkg/news"

// LoadFailedMessage is the only load error ever shown to the user.
const LoadFailedMessage = "Failed to load news articles"

// LoadState is the outcome of the fetch made on activation: Loading, Failed or Ready.
type LoadState interface {
	loadState()
}

type Loading struct{}

type Failed struct {
	Message string
}

type Ready struct {
	Articles []news.Article
}

func (Loading) loadState() {}
func (Failed) loadState()  {}
func (Ready) loadState()   {}
