package news

import (
	"encoding/json"
)

// Article is one news item as served by the endpoint.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Source      string `json:"source"`
	Link        string `json:"link"`
}

// UnmarshalJSON decodes an article leniently: a field that is missing or is not a
// JSON string is left empty, and an element that is not an object yields an empty
// Article instead of an error.
func (a *Article) UnmarshalJSON(data []byte) error {
	*a = Article{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	a.Title = stringField(fields, "title")
	a.Description = stringField(fields, "description")
	a.Image = stringField(fields, "image")
	a.Source = stringField(fields, "source")
	a.Link = stringField(fields, "link")
	return nil
}

// wellFormed reports whether every required field came through as a string.
func wellFormed(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return false
	}
	for _, key := range []string{"title", "description", "source", "link"} {
		raw, ok := fields[key]
		if !ok {
			return false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
	}
	return true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
