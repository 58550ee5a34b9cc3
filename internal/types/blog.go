package types

type BlogPost struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// WebSource is a grounding source reported by the search-backed generation.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// BlogData is the result of a recent blog post lookup. Empty slices are a
// valid result.
type BlogData struct {
	Posts   []BlogPost  `json:"posts"`
	Sources []WebSource `json:"sources"`
}

// Normalize replaces nil slices with empty ones.
func (b *BlogData) Normalize() {
	if b.Posts == nil {
		b.Posts = []BlogPost{}
	}
	if b.Sources == nil {
		b.Sources = []WebSource{}
	}
}
