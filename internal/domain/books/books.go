package books

import "context"

// Book is a catalog entry as returned by the book store service.
type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres,omitempty"`
	Themes      []string `json:"themes,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty"`
}

// Summary carries the short and full synopses of a single book, keyed by title.
type Summary struct {
	Title        string   `json:"title"`
	ShortSummary string   `json:"short_summary"`
	FullSummary  string   `json:"full_summary"`
	Genres       []string `json:"genres,omitempty"`
	Themes       []string `json:"themes,omitempty"`
}

// RecommendQuery captures the filters the model may pass when asking for
// recommendations. Empty fields mean "no constraint".
type RecommendQuery struct {
	Genres  []string `json:"genres,omitempty"`
	Themes  []string `json:"themes,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Content string   `json:"content,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Random  bool     `json:"random,omitempty"`
}

// Store is the read-only catalog the assistant grounds its answers in.
type Store interface {
	Recommend(ctx context.Context, query RecommendQuery) ([]Book, error)
	Summaries(ctx context.Context, titles []string) ([]Summary, error)
}
