package provider

import (
	"context"

	"github.com/gifdock/gifdock/internal/models"
)

// Result is the shared shape every provider response is translated into.
// Provider-specific fields never leak past the translation layer.
type Result struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	GifURL string  `json:"gif_url"`
	MP4URL *string `json:"mp4_url,omitempty"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// Page is one page of provider results.
type Page struct {
	Results    []Result `json:"results"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
}

// Client is the capability contract the core depends on. Page numbers are
// 1-based; providers that paginate by offset translate internally.
type Client interface {
	Source() models.Source
	Search(ctx context.Context, query string, limit, page int) (*Page, error)
	Trending(ctx context.Context, limit, page int) (*Page, error)
}

// Category is one entry of a provider's curated browse feed.
type Category struct {
	Name       string `json:"name"`
	Query      string `json:"query"`
	PreviewURL string `json:"preview_url"`
}

// Suggester is the optional capability for query completion. Callers probe
// for it with a type assertion and fall back to empty results.
type Suggester interface {
	Autocomplete(ctx context.Context, query string, limit int) ([]string, error)
	SearchSuggestions(ctx context.Context, query string, limit int) ([]string, error)
}

// CategoryLister is the optional capability for the curated category feed.
type CategoryLister interface {
	Categories(ctx context.Context) ([]Category, error)
}
