package search

import (
	"context"
	"log"

	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/provider"
)

// CombinedResult pairs matching local favorites with one page of remote
// provider results.
type CombinedResult struct {
	Local  []models.Favorite `json:"local"`
	Remote *provider.Page    `json:"remote"`
}

// Service answers combined local+remote searches. The provider client may
// be nil when no API key is configured.
type Service struct {
	db       *database.Database
	provider provider.Client
}

func NewService(db *database.Database, client provider.Client) *Service {
	return &Service{db: db, provider: client}
}

// Combined searches local favorites and the configured provider. A provider
// failure degrades the result to local-only rather than failing the search.
func (s *Service) Combined(ctx context.Context, query string, limit, page int) (*CombinedResult, error) {
	local, err := s.db.Favorites().Search(query)
	if err != nil {
		return nil, err
	}

	result := &CombinedResult{Local: local}
	if s.provider == nil {
		return result, nil
	}

	remote, err := s.provider.Search(ctx, query, limit, page)
	if err != nil {
		log.Printf("⚠️  Provider search failed, returning local results only: %v", err)
		return result, nil
	}
	result.Remote = remote
	return result, nil
}

// Trending proxies the provider's trending feed.
func (s *Service) Trending(ctx context.Context, limit, page int) (*provider.Page, error) {
	if s.provider == nil {
		return &provider.Page{Results: []provider.Result{}, Page: page}, nil
	}
	return s.provider.Trending(ctx, limit, page)
}

// ProviderSearch proxies a provider-only search.
func (s *Service) ProviderSearch(ctx context.Context, query string, limit, page int) (*provider.Page, error) {
	if s.provider == nil {
		return &provider.Page{Results: []provider.Result{}, Page: page}, nil
	}
	return s.provider.Search(ctx, query, limit, page)
}

// Autocomplete proxies the provider's query completion. Providers without
// the capability answer with an empty list.
func (s *Service) Autocomplete(ctx context.Context, query string, limit int) ([]string, error) {
	suggester, ok := s.provider.(provider.Suggester)
	if !ok {
		return []string{}, nil
	}
	return suggester.Autocomplete(ctx, query, limit)
}

// SearchSuggestions proxies the provider's related-search suggestions.
func (s *Service) SearchSuggestions(ctx context.Context, query string, limit int) ([]string, error) {
	suggester, ok := s.provider.(provider.Suggester)
	if !ok {
		return []string{}, nil
	}
	return suggester.SearchSuggestions(ctx, query, limit)
}

// Categories proxies the provider's curated category feed.
func (s *Service) Categories(ctx context.Context) ([]provider.Category, error) {
	lister, ok := s.provider.(provider.CategoryLister)
	if !ok {
		return []provider.Category{}, nil
	}
	return lister.Categories(ctx)
}
