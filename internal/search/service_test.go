package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/provider"
	"github.com/gifdock/gifdock/internal/search"
	"github.com/gifdock/gifdock/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a canned provider.Client for exercising the combined
// search paths without a network.
type fakeProvider struct {
	page *provider.Page
	err  error
}

func (f *fakeProvider) Source() models.Source { return models.SourceKlipy }

func (f *fakeProvider) Search(ctx context.Context, query string, limit, page int) (*provider.Page, error) {
	return f.page, f.err
}

func (f *fakeProvider) Trending(ctx context.Context, limit, page int) (*provider.Page, error) {
	return f.page, f.err
}

// suggestingProvider adds the completion and category capabilities on top of
// the bare client.
type suggestingProvider struct {
	fakeProvider
	suggestions []string
	categories  []provider.Category
}

func (f *suggestingProvider) Autocomplete(ctx context.Context, query string, limit int) ([]string, error) {
	return f.suggestions, f.err
}

func (f *suggestingProvider) SearchSuggestions(ctx context.Context, query string, limit int) ([]string, error) {
	return f.suggestions, f.err
}

func (f *suggestingProvider) Categories(ctx context.Context) ([]provider.Category, error) {
	return f.categories, f.err
}

func TestCombinedWithProvider(t *testing.T) {
	db := testutils.TestDB(t)

	path := "/media/gifs/cat.gif"
	favorite := models.NewFavorite("cat.gif", &path, models.MediaTypeGif)
	_, err := db.Favorites().Create(&favorite)
	require.NoError(t, err)

	remote := &provider.Page{
		Results:    []provider.Result{{ID: "abc", Title: "Cat", GifURL: "https://example.com/abc.gif"}},
		TotalCount: 1,
		Page:       1,
	}
	svc := search.NewService(db, &fakeProvider{page: remote})

	result, err := svc.Combined(context.Background(), "cat", 20, 1)
	require.NoError(t, err)

	require.Len(t, result.Local, 1)
	assert.Equal(t, "cat.gif", result.Local[0].Filename)
	require.NotNil(t, result.Remote)
	assert.Equal(t, remote, result.Remote)
}

func TestCombinedWithoutProvider(t *testing.T) {
	db := testutils.TestDB(t)
	svc := search.NewService(db, nil)

	result, err := svc.Combined(context.Background(), "cat", 20, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Local)
	assert.Nil(t, result.Remote)
}

func TestCombinedDegradesOnProviderFailure(t *testing.T) {
	db := testutils.TestDB(t)

	path := "/media/gifs/cat.gif"
	favorite := models.NewFavorite("cat.gif", &path, models.MediaTypeGif)
	_, err := db.Favorites().Create(&favorite)
	require.NoError(t, err)

	svc := search.NewService(db, &fakeProvider{err: errors.New("upstream down")})

	result, err := svc.Combined(context.Background(), "cat", 20, 1)
	require.NoError(t, err)
	require.Len(t, result.Local, 1)
	assert.Nil(t, result.Remote)
}

func TestTrendingWithoutProvider(t *testing.T) {
	svc := search.NewService(testutils.TestDB(t), nil)

	page, err := svc.Trending(context.Background(), 20, 1)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.Page)
}

func TestProviderSearchWithoutProvider(t *testing.T) {
	svc := search.NewService(testutils.TestDB(t), nil)

	page, err := svc.ProviderSearch(context.Background(), "cat", 20, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestSuggestionPassthroughs(t *testing.T) {
	db := testutils.TestDB(t)
	fake := &suggestingProvider{
		suggestions: []string{"funny cat", "cat dance"},
		categories:  []provider.Category{{Name: "Reactions", Query: "reaction"}},
	}
	svc := search.NewService(db, fake)

	suggestions, err := svc.Autocomplete(context.Background(), "cat", 5)
	require.NoError(t, err)
	assert.Equal(t, fake.suggestions, suggestions)

	suggestions, err = svc.SearchSuggestions(context.Background(), "cat", 5)
	require.NoError(t, err)
	assert.Equal(t, fake.suggestions, suggestions)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.categories, categories)
}

func TestSuggestionsWithoutCapability(t *testing.T) {
	db := testutils.TestDB(t)

	// A bare client, and no client at all, both answer with empty lists.
	for _, svc := range []*search.Service{
		search.NewService(db, &fakeProvider{}),
		search.NewService(db, nil),
	} {
		suggestions, err := svc.Autocomplete(context.Background(), "cat", 5)
		require.NoError(t, err)
		assert.Empty(t, suggestions)

		suggestions, err = svc.SearchSuggestions(context.Background(), "cat", 5)
		require.NoError(t, err)
		assert.Empty(t, suggestions)

		categories, err := svc.Categories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, categories)
	}
}
