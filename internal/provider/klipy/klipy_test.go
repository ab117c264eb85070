package klipy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/provider/klipy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"result": true,
	"data": {
		"data": [
			{
				"id": 101,
				"slug": "dancing-cat-101",
				"title": "Dancing Cat",
				"file": {
					"hd": {
						"gif": {"url": "https://static.klipy.co/hd/101.gif", "width": 960, "height": 540},
						"mp4": {"url": "https://static.klipy.co/hd/101.mp4", "width": 960, "height": 540}
					},
					"md": {
						"gif": {"url": "https://static.klipy.co/md/101.gif", "width": 480, "height": 270}
					}
				}
			},
			{
				"id": 102,
				"slug": "sleepy-dog-102",
				"title": "Sleepy Dog",
				"file": {
					"hd": {
						"gif": {"url": "https://static.klipy.co/hd/102.gif", "width": 800, "height": 600}
					},
					"md": {
						"gif": {"url": "https://static.klipy.co/md/102.gif", "width": 400, "height": 300}
					}
				}
			}
		],
		"current_page": 2,
		"total": 57
	}
}`

func TestSearch(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("test-key", server.URL, nil)
	assert.Equal(t, models.SourceKlipy, client.Source())

	page, err := client.Search(context.Background(), "cat", 24, 2)
	require.NoError(t, err)

	// The API key travels in the path, not the query string.
	assert.Equal(t, "/test-key/gifs/search", gotPath)
	assert.Contains(t, gotQuery, "q=cat")
	assert.Contains(t, gotQuery, "per_page=24")
	assert.Contains(t, gotQuery, "page=2")

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 57, page.TotalCount)
	require.Len(t, page.Results, 2)

	first := page.Results[0]
	assert.Equal(t, "dancing-cat-101", first.ID)
	assert.Equal(t, "Dancing Cat", first.Title)
	assert.Equal(t, "https://klipy.com/gifs/dancing-cat-101", first.URL)
	assert.Equal(t, "https://static.klipy.co/hd/101.gif", first.GifURL)
	require.NotNil(t, first.MP4URL)
	assert.Equal(t, "https://static.klipy.co/hd/101.mp4", *first.MP4URL)
	assert.Equal(t, 480, first.Width)
	assert.Equal(t, 270, first.Height)

	// No mp4 rendition stays nil rather than an empty URL.
	assert.Nil(t, page.Results[1].MP4URL)
}

func TestTrending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/gifs/trending", r.URL.Path)
		w.Write([]byte(searchPayload))
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("test-key", server.URL, nil)
	page, err := client.Trending(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
}

func TestAutocomplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The query travels in the path, the limit in the query string.
		assert.Equal(t, "/test-key/autocomplete/cat", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"result": true, "data": ["cat", "caturday", "catdance"]}`))
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("test-key", server.URL, nil)
	suggestions, err := client.Autocomplete(context.Background(), "cat", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "caturday", "catdance"}, suggestions)
}

func TestSearchSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/search-suggestions/cat", r.URL.Path)
		w.Write([]byte(`{"result": true, "data": ["funny cat", "cat dance"]}`))
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("test-key", server.URL, nil)
	suggestions, err := client.SearchSuggestions(context.Background(), "cat", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"funny cat", "cat dance"}, suggestions)
}

func TestCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/gifs/categories", r.URL.Path)
		w.Write([]byte(`{
			"result": true,
			"data": {
				"locale": "en",
				"categories": [
					{"category": "Reactions", "query": "reaction", "preview_url": "https://static.klipy.co/cat/reactions.gif"},
					{"category": "Animals", "query": "animals", "preview_url": "https://static.klipy.co/cat/animals.gif"}
				]
			}
		}`))
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("test-key", server.URL, nil)
	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Reactions", categories[0].Name)
	assert.Equal(t, "reaction", categories[0].Query)
	assert.Equal(t, "https://static.klipy.co/cat/reactions.gif", categories[0].PreviewURL)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := klipy.NewWithBaseURL("bad-key", server.URL, nil)
	_, err := client.Search(context.Background(), "cat", 10, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
