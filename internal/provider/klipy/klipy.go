// Package klipy translates the Klipy GIF API into the shared provider shape.
package klipy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/provider"
)

const defaultBaseURL = "https://api.klipy.co/api/v1"

type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{client: client, apiKey: apiKey, baseURL: defaultBaseURL}
}

// NewWithBaseURL is used by tests to point the client at a fake server.
func NewWithBaseURL(apiKey, baseURL string, client *http.Client) *Client {
	c := New(apiKey, client)
	c.baseURL = baseURL
	return c
}

func (c *Client) Source() models.Source {
	return models.SourceKlipy
}

// gifResponse mirrors the slice of the Klipy schema the core needs.
type gifResponse struct {
	Result bool `json:"result"`
	Data   struct {
		Data        []klipyGif `json:"data"`
		CurrentPage *int       `json:"current_page"`
		Total       *int       `json:"total"`
	} `json:"data"`
}

type klipyGif struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	File  struct {
		HD klipySizeFormat `json:"hd"`
		MD klipySizeFormat `json:"md"`
	} `json:"file"`
}

type klipySizeFormat struct {
	Gif klipyMediaFile  `json:"gif"`
	MP4 *klipyMediaFile `json:"mp4"`
}

type klipyMediaFile struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type stringListResponse struct {
	Result bool     `json:"result"`
	Data   []string `json:"data"`
}

type categoriesResponse struct {
	Result bool `json:"result"`
	Data   struct {
		Locale     string          `json:"locale"`
		Categories []klipyCategory `json:"categories"`
	} `json:"data"`
}

type klipyCategory struct {
	Category   string `json:"category"`
	Query      string `json:"query"`
	PreviewURL string `json:"preview_url"`
}

func (c *Client) Search(ctx context.Context, query string, limit, page int) (*provider.Page, error) {
	params := url.Values{
		"q":        {query},
		"per_page": {strconv.Itoa(limit)},
		"page":     {strconv.Itoa(page)},
	}
	return c.fetchPage(ctx, "gifs/search", params, page)
}

func (c *Client) Trending(ctx context.Context, limit, page int) (*provider.Page, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(limit)},
		"page":     {strconv.Itoa(page)},
	}
	return c.fetchPage(ctx, "gifs/trending", params, page)
}

// Autocomplete returns completion suggestions for a partial query. The
// query travels in the request path.
func (c *Client) Autocomplete(ctx context.Context, query string, limit int) ([]string, error) {
	return c.fetchStrings(ctx, "autocomplete/"+url.PathEscape(query), limit)
}

// SearchSuggestions returns related-search suggestions for a query.
func (c *Client) SearchSuggestions(ctx context.Context, query string, limit int) ([]string, error) {
	return c.fetchStrings(ctx, "search-suggestions/"+url.PathEscape(query), limit)
}

// Categories returns the curated browse categories.
func (c *Client) Categories(ctx context.Context) ([]provider.Category, error) {
	var response categoriesResponse
	if err := c.get(ctx, "gifs/categories", url.Values{}, &response); err != nil {
		return nil, err
	}

	categories := make([]provider.Category, 0, len(response.Data.Categories))
	for _, cat := range response.Data.Categories {
		categories = append(categories, provider.Category{
			Name:       cat.Category,
			Query:      cat.Query,
			PreviewURL: cat.PreviewURL,
		})
	}
	return categories, nil
}

func (c *Client) fetchStrings(ctx context.Context, endpoint string, limit int) ([]string, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}

	var response stringListResponse
	if err := c.get(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, params url.Values, page int) (*provider.Page, error) {
	var response gifResponse
	if err := c.get(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	results := make([]provider.Result, 0, len(response.Data.Data))
	for _, gif := range response.Data.Data {
		// HD provides the full-quality assets, MD the display dimensions.
		hd := gif.File.HD
		md := gif.File.MD

		result := provider.Result{
			ID:     gif.Slug,
			Title:  gif.Title,
			URL:    fmt.Sprintf("https://klipy.com/gifs/%s", gif.Slug),
			GifURL: hd.Gif.URL,
			Width:  md.Gif.Width,
			Height: md.Gif.Height,
		}
		if hd.MP4 != nil {
			result.MP4URL = &hd.MP4.URL
		}
		results = append(results, result)
	}

	resolved := page
	if response.Data.CurrentPage != nil {
		resolved = *response.Data.CurrentPage
	}
	total := 0
	if response.Data.Total != nil {
		total = *response.Data.Total
	}

	return &provider.Page{Results: results, TotalCount: total, Page: resolved}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	// Klipy embeds the API key in the request path.
	fullURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiKey, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build Klipy request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Klipy API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Klipy API returned error status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse Klipy API response: %w", err)
	}
	return nil
}
