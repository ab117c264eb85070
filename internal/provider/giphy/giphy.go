// Package giphy translates the Giphy GIF API into the shared provider shape.
package giphy

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

const defaultBaseURL = "https://api.giphy.com/v1/gifs"

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
	return models.SourceGiphy
}

type searchResponse struct {
	Data       []giphyGif `json:"data"`
	Pagination struct {
		TotalCount int `json:"total_count"`
		Count      int `json:"count"`
		Offset     int `json:"offset"`
	} `json:"pagination"`
}

type giphyGif struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Images struct {
		Original giphyImage `json:"original"`
	} `json:"images"`
}

// Giphy reports dimensions as strings.
type giphyImage struct {
	URL    string  `json:"url"`
	Width  string  `json:"width"`
	Height string  `json:"height"`
	MP4    *string `json:"mp4"`
}

func (c *Client) Search(ctx context.Context, query string, limit, page int) (*provider.Page, error) {
	params := url.Values{
		"api_key": {c.apiKey},
		"q":       {query},
		"limit":   {strconv.Itoa(limit)},
		"offset":  {strconv.Itoa(pageToOffset(page, limit))},
		"rating":  {"pg-13"},
		"lang":    {"en"},
	}
	return c.fetchPage(ctx, "search", params, page)
}

func (c *Client) Trending(ctx context.Context, limit, page int) (*provider.Page, error) {
	params := url.Values{
		"api_key": {c.apiKey},
		"limit":   {strconv.Itoa(limit)},
		"offset":  {strconv.Itoa(pageToOffset(page, limit))},
		"rating":  {"pg-13"},
	}
	return c.fetchPage(ctx, "trending", params, page)
}

// pageToOffset converts the contract's 1-based page numbers to Giphy's
// offset pagination.
func pageToOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, params url.Values, page int) (*provider.Page, error) {
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Giphy request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Giphy API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Giphy API returned error status: %s", resp.Status)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse Giphy API response: %w", err)
	}

	results := make([]provider.Result, 0, len(response.Data))
	for _, gif := range response.Data {
		original := gif.Images.Original
		width, _ := strconv.Atoi(original.Width)
		height, _ := strconv.Atoi(original.Height)

		result := provider.Result{
			ID:     gif.ID,
			Title:  gif.Title,
			URL:    gif.URL,
			GifURL: original.URL,
			Width:  width,
			Height: height,
		}
		if original.MP4 != nil && *original.MP4 != "" {
			result.MP4URL = original.MP4
		}
		results = append(results, result)
	}

	return &provider.Page{
		Results:    results,
		TotalCount: response.Pagination.TotalCount,
		Page:       page,
	}, nil
}
