package search

import (
	"sync"

	"github.com/gifdock/gifdock/internal/response"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	svc *Service
	mu  *sync.Mutex
}

func NewHandler(svc *Service, mu *sync.Mutex) *Handler {
	return &Handler{svc: svc, mu: mu}
}

// Combined returns local matches plus one provider page in a single call.
func (h *Handler) Combined(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 20)
	page := c.QueryInt("page", 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.svc.Combined(c.Context(), query, limit, page)
	if err != nil {
		return response.InternalError(c, "Failed to search: "+err.Error())
	}
	return response.Success(c, result, "")
}

func (h *Handler) Provider(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 20)
	page := c.QueryInt("page", 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.svc.ProviderSearch(c.Context(), query, limit, page)
	if err != nil {
		return response.InternalError(c, "Failed to search provider: "+err.Error())
	}
	return response.Success(c, result, "")
}

func (h *Handler) Trending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	page := c.QueryInt("page", 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.svc.Trending(c.Context(), limit, page)
	if err != nil {
		return response.InternalError(c, "Failed to get trending results: "+err.Error())
	}
	return response.Success(c, result, "")
}

func (h *Handler) Autocomplete(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	suggestions, err := h.svc.Autocomplete(c.Context(), query, limit)
	if err != nil {
		return response.InternalError(c, "Failed to get autocomplete suggestions: "+err.Error())
	}
	return response.Success(c, suggestions, "")
}

func (h *Handler) Suggestions(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	suggestions, err := h.svc.SearchSuggestions(c.Context(), query, limit)
	if err != nil {
		return response.InternalError(c, "Failed to get search suggestions: "+err.Error())
	}
	return response.Success(c, suggestions, "")
}

func (h *Handler) Categories(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	categories, err := h.svc.Categories(c.Context())
	if err != nil {
		return response.InternalError(c, "Failed to get categories: "+err.Error())
	}
	return response.Success(c, categories, "")
}
