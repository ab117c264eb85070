package settings

import (
	"sync"

	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/response"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the settings record over the command boundary.
type Handler struct {
	db *database.Database
	mu *sync.Mutex
}

func NewHandler(db *database.Database, mu *sync.Mutex) *Handler {
	return &Handler{db: db, mu: mu}
}

func (h *Handler) Get(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	settings, err := h.db.Settings().Get()
	if err != nil {
		return response.InternalError(c, "Failed to get settings: "+err.Error())
	}
	return response.Success(c, settings, "")
}

func (h *Handler) Save(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return response.BadRequest(c, "Invalid settings payload")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.db.Settings().Save(&settings); err != nil {
		return response.InternalError(c, "Failed to save settings: "+err.Error())
	}
	return response.Success(c, settings, "Settings saved")
}

type updateRequest struct {
	Value string `json:"value"`
}

// Update upserts one key. The value is the raw JSON encoding stored as-is.
func (h *Handler) Update(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return response.BadRequest(c, "Setting key is required")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil || req.Value == "" {
		return response.BadRequest(c, "Setting value is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.db.Settings().UpdateKey(key, req.Value); err != nil {
		return response.InternalError(c, "Failed to update setting: "+err.Error())
	}
	return response.Success(c, nil, "Setting updated")
}
