package favorites

import (
	"strconv"
	"sync"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Handler exposes the favorite flows over the command boundary. Every
// command takes the shared state lock, so at most one in-flight command
// touches shared state at a time.
type Handler struct {
	svc *Service
	mu  *sync.Mutex
}

func NewHandler(svc *Service, mu *sync.Mutex) *Handler {
	return &Handler{svc: svc, mu: mu}
}

func (h *Handler) List(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	favorites, err := h.svc.GetAll()
	if err != nil {
		return response.InternalError(c, "Failed to get favorites: "+err.Error())
	}
	return response.Success(c, favorites, "")
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid favorite id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	favorite, err := h.svc.GetByID(id)
	if err != nil {
		return response.InternalError(c, "Failed to get favorite: "+err.Error())
	}
	if favorite == nil {
		return response.NotFound(c, "Favorite")
	}
	return response.Success(c, favorite, "")
}

func (h *Handler) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	h.mu.Lock()
	defer h.mu.Unlock()

	favorites, err := h.svc.Search(query)
	if err != nil {
		return response.InternalError(c, "Failed to search favorites: "+err.Error())
	}
	return response.Success(c, favorites, "")
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var favorite models.Favorite
	if err := c.BodyParser(&favorite); err != nil {
		return response.BadRequest(c, "Invalid favorite payload")
	}
	sanitizeFavorite(&favorite)

	h.mu.Lock()
	defer h.mu.Unlock()

	created, err := h.svc.Create(favorite)
	if err != nil {
		return response.BadRequest(c, "Failed to add favorite: "+err.Error())
	}
	return response.Created(c, created, "Favorite added")
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid favorite id")
	}

	var favorite models.Favorite
	if err := c.BodyParser(&favorite); err != nil {
		return response.BadRequest(c, "Invalid favorite payload")
	}
	favorite.ID = &id
	sanitizeFavorite(&favorite)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.svc.Update(&favorite); err != nil {
		return response.BadRequest(c, "Failed to update favorite: "+err.Error())
	}
	return response.Success(c, favorite, "Favorite updated")
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid favorite id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.svc.Delete(id); err != nil {
		return response.InternalError(c, "Failed to delete favorite: "+err.Error())
	}
	return response.Success(c, nil, "Favorite deleted")
}

func (h *Handler) IncrementUse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid favorite id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.svc.IncrementUseCount(id); err != nil {
		return response.InternalError(c, "Failed to increment use count: "+err.Error())
	}
	return response.Success(c, nil, "Use count incremented")
}

type importRequest struct {
	FilePath string `json:"file_path"`
}

func (h *Handler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil || req.FilePath == "" {
		return response.BadRequest(c, "file_path is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	favorite, err := h.svc.ImportLocalFile(req.FilePath)
	if err != nil {
		return response.InternalError(c, "Failed to import file: "+err.Error())
	}
	return response.Created(c, favorite, "File imported")
}

type remoteRequest struct {
	Source    string   `json:"source"`
	SourceID  string   `json:"source_id"`
	SourceURL string   `json:"source_url"`
	GifURL    string   `json:"gif_url"`
	MP4URL    *string  `json:"mp4_url"`
	Title     string   `json:"title"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Tags      []string `json:"tags"`
}

func (h *Handler) AddRemote(c *fiber.Ctx) error {
	var req remoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid payload")
	}
	if req.GifURL == "" || req.SourceID == "" {
		return response.BadRequest(c, "gif_url and source_id are required")
	}

	source, err := models.ParseSource(req.Source)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	favorite, err := h.svc.AddRemoteFavorite(c.Context(), RemoteFavoriteInput{
		Source:    source,
		SourceID:  req.SourceID,
		SourceURL: req.SourceURL,
		GifURL:    req.GifURL,
		MP4URL:    req.MP4URL,
		Title:     policy.Sanitize(req.Title),
		Width:     req.Width,
		Height:    req.Height,
		Tags:      sanitizeAll(req.Tags),
	})
	if err != nil {
		return response.InternalError(c, "Failed to add favorite: "+err.Error())
	}
	return response.Created(c, favorite, "Favorite added")
}

type tempDownloadRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (h *Handler) DownloadTemp(c *fiber.Ctx) error {
	var req tempDownloadRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" || req.Filename == "" {
		return response.BadRequest(c, "url and filename are required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	path, err := h.svc.DownloadTemp(c.Context(), req.URL, req.Filename)
	if err != nil {
		return response.InternalError(c, "Failed to download file: "+err.Error())
	}
	return response.Success(c, fiber.Map{"path": path}, "")
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// sanitizeFavorite strips markup from the user-supplied text fields.
func sanitizeFavorite(favorite *models.Favorite) {
	if favorite.Description != nil {
		clean := policy.Sanitize(*favorite.Description)
		favorite.Description = &clean
	}
	favorite.CustomTags = sanitizeAll(favorite.CustomTags)
}

func sanitizeAll(values []string) []string {
	if values == nil {
		return nil
	}
	clean := make([]string, len(values))
	for i, v := range values {
		clean[i] = policy.Sanitize(v)
	}
	return clean
}
