package favorites

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/downloader"
	"github.com/gifdock/gifdock/internal/models"
)

// Service composes the store and the downloader into the higher-level
// favorite flows: import a local file, add a remote provider result, delete
// a favorite together with its locally-owned files.
type Service struct {
	db *database.Database
	dl *downloader.Downloader
}

func NewService(db *database.Database, dl *downloader.Downloader) *Service {
	return &Service{db: db, dl: dl}
}

func (s *Service) GetAll() ([]models.Favorite, error) {
	return s.db.Favorites().GetAll()
}

func (s *Service) GetByID(id int64) (*models.Favorite, error) {
	return s.db.Favorites().GetByID(id)
}

func (s *Service) Search(query string) ([]models.Favorite, error) {
	return s.db.Favorites().Search(query)
}

// Create persists an already-constructed favorite and returns it with its
// assigned id.
func (s *Service) Create(favorite models.Favorite) (*models.Favorite, error) {
	id, err := s.db.Favorites().Create(&favorite)
	if err != nil {
		return nil, err
	}
	favorite.ID = &id
	return &favorite, nil
}

func (s *Service) Update(favorite *models.Favorite) error {
	return s.db.Favorites().Update(favorite)
}

func (s *Service) IncrementUseCount(id int64) error {
	return s.db.Favorites().IncrementUseCount(id)
}

// ImportLocalFile copies a file into the managed media tree and persists it
// as a favorite. Dimension probing and size measurement are best-effort:
// when they fail the fields simply stay absent.
func (s *Service) ImportLocalFile(sourcePath string) (*models.Favorite, error) {
	dest, err := s.dl.ImportLocalFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to import file: %w", err)
	}

	mediaType := models.MediaTypeForExtension(filepath.Ext(sourcePath))
	favorite := models.NewFavorite(filepath.Base(dest), &dest, mediaType)

	if width, height, err := imageDimensions(dest); err == nil {
		favorite = favorite.WithDimensions(width, height)
	}
	if size, err := downloader.FileSize(dest); err == nil {
		favorite.FileSize = &size
	}

	return s.Create(favorite)
}

// RemoteFavoriteInput carries one provider result selected by the user.
type RemoteFavoriteInput struct {
	Source   models.Source
	SourceID string
	// SourceURL is the provider page, GifURL the asset itself.
	SourceURL string
	GifURL    string
	MP4URL    *string
	Title     string
	Width     int
	Height    int
	Tags      []string
}

// AddRemoteFavorite downloads the gif asset plus the optional mp4 rendition,
// both keyed by the provider item id, and persists the favorite with its
// provenance fields set. The remote URL is retained as a fallback.
func (s *Service) AddRemoteFavorite(ctx context.Context, in RemoteFavoriteInput) (*models.Favorite, error) {
	itemID := fmt.Sprintf("%s_%s", in.Source, in.SourceID)
	gifPath, mp4Path, err := s.dl.DownloadFromProvider(ctx, in.GifURL, in.MP4URL, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to download media: %w", err)
	}

	sourceID := in.SourceID
	sourceURL := in.SourceURL
	favorite := models.NewFavorite(filepath.Base(gifPath), &gifPath, models.MediaTypeGif).
		WithGifURL(in.GifURL).
		WithSource(in.Source, &sourceID, &sourceURL)

	if in.Width > 0 && in.Height > 0 {
		favorite = favorite.WithDimensions(in.Width, in.Height)
	}
	if len(in.Tags) > 0 {
		favorite = favorite.WithTags(in.Tags)
	}
	if in.Title != "" {
		title := in.Title
		favorite.Description = &title
	}
	favorite.MP4Filepath = mp4Path
	if size, err := downloader.FileSize(gifPath); err == nil {
		favorite.FileSize = &size
	}

	return s.Create(favorite)
}

// Delete removes the favorite's locally-owned files first, then the row. A
// file that cannot be deleted aborts before the row delete so the store
// never loses track of an orphaned file. A bare remote URL is never touched,
// and an already-gone file is not an error.
func (s *Service) Delete(id int64) error {
	favorite, err := s.db.Favorites().GetByID(id)
	if err != nil {
		return err
	}

	if favorite != nil {
		for _, path := range []*string{favorite.Filepath, favorite.MP4Filepath} {
			if path == nil || !downloader.FileExists(*path) {
				continue
			}
			if err := downloader.DeleteFile(*path); err != nil {
				return fmt.Errorf("failed to delete media for favorite %d: %w", id, err)
			}
		}
	}

	return s.db.Favorites().Delete(id)
}

// DownloadTemp fetches a remote asset into the staging directory for
// preview-before-commit flows.
func (s *Service) DownloadTemp(ctx context.Context, url, filename string) (string, error) {
	return s.dl.DownloadTemp(ctx, url, filename)
}

func imageDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	return config.Width, config.Height, nil
}
