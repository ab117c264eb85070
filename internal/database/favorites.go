package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gifdock/gifdock/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// timeLayout is RFC 3339 with a fixed-width fraction so that stored UTC
// timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FavoritesStore is the row-level access layer for the favorites table.
type FavoritesStore struct {
	db *gorm.DB
}

type favoriteRow struct {
	ID          int64          `gorm:"column:id;primaryKey"`
	Filename    string         `gorm:"column:filename"`
	Filepath    *string        `gorm:"column:filepath"`
	MP4Filepath *string        `gorm:"column:mp4_filepath"`
	GifURL      *string        `gorm:"column:gif_url"`
	MediaType   string         `gorm:"column:media_type"`
	Source      *string        `gorm:"column:source"`
	SourceID    *string        `gorm:"column:source_id"`
	SourceURL   *string        `gorm:"column:source_url"`
	Tags        datatypes.JSON `gorm:"column:tags"`
	CustomTags  datatypes.JSON `gorm:"column:custom_tags"`
	Description *string        `gorm:"column:description"`
	Width       *int           `gorm:"column:width"`
	Height      *int           `gorm:"column:height"`
	FileSize    *int64         `gorm:"column:file_size"`
	CreatedAt   string         `gorm:"column:created_at"`
	LastUsed    *string        `gorm:"column:last_used"`
	UseCount    int            `gorm:"column:use_count"`
}

func (favoriteRow) TableName() string {
	return "favorites"
}

// Create inserts the favorite and returns its assigned id.
func (s *FavoritesStore) Create(favorite *models.Favorite) (int64, error) {
	if err := favorite.Validate(); err != nil {
		return 0, err
	}

	row, err := newFavoriteRow(favorite)
	if err != nil {
		return 0, err
	}

	if err := s.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to insert favorite %q: %w", favorite.Filename, err)
	}
	return row.ID, nil
}

// GetByID returns nil without error when no row exists.
func (s *FavoritesStore) GetByID(id int64) (*models.Favorite, error) {
	var row favoriteRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch favorite %d: %w", id, err)
	}

	favorite, err := rowToFavorite(row)
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// GetAll returns every favorite, most recently created first.
func (s *FavoritesStore) GetAll() ([]models.Favorite, error) {
	var rows []favoriteRow
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}
	return rowsToFavorites(rows)
}

// Search matches query as a case-insensitive substring of filename, tags,
// custom tags or description, ordered most-used then most-recent first. An
// empty query returns an empty result, never an error.
func (s *FavoritesStore) Search(query string) ([]models.Favorite, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Favorite{}, nil
	}

	term := "%" + strings.ToLower(query) + "%"

	var rows []favoriteRow
	err := s.db.
		Where("LOWER(filename) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(custom_tags) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term, term).
		Order("use_count DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search favorites for %q: %w", query, err)
	}
	return rowsToFavorites(rows)
}

// Update replaces all mutable fields of an already-persisted favorite.
// CreatedAt is never touched.
func (s *FavoritesStore) Update(favorite *models.Favorite) error {
	if favorite.ID == nil {
		return ErrMissingID
	}
	if err := favorite.Validate(); err != nil {
		return err
	}

	row, err := newFavoriteRow(favorite)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"filename":     row.Filename,
		"filepath":     row.Filepath,
		"mp4_filepath": row.MP4Filepath,
		"gif_url":      row.GifURL,
		"media_type":   row.MediaType,
		"source":       row.Source,
		"source_id":    row.SourceID,
		"source_url":   row.SourceURL,
		"tags":         row.Tags,
		"custom_tags":  row.CustomTags,
		"description":  row.Description,
		"width":        row.Width,
		"height":       row.Height,
		"file_size":    row.FileSize,
		"last_used":    row.LastUsed,
		"use_count":    row.UseCount,
	}

	err = s.db.Model(&favoriteRow{}).Where("id = ?", *favorite.ID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update favorite %d: %w", *favorite.ID, err)
	}
	return nil
}

// Delete removes the row. Deleting a nonexistent id is a no-op.
func (s *FavoritesStore) Delete(id int64) error {
	if err := s.db.Delete(&favoriteRow{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete favorite %d: %w", id, err)
	}
	return nil
}

// IncrementUseCount bumps the counter and stamps last_used in a single
// statement so concurrent invocations never lose increments.
func (s *FavoritesStore) IncrementUseCount(id int64) error {
	now := time.Now().UTC().Format(timeLayout)
	err := s.db.Exec(
		"UPDATE favorites SET use_count = use_count + 1, last_used = ? WHERE id = ?",
		now, id,
	).Error
	if err != nil {
		return fmt.Errorf("failed to increment use count for favorite %d: %w", id, err)
	}
	return nil
}

func newFavoriteRow(f *models.Favorite) (favoriteRow, error) {
	tags, err := marshalTags(f.Tags)
	if err != nil {
		return favoriteRow{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	customTags, err := marshalTags(f.CustomTags)
	if err != nil {
		return favoriteRow{}, fmt.Errorf("failed to encode custom tags: %w", err)
	}

	row := favoriteRow{
		Filename:    f.Filename,
		Filepath:    f.Filepath,
		MP4Filepath: f.MP4Filepath,
		GifURL:      f.GifURL,
		MediaType:   f.MediaType.String(),
		SourceID:    f.SourceID,
		SourceURL:   f.SourceURL,
		Tags:        tags,
		CustomTags:  customTags,
		Description: f.Description,
		Width:       f.Width,
		Height:      f.Height,
		FileSize:    f.FileSize,
		CreatedAt:   f.CreatedAt.UTC().Format(timeLayout),
		UseCount:    f.UseCount,
	}
	if f.ID != nil {
		row.ID = *f.ID
	}
	if f.Source != nil {
		source := f.Source.String()
		row.Source = &source
	}
	if f.LastUsed != nil {
		lastUsed := f.LastUsed.UTC().Format(timeLayout)
		row.LastUsed = &lastUsed
	}
	return row, nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func rowToFavorite(row favoriteRow) (models.Favorite, error) {
	mediaType, err := models.ParseMediaType(row.MediaType)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("favorite %d has an invalid media type: %w", row.ID, err)
	}

	var source *models.Source
	if row.Source != nil {
		parsed, err := models.ParseSource(*row.Source)
		if err != nil {
			return models.Favorite{}, fmt.Errorf("favorite %d has an invalid source: %w", row.ID, err)
		}
		source = &parsed
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("favorite %d has an invalid created_at: %w", row.ID, err)
	}

	var lastUsed *time.Time
	if row.LastUsed != nil {
		parsed, err := time.Parse(time.RFC3339Nano, *row.LastUsed)
		if err != nil {
			return models.Favorite{}, fmt.Errorf("favorite %d has an invalid last_used: %w", row.ID, err)
		}
		lastUsed = &parsed
	}

	var tags []string
	if err := json.Unmarshal(row.Tags, &tags); err != nil || tags == nil {
		tags = []string{}
	}
	var customTags []string
	if err := json.Unmarshal(row.CustomTags, &customTags); err != nil || customTags == nil {
		customTags = []string{}
	}

	id := row.ID
	return models.Favorite{
		ID:          &id,
		Filename:    row.Filename,
		Filepath:    row.Filepath,
		MP4Filepath: row.MP4Filepath,
		GifURL:      row.GifURL,
		MediaType:   mediaType,
		Source:      source,
		SourceID:    row.SourceID,
		SourceURL:   row.SourceURL,
		Tags:        tags,
		CustomTags:  customTags,
		Description: row.Description,
		Width:       row.Width,
		Height:      row.Height,
		FileSize:    row.FileSize,
		CreatedAt:   createdAt,
		LastUsed:    lastUsed,
		UseCount:    row.UseCount,
	}, nil
}

func rowsToFavorites(rows []favoriteRow) ([]models.Favorite, error) {
	favorites := make([]models.Favorite, 0, len(rows))
	for _, row := range rows {
		favorite, err := rowToFavorite(row)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}
	return favorites, nil
}
