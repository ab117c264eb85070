package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MediaType classifies a favorite into one of the three media categories
// used to pick a storage subdirectory.
type MediaType string

const (
	MediaTypeGif   MediaType = "gif"
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (m MediaType) String() string {
	return string(m)
}

// ParseMediaType is case-insensitive on input and canonical-lowercase on
// output. Unrecognized strings are an error; callers decide whether that is
// fatal or a reason to fall back to a default.
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(s) {
	case "gif":
		return MediaTypeGif, nil
	case "image":
		return MediaTypeImage, nil
	case "video":
		return MediaTypeVideo, nil
	default:
		return "", fmt.Errorf("unknown media type: %q", s)
	}
}

// MediaTypeForExtension maps a file extension (with or without the leading
// dot) to a media category. Unknown extensions default to gif rather than
// being rejected.
func MediaTypeForExtension(ext string) MediaType {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "gif":
		return MediaTypeGif
	case "png", "jpg", "jpeg", "webp":
		return MediaTypeImage
	case "mp4", "webm", "mov":
		return MediaTypeVideo
	default:
		return MediaTypeGif
	}
}

// Source records where a favorite came from.
type Source string

const (
	SourceKlipy  Source = "klipy"
	SourceGiphy  Source = "giphy"
	SourceLocal  Source = "local"
	SourceUpload Source = "upload"
)

func (s Source) String() string {
	return string(s)
}

func ParseSource(s string) (Source, error) {
	switch strings.ToLower(s) {
	case "klipy":
		return SourceKlipy, nil
	case "giphy":
		return SourceGiphy, nil
	case "local":
		return SourceLocal, nil
	case "upload":
		return SourceUpload, nil
	default:
		return "", fmt.Errorf("unknown source: %q", s)
	}
}

// ErrUnreferenceable is returned when a favorite references no media at all:
// no local file, no secondary rendition, and no remote URL.
var ErrUnreferenceable = errors.New("favorite has no filepath, mp4_filepath or gif_url")

// Favorite is a saved media item. ID is nil until the store assigns one.
// Filepath is the canonical, clipboard-pasteable asset; MP4Filepath is an
// optional video-friendly rendition used for display. GifURL is kept as a
// remote fallback independent of local caching.
type Favorite struct {
	ID          *int64     `json:"id"`
	Filename    string     `json:"filename"`
	Filepath    *string    `json:"filepath"`
	MP4Filepath *string    `json:"mp4_filepath"`
	GifURL      *string    `json:"gif_url"`
	MediaType   MediaType  `json:"media_type"`
	Source      *Source    `json:"source"`
	SourceID    *string    `json:"source_id"`
	SourceURL   *string    `json:"source_url"`
	Tags        []string   `json:"tags"`
	CustomTags  []string   `json:"custom_tags"`
	Description *string    `json:"description"`
	Width       *int       `json:"width"`
	Height      *int       `json:"height"`
	FileSize    *int64     `json:"file_size"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsed    *time.Time `json:"last_used"`
	UseCount    int        `json:"use_count"`
}

// NewFavorite builds an unpersisted favorite: identity absent, counters
// zeroed, CreatedAt fixed at construction.
func NewFavorite(filename string, filepath *string, mediaType MediaType) Favorite {
	return Favorite{
		Filename:   filename,
		Filepath:   filepath,
		MediaType:  mediaType,
		Tags:       []string{},
		CustomTags: []string{},
		CreatedAt:  time.Now().UTC(),
	}
}

func (f Favorite) WithSource(source Source, sourceID, sourceURL *string) Favorite {
	f.Source = &source
	f.SourceID = sourceID
	f.SourceURL = sourceURL
	return f
}

func (f Favorite) WithGifURL(url string) Favorite {
	f.GifURL = &url
	return f
}

func (f Favorite) WithDimensions(width, height int) Favorite {
	f.Width = &width
	f.Height = &height
	return f
}

func (f Favorite) WithTags(tags []string) Favorite {
	f.Tags = tags
	return f
}

// Validate checks the construction invariants: a non-empty display name, at
// least one way to reference the media, and enum fields that are actual
// members of their enums. The store refuses rows it could not read back.
func (f *Favorite) Validate() error {
	if f.Filename == "" {
		return errors.New("favorite filename must not be empty")
	}
	if f.Filepath == nil && f.MP4Filepath == nil && f.GifURL == nil {
		return ErrUnreferenceable
	}
	if _, err := ParseMediaType(string(f.MediaType)); err != nil {
		return err
	}
	if f.Source != nil {
		if _, err := ParseSource(string(*f.Source)); err != nil {
			return err
		}
	}
	return nil
}
