package models_test

import (
	"testing"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMediaTypeRoundTrip(t *testing.T) {
	assert.Equal(t, "gif", models.MediaTypeGif.String())
	assert.Equal(t, "image", models.MediaTypeImage.String())
	assert.Equal(t, "video", models.MediaTypeVideo.String())

	parsed, err := models.ParseMediaType("GIF")
	assert.NoError(t, err)
	assert.Equal(t, models.MediaTypeGif, parsed)

	parsed, err = models.ParseMediaType("Image")
	assert.NoError(t, err)
	assert.Equal(t, models.MediaTypeImage, parsed)

	_, err = models.ParseMediaType("sticker")
	assert.ErrorContains(t, err, "unknown media type")
	assert.ErrorContains(t, err, "sticker")
}

func TestSourceRoundTrip(t *testing.T) {
	for _, source := range []models.Source{
		models.SourceKlipy, models.SourceGiphy, models.SourceLocal, models.SourceUpload,
	} {
		parsed, err := models.ParseSource(source.String())
		assert.NoError(t, err)
		assert.Equal(t, source, parsed)
	}

	_, err := models.ParseSource("tumblr")
	assert.ErrorContains(t, err, "unknown source")
}

func TestMediaTypeForExtension(t *testing.T) {
	assert.Equal(t, models.MediaTypeGif, models.MediaTypeForExtension(".gif"))
	assert.Equal(t, models.MediaTypeImage, models.MediaTypeForExtension("png"))
	assert.Equal(t, models.MediaTypeImage, models.MediaTypeForExtension(".JPEG"))
	assert.Equal(t, models.MediaTypeImage, models.MediaTypeForExtension(".webp"))
	assert.Equal(t, models.MediaTypeVideo, models.MediaTypeForExtension(".mp4"))
	assert.Equal(t, models.MediaTypeVideo, models.MediaTypeForExtension(".mov"))

	// Unknown extensions are a permissive default, not a rejection.
	assert.Equal(t, models.MediaTypeGif, models.MediaTypeForExtension(".xyz"))
	assert.Equal(t, models.MediaTypeGif, models.MediaTypeForExtension(""))
}

func TestNewFavorite(t *testing.T) {
	path := "/media/gifs/test.gif"
	favorite := models.NewFavorite("test.gif", &path, models.MediaTypeGif)

	assert.Nil(t, favorite.ID)
	assert.Equal(t, "test.gif", favorite.Filename)
	assert.Equal(t, &path, favorite.Filepath)
	assert.Equal(t, models.MediaTypeGif, favorite.MediaType)
	assert.Equal(t, 0, favorite.UseCount)
	assert.Empty(t, favorite.Tags)
	assert.Empty(t, favorite.CustomTags)
	assert.Nil(t, favorite.LastUsed)
	assert.False(t, favorite.CreatedAt.IsZero())
}

func TestFavoriteBuilders(t *testing.T) {
	path := "/media/gifs/test.gif"
	sourceID := "abc123"
	sourceURL := "https://klipy.com/gifs/abc123"

	favorite := models.NewFavorite("test.gif", &path, models.MediaTypeGif).
		WithSource(models.SourceKlipy, &sourceID, &sourceURL).
		WithGifURL("https://cdn.example.com/abc123.gif").
		WithDimensions(500, 300).
		WithTags([]string{"funny", "cat"})

	assert.Equal(t, models.SourceKlipy, *favorite.Source)
	assert.Equal(t, "abc123", *favorite.SourceID)
	assert.Equal(t, sourceURL, *favorite.SourceURL)
	assert.Equal(t, "https://cdn.example.com/abc123.gif", *favorite.GifURL)
	assert.Equal(t, 500, *favorite.Width)
	assert.Equal(t, 300, *favorite.Height)
	assert.Equal(t, []string{"funny", "cat"}, favorite.Tags)
}

func TestFavoriteValidate(t *testing.T) {
	path := "/media/gifs/test.gif"

	t.Run("valid with filepath", func(t *testing.T) {
		favorite := models.NewFavorite("test.gif", &path, models.MediaTypeGif)
		assert.NoError(t, favorite.Validate())
	})

	t.Run("valid with only gif_url", func(t *testing.T) {
		favorite := models.NewFavorite("test.gif", nil, models.MediaTypeGif).
			WithGifURL("https://cdn.example.com/test.gif")
		assert.NoError(t, favorite.Validate())
	})

	t.Run("unreferenceable", func(t *testing.T) {
		favorite := models.NewFavorite("test.gif", nil, models.MediaTypeGif)
		assert.ErrorIs(t, favorite.Validate(), models.ErrUnreferenceable)
	})

	t.Run("empty filename", func(t *testing.T) {
		favorite := models.NewFavorite("", &path, models.MediaTypeGif)
		assert.Error(t, favorite.Validate())
	})

	t.Run("unknown media type", func(t *testing.T) {
		favorite := models.NewFavorite("test.gif", &path, models.MediaType("sticker"))
		assert.ErrorContains(t, favorite.Validate(), "unknown media type")
	})

	t.Run("unknown source", func(t *testing.T) {
		source := models.Source("tumblr")
		favorite := models.NewFavorite("test.gif", &path, models.MediaTypeGif)
		favorite.Source = &source
		assert.ErrorContains(t, favorite.Validate(), "unknown source")
	})
}
