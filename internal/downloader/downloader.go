package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/google/uuid"
)

const (
	gifsDir   = "gifs"
	imagesDir = "images"
	videosDir = "videos"
	tempDir   = "tmp"
)

// Downloader owns the managed media tree: a root directory with one fixed
// subdirectory per media category, plus a staging area for temporary
// downloads. Download destinations are keyed by filename, so a file that
// already exists is treated as a cache hit and never re-fetched.
type Downloader struct {
	client   *http.Client
	mediaDir string
}

// New builds a downloader rooted at mediaDir. Pass a client to control
// transport concerns such as timeouts; nil uses a default client with none.
func New(mediaDir string, client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{client: client, mediaDir: mediaDir}
}

func (d *Downloader) MediaDir() string {
	return d.mediaDir
}

// EnsureDirectories creates the media tree. Idempotent and safe to call
// repeatedly or concurrently.
func (d *Downloader) EnsureDirectories() error {
	directories := []string{
		d.mediaDir,
		filepath.Join(d.mediaDir, gifsDir),
		filepath.Join(d.mediaDir, imagesDir),
		filepath.Join(d.mediaDir, videosDir),
		filepath.Join(d.mediaDir, tempDir),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func categoryDir(mediaType models.MediaType) string {
	switch mediaType {
	case models.MediaTypeImage:
		return imagesDir
	case models.MediaTypeVideo:
		return videosDir
	default:
		return gifsDir
	}
}

// Download fetches url into the category subdirectory for mediaType under
// the given filename. If the destination already exists it is returned
// immediately without any network I/O; callers must pick collision-resistant
// filenames, typically derived from a provider item id. Any path components
// in filename are stripped so the file always lands inside the tree.
func (d *Downloader) Download(ctx context.Context, url, filename string, mediaType models.MediaType) (string, error) {
	if err := d.EnsureDirectories(); err != nil {
		return "", err
	}

	dest := filepath.Join(d.mediaDir, categoryDir(mediaType), filepath.Base(filename))
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	if err := d.fetchToFile(ctx, url, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// DownloadFromProvider fetches the primary gif asset and, when a secondary
// mp4 rendition URL is supplied, that rendition as well. Both files are
// keyed by itemID so repeated calls are idempotent cache hits.
func (d *Downloader) DownloadFromProvider(ctx context.Context, gifURL string, mp4URL *string, itemID string) (string, *string, error) {
	gifName := fmt.Sprintf("%s.%s", itemID, urlExtension(gifURL, "gif"))
	gifPath, err := d.Download(ctx, gifURL, gifName, models.MediaTypeGif)
	if err != nil {
		return "", nil, err
	}

	var mp4Path *string
	if mp4URL != nil && *mp4URL != "" {
		mp4Name := fmt.Sprintf("%s.%s", itemID, urlExtension(*mp4URL, "mp4"))
		downloaded, err := d.Download(ctx, *mp4URL, mp4Name, models.MediaTypeVideo)
		if err != nil {
			return "", nil, err
		}
		mp4Path = &downloaded
	}
	return gifPath, mp4Path, nil
}

// ImportLocalFile copies sourcePath into the managed tree under its original
// filename, classified by extension. Re-importing the same filename
// overwrites silently.
func (d *Downloader) ImportLocalFile(sourcePath string) (string, error) {
	if err := d.EnsureDirectories(); err != nil {
		return "", err
	}

	filename := filepath.Base(sourcePath)
	if filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("invalid source file path %q", sourcePath)
	}

	mediaType := models.MediaTypeForExtension(filepath.Ext(sourcePath))
	dest := filepath.Join(d.mediaDir, categoryDir(mediaType), filename)

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file %s: %w", sourcePath, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dest, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy %s to %s: %w", sourcePath, dest, err)
	}
	return dest, nil
}

// DownloadTemp fetches url into the staging directory outside the permanent
// category tree, for preview-before-commit flows. No cache check: a preview
// always reflects the current remote content.
func (d *Downloader) DownloadTemp(ctx context.Context, url, filename string) (string, error) {
	if err := d.EnsureDirectories(); err != nil {
		return "", err
	}

	dest := filepath.Join(d.mediaDir, tempDir, filepath.Base(filename))
	if err := d.fetchToFile(ctx, url, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// fetchToFile streams the response body to a staging file next to dest and
// renames it into place on success, so an interrupted download never leaves
// a truncated file at the destination path.
func (d *Downloader) fetchToFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to download %s: HTTP %s", url, resp.Status)
	}

	staging := fmt.Sprintf("%s.part-%s", dest, uuid.New().String()[:8])
	file, err := os.Create(staging)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", staging, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(staging)
		return fmt.Errorf("failed to write %s: %w", staging, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(staging)
		return fmt.Errorf("failed to flush %s: %w", staging, err)
	}

	if err := os.Rename(staging, dest); err != nil {
		os.Remove(staging)
		return fmt.Errorf("failed to move %s into place: %w", staging, err)
	}
	return nil
}

// urlExtension extracts the file extension from a URL path, falling back
// when the path has none.
func urlExtension(rawURL, fallback string) string {
	ext := strings.TrimPrefix(path.Ext(strings.SplitN(rawURL, "?", 2)[0]), ".")
	if ext == "" {
		return fallback
	}
	return strings.ToLower(ext)
}

// HashFilename derives a stable, collision-resistant filename from content,
// for callers that want hash-addressed rather than id-addressed storage.
// The extension may be given with or without its leading dot.
func HashFilename(content []byte, extension string) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%s.%s", hex.EncodeToString(sum[:]), strings.TrimPrefix(extension, "."))
}

// FileSize returns the size of the file at path in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file metadata for %s: %w", path, err)
	}
	return info.Size(), nil
}

// DeleteFile removes the file at path. Unlike the store's delete-by-id,
// deleting a nonexistent file is an error; callers check existence first.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether a regular file exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
