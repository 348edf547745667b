package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image format, expected data:image/...;base64 string")

// SaveDataURIImage decodes a data:image/<ext>;base64,... string and writes
// it under mediaDir/<subdir>. It returns the media-relative path of the
// stored file.
func SaveDataURIImage(data, mediaDir, subdir string) (string, error) {
	if !strings.HasPrefix(data, "data:image") {
		return "", ErrInvalidImage
	}

	header, encoded, found := strings.Cut(data, ";base64,")
	if !found {
		return "", ErrInvalidImage
	}

	ext := header[strings.LastIndex(header, "/")+1:]
	if ext == "" {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidImage
	}

	dir := filepath.Join(mediaDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// AbsoluteURL turns a server-relative path into an absolute URL for the
// current request. Without a request context the relative path is kept.
func AbsoluteURL(c *gin.Context, path string) string {
	if path == "" || c == nil || c.Request == nil {
		return path
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + path
}

// MediaURL builds the absolute URL of a stored media file.
func MediaURL(c *gin.Context, relPath string) string {
	if relPath == "" {
		return ""
	}
	return AbsoluteURL(c, "/media/"+relPath)
}
