// Package storage persists uploaded images on local disk. Files get opaque
// uuid names; a downscaled thumbnail is written next to each original.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"atelier/internal/models"
	"atelier/internal/observability"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	MaxUploadSizeBytes = 10 * 1024 * 1024
	ThumbnailMaxSize   = 256
	JPEGQuality        = 82
)

// UploadResult carries the public URLs of a stored image.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// LocalStore writes uploads beneath a base directory and serves them from a
// base URL path.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates the base directory if needed and returns a store.
func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save validates and stores an uploaded image, returning public URLs for the
// original and its thumbnail.
func (s *LocalStore) Save(content []byte) (*UploadResult, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if len(content) > MaxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	if !isAllowedImageMIME(http.DetectContentType(content)) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	name := uuid.NewString()
	ext := formatExtension(format)

	originalName := name + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, originalName), content, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	thumbName := name + "_thumb.jpg"
	thumb, err := encodeJPEG(resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize), JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, thumbName), thumb, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.UploadsTotal.WithLabelValues(format).Inc()

	return &UploadResult{
		URL:          s.baseURL + "/" + originalName,
		ThumbnailURL: s.baseURL + "/" + thumbName,
	}, nil
}

func isAllowedImageMIME(contentType string) bool {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	switch strings.TrimSpace(strings.ToLower(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func formatExtension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	default:
		return "." + format
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
