package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime"
	"net/http"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"irysworld/internal/config"
	"irysworld/internal/models"
)

const (
	DefaultAvatarMaxUploadSizeMB = 5
	DefaultAvatarSize            = 256
	DefaultAvatarMaxDimension    = 4096
	JPEGQuality                  = 82
)

// UploadAvatarInput is a raw profile picture upload.
type UploadAvatarInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// AvatarService turns uploads into square JPEG data URIs that can be stored
// directly on the profile.
type AvatarService struct {
	maxUploadSizeBytes int64
	size               int
	maxDimension       int
}

func NewAvatarService(cfg *config.Config) *AvatarService {
	maxUploadSizeMB := DefaultAvatarMaxUploadSizeMB
	size := DefaultAvatarSize
	maxDimension := DefaultAvatarMaxDimension
	if cfg != nil {
		if cfg.AvatarMaxDimension > 0 {
			maxDimension = cfg.AvatarMaxDimension
		}
		if cfg.AvatarMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.AvatarMaxUploadSizeMB
		}
		if cfg.AvatarSize > 0 {
			size = cfg.AvatarSize
		}
	}
	return &AvatarService{
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		size:               size,
		maxDimension:       maxDimension,
	}
}

// Process validates, crops, scales and encodes an avatar, returning a data URI.
func (s *AvatarService) Process(_ context.Context, in UploadAvatarInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	// Decoders allocate from the header dimensions before reading pixels.
	header, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if header.Width > s.maxDimension || header.Height > s.maxDimension {
		return "", models.NewValidationError("Image dimensions too large")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	sourceMimeType := decodedFormatToMime(format)
	if sourceMimeType == "" {
		return "", models.NewValidationError("Unsupported image format")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, sourceMimeType) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	square := cropSquare(decoded)
	scaled := resizeToFit(square, s.size, s.size)

	encoded, err := encodeJPEG(scaled, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// cropSquare keeps the centred square of src.
func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}
	side := min(w, h)
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
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

	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

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

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
