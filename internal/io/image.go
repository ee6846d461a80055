package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Supported image formats, as reported by image.Decode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// ImageService provides image processing operations for texture and sprite
// resources.
//
// ImageService is used to:
//   - Downscale images that exceed a maximum edge length
//   - Re-encode PNGs with the best compression level
//   - Re-encode JPEGs at a fixed quality
//
// Example usage:
//
//	svc := NewImageService()
//
//	data, _ := os.ReadFile("sprites/ship.png")
//	out, format, _ := svc.Optimize(ctx, data, 1024, 90)
//	// format == "png", out is the re-encoded image
type ImageService struct {
	encoder png.Encoder
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		encoder: png.Encoder{CompressionLevel: png.BestCompression},
	}
}

// Fit returns the dimensions of a width x height image scaled down to fit
// within maxWidth x maxHeight, preserving the aspect ratio. Images that
// already fit are returned unchanged. A non-positive maximum disables the
// limit for that axis.
//
// Example:
//
//	Fit(1500, 1000, 1000, 1000) // 1000, 666
//	Fit(800, 600, 1000, 1000)   // 800, 600
func Fit(width, height, maxWidth, maxHeight int) (int, int) {
	if maxWidth <= 0 {
		maxWidth = width
	}
	if maxHeight <= 0 {
		maxHeight = height
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

// ResizeImage scales img to fit within maxEdge x maxEdge. The original image
// is returned when no scaling is needed.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
func (s *ImageService) ResizeImage(ctx context.Context, img image.Image, maxEdge int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := Fit(bounds.Dx(), bounds.Dy(), maxEdge, maxEdge)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// Optimize decodes a PNG or JPEG image, downscales it to fit maxEdge and
// encodes it again in the same format.
//
// Parameters:
//   - ctx: Context checked between decode and encode
//   - data: Original image data (PNG or JPEG)
//   - maxEdge: Longest allowed edge in pixels (0 keeps the original size)
//   - quality: JPEG quality (1-100), ignored for PNG
//
// Returns the encoded bytes and the format name ("png" or "jpeg").
func (s *ImageService) Optimize(ctx context.Context, data []byte, maxEdge, quality int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	img, err = s.ResizeImage(ctx, img, maxEdge)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		err = s.encoder.Encode(&buf, img)
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, "", fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), format, nil
}
