package transform

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	ioutils "github.com/handiism/resource-pipeline/internal/io"
)

// NameImageOptimize is the registry name of the image transformer.
const NameImageOptimize = "ImageOptimize"

var imageExtensions = normalizeExtensions([]string{".png", ".jpg", ".jpeg"})

// ImageOptimize downsizes PNG and JPEG files that exceed a maximum edge and
// re-encodes them in their original format under the same name.
type ImageOptimize struct {
	images  *ioutils.ImageService
	maxEdge int
	quality int
}

// NewImageOptimize creates an image transformer.
func NewImageOptimize(maxEdge, quality int) *ImageOptimize {
	return &ImageOptimize{
		images:  ioutils.NewImageService(),
		maxEdge: maxEdge,
		quality: quality,
	}
}

// Name returns "ImageOptimize".
func (i *ImageOptimize) Name() string { return NameImageOptimize }

// CanProcess reports whether path is an existing PNG or JPEG file.
func (i *ImageOptimize) CanProcess(path string) bool {
	return hasExtension(path, imageExtensions) && ioutils.IsFile(path)
}

// Apply writes the optimized image to outputDir under the input's base name.
// It refuses to overwrite the input itself.
func (i *ImageOptimize) Apply(ctx context.Context, input, outputDir string) (string, error) {
	target := filepath.Join(outputDir, filepath.Base(input))
	if ioutils.SameFile(input, target) {
		return "", applyError(i, input, errors.New("source and destination are the same file"))
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", applyError(i, input, err)
	}

	out, _, err := i.images.Optimize(ctx, data, i.maxEdge, i.quality)
	if err != nil {
		return "", applyError(i, input, err)
	}

	if err := os.WriteFile(target, out, 0644); err != nil {
		return "", applyError(i, input, err)
	}
	return target, nil
}
