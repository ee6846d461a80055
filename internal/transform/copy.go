package transform

import (
	"context"
	"path/filepath"

	ioutils "github.com/handiism/resource-pipeline/internal/io"
)

// NameCopy is the registry name of the Copy transformer.
const NameCopy = "Copy"

// Copy writes a byte-for-byte copy of any regular file into the output
// directory, keeping its base name. It is usually the last entry of a chain.
type Copy struct{}

// NewCopy creates a Copy transformer.
func NewCopy() *Copy {
	return &Copy{}
}

// Name returns "Copy".
func (c *Copy) Name() string { return NameCopy }

// CanProcess reports whether path is an existing regular file.
func (c *Copy) CanProcess(path string) bool {
	return ioutils.IsFile(path)
}

// Apply copies input to outputDir, keeping its base name.
func (c *Copy) Apply(ctx context.Context, input, outputDir string) (string, error) {
	target := filepath.Join(outputDir, filepath.Base(input))
	if err := ioutils.CopyFile(ctx, input, target); err != nil {
		return "", applyError(c, input, err)
	}
	return target, nil
}
