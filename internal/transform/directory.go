package transform

import (
	"context"
	"path/filepath"

	ioutils "github.com/handiism/resource-pipeline/internal/io"
)

// NameMkdir is the registry name of the directory transformer.
const NameMkdir = "Mkdir"

// Mkdir recreates an input directory under the output directory. With
// mirror set, every descendant directory is recreated too; files are never
// copied.
type Mkdir struct {
	mirror bool
}

// NewMkdir creates a directory transformer.
func NewMkdir(mirror bool) *Mkdir {
	return &Mkdir{mirror: mirror}
}

// Name returns "Mkdir".
func (m *Mkdir) Name() string { return NameMkdir }

// CanProcess reports whether path is an existing directory.
func (m *Mkdir) CanProcess(path string) bool {
	return ioutils.IsDir(path)
}

// Apply creates outputDir/<base of input>, plus its subtree when mirroring.
func (m *Mkdir) Apply(ctx context.Context, input, outputDir string) (string, error) {
	target := filepath.Join(outputDir, filepath.Base(filepath.Clean(input)))

	var err error
	if m.mirror {
		err = ioutils.MirrorTree(ctx, input, target)
	} else {
		err = ioutils.EnsureDir(target)
	}
	if err != nil {
		return "", applyError(m, input, err)
	}
	return target, nil
}
