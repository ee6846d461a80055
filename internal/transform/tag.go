package transform

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	ioutils "github.com/handiism/resource-pipeline/internal/io"
)

// NameID3Tag is the registry name of the MP3 tagging transformer.
const NameID3Tag = "ID3Tag"

var mp3Extensions = normalizeExtensions([]string{".mp3"})

// ID3Tag copies MP3 files into the output directory and normalizes the ID3v2
// tag of the copy. The source file is never modified.
type ID3Tag struct {
	titleFromFileName bool
	clearComments     bool
}

// NewID3Tag creates an MP3 tagging transformer.
func NewID3Tag(titleFromFileName, clearComments bool) *ID3Tag {
	return &ID3Tag{
		titleFromFileName: titleFromFileName,
		clearComments:     clearComments,
	}
}

// Name returns "ID3Tag".
func (t *ID3Tag) Name() string { return NameID3Tag }

// CanProcess reports whether path is an existing .mp3 file.
func (t *ID3Tag) CanProcess(path string) bool {
	return hasExtension(path, mp3Extensions) && ioutils.IsFile(path)
}

// Apply copies input to outputDir and rewrites the copy's ID3v2 tag.
func (t *ID3Tag) Apply(ctx context.Context, input, outputDir string) (string, error) {
	target := filepath.Join(outputDir, filepath.Base(input))
	if err := ioutils.CopyFile(ctx, input, target); err != nil {
		return "", applyError(t, input, err)
	}

	tag, err := id3v2.Open(target, id3v2.Options{Parse: true})
	if err != nil {
		return "", applyError(t, input, err)
	}
	defer tag.Close()

	t.updateTags(tag, input)

	if err := tag.Save(); err != nil {
		return "", applyError(t, input, err)
	}
	return target, nil
}

// updateTags applies the configured normalization to tag.
func (t *ID3Tag) updateTags(tag *id3v2.Tag, input string) {
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Title (TIT2)
	if t.titleFromFileName && strings.TrimSpace(tag.Title()) == "" {
		base := filepath.Base(input)
		tag.SetTitle(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	// Comments (COMM)
	if t.clearComments {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}
