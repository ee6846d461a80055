package transform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"

	ioutils "github.com/handiism/resource-pipeline/internal/io"
)

// NameWAV2AAC is the registry name of the audio conversion transformer.
const NameWAV2AAC = "WAV2AAC"

// AudioConvert runs an external encoder on audio files with one of a fixed
// set of extensions. The output keeps the base name with the extension
// replaced.
//
// The encoder is started as
//
//	<encoder.Path> <encoder.Args...> <input> <output>
//
// and only its exit status is inspected. The call blocks until the encoder
// exits; there is no timeout, and cancelling ctx does not stop an encoder
// that is already running.
type AudioConvert struct {
	encoder    EncoderConfig
	extensions map[string]struct{}
	targetExt  string
}

// NewAudioConvert creates an audio conversion transformer.
//
// Example:
//
//	t := NewAudioConvert(EncoderConfig{Path: "afconvert", Args: []string{"-f", "adts", "-d", "aac "}},
//	    []string{".wav"}, ".aac")
func NewAudioConvert(encoder EncoderConfig, extensions []string, targetExt string) *AudioConvert {
	return &AudioConvert{
		encoder:    EncoderConfig{Path: encoder.Path, Args: slices.Clone(encoder.Args)},
		extensions: normalizeExtensions(extensions),
		targetExt:  targetExt,
	}
}

// Name returns "WAV2AAC".
func (a *AudioConvert) Name() string { return NameWAV2AAC }

// CanProcess reports whether path is an existing file with one of the
// configured source extensions.
func (a *AudioConvert) CanProcess(path string) bool {
	return hasExtension(path, a.extensions) && ioutils.IsFile(path)
}

// Target returns the output path Apply writes for input.
func (a *AudioConvert) Target(input, outputDir string) string {
	return TargetFilename(input, outputDir, a.targetExt)
}

// Apply runs the encoder on input and returns the path it wrote.
func (a *AudioConvert) Apply(ctx context.Context, input, outputDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", applyError(a, input, err)
	}

	target := a.Target(input, outputDir)
	args := append(slices.Clone(a.encoder.Args), input, target)

	// Not bound to ctx: a running encoder is allowed to finish.
	cmd := exec.Command(a.encoder.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			err = fmt.Errorf("%s: %w: %s", a.encoder.Path, err, msg)
		} else {
			err = fmt.Errorf("%s: %w", a.encoder.Path, err)
		}
		return "", applyError(a, input, err)
	}
	return target, nil
}
