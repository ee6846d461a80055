package transform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Transformer converts or copies one input path into an output directory.
type Transformer interface {
	// Name returns the registry name of the transformer.
	Name() string

	// CanProcess reports whether the transformer accepts path. It never
	// touches the filesystem beyond a stat and returns false for paths that
	// do not exist.
	CanProcess(path string) bool

	// Apply writes the output for input into outputDir and returns the
	// produced path. Failures are returned as *ApplyError.
	Apply(ctx context.Context, input, outputDir string) (string, error)
}

// ApplyError is returned when a matched transformer fails to produce its
// output.
type ApplyError struct {
	Transformer string
	Input       string
	Err         error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: apply to %s: %v", e.Transformer, e.Input, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

func applyError(t Transformer, input string, err error) error {
	return &ApplyError{Transformer: t.Name(), Input: input, Err: err}
}

// TargetFilename strips the extension from the base name of input, appends
// newExtension and joins the result with outputDir.
//
// Example:
//
//	TargetFilename("sfx/hit.wav", "build", ".aac") // "build/hit.aac"
func TargetFilename(input, outputDir, newExtension string) string {
	base := filepath.Base(input)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+newExtension)
}

// normalizeExtensions lower-cases extensions and makes sure each one starts
// with a dot.
func normalizeExtensions(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

func hasExtension(path string, set map[string]struct{}) bool {
	_, ok := set[strings.ToLower(filepath.Ext(path))]
	return ok
}
