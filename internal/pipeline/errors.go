package pipeline

import "fmt"

// InvalidOutputTargetError is returned when the output path exists and is
// not a directory, or cannot be created.
type InvalidOutputTargetError struct {
	Path string
	Err  error
}

func (e *InvalidOutputTargetError) Error() string {
	return fmt.Sprintf("invalid output directory %s: %v", e.Path, e.Err)
}

func (e *InvalidOutputTargetError) Unwrap() error {
	return e.Err
}

// PatternError is returned when an input or exclude pattern is malformed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bad pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
