package model

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Result is the aggregate of one processing pass.
type Result struct {
	// Outcomes holds one entry per expanded input, in input order.
	Outcomes []Outcome
}

// Counts tallies outcomes by status.
type Counts struct {
	Applied   int `yaml:"applied"`
	Failed    int `yaml:"failed"`
	Skipped   int `yaml:"skipped"`
	Cancelled int `yaml:"cancelled"`
}

// Total returns the number of inputs the counts cover.
func (c Counts) Total() int {
	return c.Applied + c.Failed + c.Skipped + c.Cancelled
}

// NewResult creates a Result with room for n outcomes.
func NewResult(n int) *Result {
	return &Result{Outcomes: make([]Outcome, n)}
}

// Counts returns the number of outcomes per status.
func (r *Result) Counts() Counts {
	var c Counts
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusApplied:
			c.Applied++
		case StatusFailed:
			c.Failed++
		case StatusSkipped:
			c.Skipped++
		case StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}

// Failed returns the outcomes whose transformer returned an error.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasFailures reports whether any matched transformer failed.
func (r *Result) HasFailures() bool {
	return r.Counts().Failed > 0
}

// ByStatus returns the outcomes with the given status, in input order.
func (r *Result) ByStatus(status Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

type manifestEntry struct {
	Outcome `yaml:",inline"`
	Error   string `yaml:"error,omitempty"`
}

type manifest struct {
	Summary  Counts          `yaml:"summary"`
	Outcomes []manifestEntry `yaml:"outcomes"`
}

// WriteManifest writes the result as YAML to path, creating parent directories.
func (r *Result) WriteManifest(path string) error {
	m := manifest{
		Summary:  r.Counts(),
		Outcomes: make([]manifestEntry, len(r.Outcomes)),
	}
	for i, o := range r.Outcomes {
		m.Outcomes[i] = manifestEntry{Outcome: o, Error: o.ErrMessage()}
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
