package model

// Status describes how an input was handled.
type Status string

const (
	// StatusApplied means a transformer matched and its output was written.
	StatusApplied Status = "applied"

	// StatusFailed means a transformer matched but its Apply returned an error.
	StatusFailed Status = "failed"

	// StatusSkipped means no transformer in the chain accepted the input.
	StatusSkipped Status = "skipped"

	// StatusCancelled means the run was cancelled before the input was reached.
	StatusCancelled Status = "cancelled"
)

// Outcome is the per-input record of a processing pass.
//
// Transformer and Target are empty for skipped and cancelled inputs.
// Err is only set for failed inputs.
type Outcome struct {
	// Source is the expanded input path, as returned by glob expansion.
	Source string `yaml:"source"`

	// Transformer is the name of the transformer that matched.
	Transformer string `yaml:"transformer,omitempty"`

	// Target is the path produced by the transformer.
	Target string `yaml:"target,omitempty"`

	// Status is the final state of this input.
	Status Status `yaml:"status"`

	// Err holds the apply error for failed inputs.
	Err error `yaml:"-"`
}

// ErrMessage returns the error message of a failed outcome, or an empty string.
func (o Outcome) ErrMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
