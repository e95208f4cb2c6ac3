package planner

import (
	"errors"

	"neighborly/internal/core"
	"neighborly/internal/llm"
)

var (
	// ErrMalformedResponse means the model text is not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptyResult means the response parsed but nothing usable survived normalization.
	ErrEmptyResult = errors.New("empty model result")
)

// Classify maps a pipeline error onto its failure kind. Unrecognized errors
// count as invocation failures.
func Classify(err error) core.FailureKind {
	switch {
	case err == nil:
		return core.FailureNone
	case errors.Is(err, llm.ErrNotConfigured):
		return core.FailureConfiguration
	case errors.Is(err, ErrMalformedResponse):
		return core.FailureMalformed
	case errors.Is(err, ErrEmptyResult):
		return core.FailureEmptyResult
	case errors.Is(err, llm.ErrInvocation):
		return core.FailureInvocation
	default:
		// timeouts and cancellations surfacing unwrapped land here too
		return core.FailureInvocation
	}
}
