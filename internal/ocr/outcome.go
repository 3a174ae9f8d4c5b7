package ocr

import (
	"context"
	"errors"
	"os/exec"

	"ocrdesk/internal/domain"
)

// Classify turns the result of a run into an explicit outcome.
//
// parent is the batch context and job the per-file context (which may carry
// a timeout). Cancellation is checked first: a killed process also reports
// an *exec.ExitError.
func Classify(parent, job context.Context, res ExecResult) domain.Outcome {
	out := domain.Outcome{Output: res.Output, Err: res.Err}

	switch {
	case res.Err == nil:
		out.Kind = domain.OutcomeSuccess
		return out
	case parent.Err() != nil:
		out.Kind = domain.OutcomeCanceled
		out.Err = parent.Err()
		return out
	case errors.Is(job.Err(), context.DeadlineExceeded):
		out.Kind = domain.OutcomeTimedOut
		out.Err = job.Err()
		return out
	}

	var exitErr *exec.ExitError
	if errors.As(res.Err, &exitErr) {
		out.Kind = domain.OutcomeExitFailure
		out.ExitCode = exitErr.ExitCode()
		return out
	}

	// exec.ErrNotFound, permission denied, bad working directory, ...
	out.Kind = domain.OutcomeSpawnFailure
	return out
}
