package ocr

import (
	"context"
	"log"
	"time"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
)

// Verifier checks that a produced output file is usable
type Verifier interface {
	Verify(path string) error
}

// Observer is notified as a batch progresses. Calls happen on the goroutine
// running the batch, in order.
type Observer interface {
	JobStarted(index, total int, entry domain.PathEntry, output string)
	JobCompleted(total int, result domain.JobResult)
}

// Invoker runs the OCR tool once per entry, sequentially
type Invoker struct {
	cfg      config.OCRConfig
	runner   Runner
	verifier Verifier
}

// NewInvoker creates an invoker. verifier may be nil to skip output checks.
func NewInvoker(cfg config.OCRConfig, runner Runner, verifier Verifier) *Invoker {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Invoker{
		cfg:      cfg,
		runner:   runner,
		verifier: verifier,
	}
}

// OutputPath returns where the tool writes the result for input
func (inv *Invoker) OutputPath(input string) string {
	return OutputPath(inv.cfg, input)
}

// Run processes entries in list order and returns one result per entry.
// An empty list performs no invocations. Once ctx is canceled the remaining
// entries are reported as canceled without being spawned.
func (inv *Invoker) Run(ctx context.Context, entries []domain.PathEntry, obs Observer) []domain.JobResult {
	if len(entries) == 0 {
		return nil
	}

	total := len(entries)
	results := make([]domain.JobResult, 0, total)
	for i, entry := range entries {
		output := inv.OutputPath(entry.Path)

		var result domain.JobResult
		if err := ctx.Err(); err != nil {
			result = domain.JobResult{
				Index:      i,
				Entry:      entry,
				OutputPath: output,
				Outcome:    domain.Outcome{Kind: domain.OutcomeCanceled, Err: err},
			}
		} else {
			if obs != nil {
				obs.JobStarted(i, total, entry, output)
			}
			result = inv.runOne(ctx, i, entry, output)
		}

		results = append(results, result)
		if obs != nil {
			obs.JobCompleted(total, result)
		}
	}
	return results
}

// runOne invokes the tool for a single entry and waits for it to exit
func (inv *Invoker) runOne(ctx context.Context, index int, entry domain.PathEntry, output string) domain.JobResult {
	jobCtx := ctx
	if inv.cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, inv.cfg.Timeout.Duration)
		defer cancel()
	}

	args := BuildArgs(inv.cfg, entry.Path, output)
	log.Printf("OCR: running %s %v", inv.cfg.Binary, args)

	start := time.Now()
	res := inv.runner.Run(jobCtx, inv.cfg.Binary, args)
	outcome := Classify(ctx, jobCtx, res)

	if outcome.OK() && inv.verifier != nil {
		if err := inv.verifier.Verify(output); err != nil {
			outcome.Kind = domain.OutcomeOutputInvalid
			outcome.Err = err
		}
	}

	duration := time.Since(start)
	if outcome.OK() {
		log.Printf("OCR: %s -> %s done in %s", entry.Path, output, duration.Round(time.Millisecond))
	} else {
		log.Printf("OCR: %s failed after %s: %s (err=%v)", entry.Path, duration.Round(time.Millisecond), outcome.Summary(), outcome.Err)
	}

	return domain.JobResult{
		Index:      index,
		Entry:      entry,
		OutputPath: output,
		Outcome:    outcome,
		Duration:   duration,
	}
}
