package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the tool was
// killed; grandchildren may still hold them open.
const waitDelay = 2 * time.Second

// ExecResult holds the outcome of a single tool invocation
type ExecResult struct {
	Output string // combined stdout and stderr
	Err    error
}

// Runner spawns the OCR tool and waits for it to exit
type Runner interface {
	Run(ctx context.Context, name string, args []string) ExecResult
}

// ExecRunner runs the tool as a real subprocess
type ExecRunner struct {
	// MaxOutput caps the captured output in bytes; the head is dropped
	// first. Zero means 64 KiB.
	MaxOutput int
}

// Run executes name with args, capturing stdout and stderr together
func (r ExecRunner) Run(ctx context.Context, name string, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, name, args...)
	// ocrmypdf forks tesseract and ghostscript; cancel kills the whole group
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	limit := r.MaxOutput
	if limit <= 0 {
		limit = 64 << 10
	}
	out := &tailBuffer{limit: limit}
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	return ExecResult{
		Output: out.String(),
		Err:    err,
	}
}

// tailBuffer keeps only the last limit bytes written to it
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= t.limit {
		t.buf.Reset()
		t.buf.Write(p[len(p)-t.limit:])
		return n, nil
	}
	if over := t.buf.Len() + len(p) - t.limit; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
