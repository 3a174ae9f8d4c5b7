//go:build unix

package ocr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
)

// writeScript creates an executable shell script standing in for ocrmypdf
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ocrmypdf")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// copyScript writes its last two arguments as input and output
const copyScript = `
for last; do :; done
out="$last"
n=0
for a; do n=$((n+1)); done
i=0
for a; do
  i=$((i+1))
  if [ $i -eq $((n-1)) ]; then in="$a"; fi
done
echo "processing $in"
cp "$in" "$out"
`

func TestExecRunnerSuccessWritesOutput(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, copyScript)

	dir := t.TempDir()
	input := filepath.Join(dir, "scan.jpeg")
	require.NoError(t, os.WriteFile(input, []byte("image bytes"), 0644))

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: input}}, nil)

	require.Len(t, results, 1)
	require.True(t, results[0].Outcome.OK(), results[0].Outcome.Summary())
	assert.Equal(t, filepath.Join(dir, "scan_ocr.pdf"), results[0].OutputPath)
	assert.Contains(t, results[0].Outcome.Output, "processing "+input)

	data, err := os.ReadFile(results[0].OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestExecRunnerPassesFixedFlags(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, `echo "$@"`)

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: "a.pdf"}}, nil)

	require.True(t, results[0].Outcome.OK())
	assert.Equal(t, "--force-ocr --image-dpi 300 a.pdf a_ocr.pdf", strings.TrimSpace(results[0].Outcome.Output))
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, `echo "PriorOcrFoundError: page already has text" >&2; exit 6`)

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: "a.pdf"}, {Path: "b.pdf"}}, nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, domain.OutcomeExitFailure, r.Outcome.Kind)
		assert.Equal(t, 6, r.Outcome.ExitCode)
		assert.Equal(t, "exit 6: PriorOcrFoundError: page already has text", r.Outcome.Summary())
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = filepath.Join(t.TempDir(), "does-not-exist")

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: "a.pdf"}}, nil)

	assert.Equal(t, domain.OutcomeSpawnFailure, results[0].Outcome.Kind)
	assert.Error(t, results[0].Outcome.Err)
}

func TestExecRunnerTimeout(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, `exec sleep 5`)
	cfg.Timeout = config.Duration{Duration: 100 * time.Millisecond}

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	start := time.Now()
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: "a.pdf"}, {Path: "b.pdf"}}, nil)

	assert.Less(t, time.Since(start), 4*time.Second)
	for _, r := range results {
		assert.Equal(t, domain.OutcomeTimedOut, r.Outcome.Kind)
	}
}

func TestExecRunnerCancel(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, `exec sleep 5`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	results := inv.Run(ctx, []domain.PathEntry{{Path: "a.pdf"}}, nil)

	assert.Equal(t, domain.OutcomeCanceled, results[0].Outcome.Kind)
}

func TestExecRunnerTimeoutKillsChildren(t *testing.T) {
	cfg := config.DefaultConfig().OCR
	// sleep runs as a child of the shell and shares its output pipe
	cfg.Binary = writeScript(t, `sleep 4`)
	cfg.Timeout = config.Duration{Duration: 200 * time.Millisecond}

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	start := time.Now()
	results := inv.Run(context.Background(), []domain.PathEntry{{Path: "a.pdf"}}, nil)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, domain.OutcomeTimedOut, results[0].Outcome.Kind)
}

func TestExecRunnerCancelKillsBackgroundChildren(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "child.pid")
	cfg := config.DefaultConfig().OCR
	cfg.Binary = writeScript(t, `sleep 4 &
echo $! > `+pidFile+`
wait`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		assert.Eventually(t, func() bool {
			_, err := os.Stat(pidFile)
			return err == nil
		}, 2*time.Second, 10*time.Millisecond)
		cancel()
	}()

	inv := NewInvoker(cfg, ExecRunner{}, nil)
	start := time.Now()
	results := inv.Run(ctx, []domain.PathEntry{{Path: "a.pdf"}}, nil)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, domain.OutcomeCanceled, results[0].Outcome.Kind)
}

func TestTailBufferKeepsEnd(t *testing.T) {
	b := &tailBuffer{limit: 8}

	b.Write([]byte("abcdef"))
	b.Write([]byte("ghij"))
	assert.Equal(t, "cdefghij", b.String())

	b.Write([]byte("0123456789"))
	assert.Equal(t, "23456789", b.String())
}
