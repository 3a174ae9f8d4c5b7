//go:build !unix

package ocr

import "os/exec"

// killProcessGroup is a no-op; cancellation kills only the direct child and
// WaitDelay bounds the wait for its output.
func killProcessGroup(cmd *exec.Cmd) {}
