//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// copyTool copies its input to the output path and reports what it did
const copyTool = `echo "processing $4"
cp "$4" "$5"`

// writeConfig stores a config file in the workspace and returns its path
func writeConfig(t *testing.T, tf *TUITestFramework, body string) string {
	t.Helper()
	p := filepath.Join(tf.workspace, "ocrdesk.toml")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

// newApp prepares a workspace and returns a framework cleaned up with the test
func newApp(t *testing.T) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	tf.SetupWorkspace()
	t.Cleanup(tf.Cleanup)
	return tf
}
