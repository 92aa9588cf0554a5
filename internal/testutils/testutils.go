// Package testutils holds helpers shared by csprojver tests.
package testutils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// CaptureStdout runs fn and returns what it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { os.Stdout = orig }()
	fn()

	_ = w.Close()
	<-done
	_ = r.Close()
	return buf.String(), copyErr
}

// WriteTempConfig writes content to .csprojver.yaml in a fresh temp dir and
// returns the file path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), ".csprojver.yaml", content)
}

// WriteFile writes content to dir/rel, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// WriteProjectTree creates a temp dir holding files (slash path to content)
// and returns its path.
func WriteProjectTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}
