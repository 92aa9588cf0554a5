package project

import (
	"bytes"
	"context"

	"github.com/indaco/csprojver/internal/apperrors"
	"github.com/indaco/csprojver/internal/core"
)

// Writer applies a version to project files.
type Writer struct {
	fs core.FileSystem

	// DryRun computes every change without writing any file.
	DryRun bool

	// OnFile, when set, is called after each file is processed.
	OnFile func(Change)
}

// NewWriter creates a Writer on the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Apply sets version on every file in order.
//
// Processing stops at the first failing file: it and the files after it are
// left untouched, while files already written stay written. The changes of the
// files processed before the failure are returned together with the error.
func (w *Writer) Apply(ctx context.Context, version string, files []string) ([]Change, error) {
	changes := make([]Change, 0, len(files))
	for _, path := range files {
		change, err := w.ApplyFile(ctx, version, path)
		if err != nil {
			return changes, err
		}
		changes = append(changes, change)
		if w.OnFile != nil {
			w.OnFile(change)
		}
	}
	return changes, nil
}

// ApplyFile sets version on a single project file.
func (w *Writer) ApplyFile(ctx context.Context, version, path string) (Change, error) {
	change := Change{Path: path}

	info, err := w.fs.Stat(ctx, path)
	if err != nil {
		return change, &apperrors.IOError{Path: path, Op: "stat", Err: err}
	}

	original, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return change, &apperrors.IOError{Path: path, Op: "read", Err: err}
	}

	doc, err := Parse(path, original)
	if err != nil {
		return change, err
	}

	for _, tag := range VersionTags {
		ec, err := doc.SetVersion(tag, version)
		if err != nil {
			return change, err
		}
		change.Elements = append(change.Elements, ec)
	}

	updated, err := doc.Bytes()
	if err != nil {
		return change, err
	}

	change.Changed = !bytes.Equal(original, updated)
	if !change.Changed || w.DryRun {
		return change, nil
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = core.PermOwnerRW
	}
	if err := w.fs.WriteFile(ctx, path, updated, perm); err != nil {
		return change, &apperrors.IOError{Path: path, Op: "write", Err: err}
	}

	return change, nil
}
