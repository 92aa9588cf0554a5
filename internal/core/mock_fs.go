package core

import (
	"context"
	"io/fs"
	"path"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// ReadErr and WriteErr, when set, are returned by every read or write.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string]mockFile

	ReadErr  error
	WriteErr error

	// Writes counts successful WriteFile calls per path.
	Writes map[string]int
}

type mockFile struct {
	data []byte
	perm fs.FileMode
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string]mockFile),
		Writes: make(map[string]int),
	}
}

// SetFile stores data at name with PermOwnerRW.
func (m *MockFileSystem) SetFile(name string, data []byte) {
	m.SetFileMode(name, data, PermOwnerRW)
}

// SetFileMode stores data at name with the given permission bits.
func (m *MockFileSystem) SetFileMode(name string, data []byte, perm fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = mockFile{data: append([]byte(nil), data...), perm: perm}
}

// GetFile returns a copy of the data stored at name.
func (m *MockFileSystem) GetFile(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.data...), true
}

// Mode returns the permission bits stored for name.
func (m *MockFileSystem) Mode(name string) fs.FileMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[name].perm
}

func (m *MockFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.GetFile(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.SetFileMode(name, data, perm)
	m.mu.Lock()
	m.Writes[name]++
	m.mu.Unlock()
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path.Base(name), size: int64(len(f.data)), mode: f.perm}, nil
}

type mockFileInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }
