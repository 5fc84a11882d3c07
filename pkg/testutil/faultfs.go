package testutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/envtrim/pkg/filesystem"
)

// FaultFS wraps a real filesystem and fails selected operations.
type FaultFS struct {
	filesystem.FS

	// SymlinkErr, when set, is returned by every Symlink call.
	SymlinkErr error
	// LinkErr, when set, is returned by every Link call.
	LinkErr error
	// RemoveErr maps base names to the error Remove returns for them.
	RemoveErr map[string]error
	// OpenErr maps base names to the error Open returns for them.
	OpenErr map[string]error

	Symlinks int
}

// NewFaultFS wraps the OS filesystem.
func NewFaultFS() *FaultFS {
	return &FaultFS{FS: filesystem.NewOS()}
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	f.Symlinks++
	if f.SymlinkErr != nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: f.SymlinkErr}
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultFS) Link(oldname, newname string) error {
	if f.LinkErr != nil {
		return &fs.PathError{Op: "link", Path: newname, Err: f.LinkErr}
	}
	return f.FS.Link(oldname, newname)
}

func (f *FaultFS) Remove(name string) error {
	if err, ok := f.RemoveErr[filepath.Base(name)]; ok {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Open(name string) (*os.File, error) {
	if err, ok := f.OpenErr[filepath.Base(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.FS.Open(name)
}
