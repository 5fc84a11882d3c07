package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/envtrim/pkg/errors"
)

// CopyNoClobber copies src to dst without ever replacing an existing dst.
//
// The bytes are written to a temporary file next to dst and published with a
// hard link, which fails if dst already exists. Where hard links are not
// available the temporary file is renamed after a final existence check. An
// interrupted copy therefore never leaves a truncated file under dst.
//
// created is false when dst already existed; that is not an error.
func CopyNoClobber(fsys FS, src, dst string) (created bool, err error) {
	if _, err := fsys.Lstat(dst); err == nil {
		return false, nil
	}

	in, err := fsys.Open(src)
	if err != nil {
		return false, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, errors.Newf(errors.ErrFileCopy, "%s is not a regular file", src)
	}

	tmp, err := fsys.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	defer func() { _ = fsys.Remove(tmpName) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	linkErr := fsys.Link(tmpName, dst)
	if linkErr == nil {
		return true, nil
	}
	if os.IsExist(linkErr) {
		return false, nil
	}

	if _, err := fsys.Lstat(dst); err == nil {
		return false, nil
	}
	if err := fsys.Rename(tmpName, dst); err != nil {
		return false, err
	}
	return true, nil
}
