package mirror

import (
	"errors"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Writer materializes mirrored entries on a filesystem. All paths are forward-slash separated and
// relative to the root of the filesystem. Filesystem operations are serialized, including those of
// writers returned by Sub, so a Writer can be shared by concurrent download tasks.
type Writer struct {
	fs billy.Filesystem
	mu *sync.Mutex
}

func New(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs, mu: &sync.Mutex{}}
}

func (x *Writer) Filesystem() billy.Filesystem {
	return x.fs
}

// toLocal converts a remote path to a local one. Only '/' separates segments; a backslash is part
// of the file name. Absolute paths and ".." segments are rejected.
func (x *Writer) toLocal(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") {
		return "", goerr.Wrap(types.ErrFilesystem, "illegal path", goerr.V("path", p))
	}

	var parts []string
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", goerr.Wrap(types.ErrFilesystem, "illegal path", goerr.V("path", p))
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "", goerr.Wrap(types.ErrFilesystem, "illegal path", goerr.V("path", p))
	}

	return x.fs.Join(parts...), nil
}

// EnsureDir creates the directory and all missing ancestors. It is a no-op if the directory exists.
func (x *Writer) EnsureDir(p string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.ensureDir(p)
}

func (x *Writer) ensureDir(p string) error {
	local, err := x.toLocal(p)
	if err != nil {
		return err
	}

	if err := x.fs.MkdirAll(local, dirPerm); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create directory", goerr.V("path", p), goerr.V("error", err))
	}
	return nil
}

// WriteFile replaces the whole file with data, creating parent directories as needed
func (x *Writer) WriteFile(p string, data []byte) error {
	local, err := x.toLocal(p)
	if err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if parent := path.Dir(p); parent != "." && parent != "/" {
		if err := x.ensureDir(parent); err != nil {
			return err
		}
	}

	if err := util.WriteFile(x.fs, local, data, filePerm); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to write file", goerr.V("path", p), goerr.V("error", err))
	}
	return nil
}

// Exists reports whether p exists as a file or directory
func (x *Writer) Exists(p string) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.exists(p)
}

func (x *Writer) exists(p string) (bool, error) {
	local, err := x.toLocal(p)
	if err != nil {
		return false, err
	}

	if _, err := x.fs.Stat(local); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, goerr.Wrap(types.ErrFilesystem, "failed to stat", goerr.V("path", p), goerr.V("error", err))
	}
	return true, nil
}

// Sub returns a writer rooted at directory p, creating it if needed
func (x *Writer) Sub(p string) (*Writer, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.ensureDir(p); err != nil {
		return nil, err
	}

	local, err := x.toLocal(p)
	if err != nil {
		return nil, err
	}

	sub, err := x.fs.Chroot(local)
	if err != nil {
		return nil, goerr.Wrap(types.ErrFilesystem, "failed to chroot", goerr.V("path", p), goerr.V("error", err))
	}
	return &Writer{fs: sub, mu: x.mu}, nil
}

// RemoveAll removes p and everything under it. A missing path is not an error.
func (x *Writer) RemoveAll(p string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.removeAll(p)
}

func (x *Writer) removeAll(p string) error {
	local, err := x.toLocal(p)
	if err != nil {
		return err
	}

	if err := util.RemoveAll(x.fs, local); err != nil && !errors.Is(err, os.ErrNotExist) {
		return goerr.Wrap(types.ErrFilesystem, "failed to remove", goerr.V("path", p), goerr.V("error", err))
	}
	return nil
}

// Replace moves src to dst. An existing dst is first moved to trash and removed once src is in
// place; if moving src fails, dst is restored from trash.
func (x *Writer) Replace(src, dst, trash string) error {
	localSrc, err := x.toLocal(src)
	if err != nil {
		return err
	}
	localDst, err := x.toLocal(dst)
	if err != nil {
		return err
	}
	localTrash, err := x.toLocal(trash)
	if err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	exists, err := x.exists(dst)
	if err != nil {
		return err
	}

	if exists {
		if err := x.fs.Rename(localDst, localTrash); err != nil {
			return goerr.Wrap(types.ErrFilesystem, "failed to move previous mirror aside",
				goerr.V("path", dst), goerr.V("trash", trash), goerr.V("error", err))
		}
	}

	if err := x.fs.Rename(localSrc, localDst); err != nil {
		if exists {
			if restoreErr := x.fs.Rename(localTrash, localDst); restoreErr != nil {
				return goerr.Wrap(types.ErrFilesystem, "failed to restore previous mirror",
					goerr.V("path", dst), goerr.V("trash", trash), goerr.V("error", restoreErr))
			}
		}
		return goerr.Wrap(types.ErrFilesystem, "failed to move staged mirror into place",
			goerr.V("src", src), goerr.V("path", dst), goerr.V("error", err))
	}

	if exists {
		return x.removeAll(trash)
	}
	return nil
}
