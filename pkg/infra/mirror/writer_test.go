package mirror_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra/mirror"
	"github.com/m-mizutani/gt"
)

func TestEnsureDir(t *testing.T) {
	t.Run("creates ancestors and is idempotent", func(t *testing.T) {
		fs := memfs.New()
		w := mirror.New(fs)

		gt.NoError(t, w.EnsureDir("a/b/c"))
		gt.NoError(t, w.EnsureDir("a/b/c"))
		gt.NoError(t, w.EnsureDir("a"))

		for _, p := range []string{"a", "a/b", "a/b/c"} {
			info := gt.R1(fs.Stat(p)).NoError(t)
			gt.True(t, info.IsDir())
		}
	})

	t.Run("failure is a filesystem error", func(t *testing.T) {
		w := mirror.New(&failingFS{Filesystem: memfs.New(), failMkdir: true})

		err := w.EnsureDir("a")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrFilesystem))
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		fs := memfs.New()
		w := mirror.New(fs)

		gt.NoError(t, w.WriteFile("docs/guide/intro.md", []byte("# intro")))

		info := gt.R1(fs.Stat("docs/guide")).NoError(t)
		gt.True(t, info.IsDir())
		data := gt.R1(util.ReadFile(fs, "docs/guide/intro.md")).NoError(t)
		gt.V(t, string(data)).Equal("# intro")
	})

	t.Run("replaces existing file in full", func(t *testing.T) {
		fs := memfs.New()
		w := mirror.New(fs)

		gt.NoError(t, w.WriteFile("a.md", []byte("a much longer previous content")))
		gt.NoError(t, w.WriteFile("a.md", []byte("short")))

		data := gt.R1(util.ReadFile(fs, "a.md")).NoError(t)
		gt.V(t, string(data)).Equal("short")
	})

	t.Run("keeps bytes unmodified", func(t *testing.T) {
		fs := memfs.New()
		w := mirror.New(fs)
		raw := []byte{0x00, 0x01, 0xfe, 0xff, '\r', '\n'}

		gt.NoError(t, w.WriteFile("bin/data.bin", raw))
		gt.V(t, gt.R1(util.ReadFile(fs, "bin/data.bin")).NoError(t)).Equal(raw)
	})

	t.Run("rejects illegal paths", func(t *testing.T) {
		w := mirror.New(memfs.New())

		for _, p := range []string{"", "/etc/passwd", "../evil.md", "docs/../../evil.md", "."} {
			err := w.WriteFile(p, []byte("x"))
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrFilesystem))
		}
	})

	t.Run("write failure is a filesystem error", func(t *testing.T) {
		w := mirror.New(&failingFS{Filesystem: memfs.New(), failOpen: true})

		err := w.WriteFile("a.md", []byte("x"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrFilesystem))
	})

	t.Run("writes to disk with osfs", func(t *testing.T) {
		root := t.TempDir()
		w := mirror.New(osfs.New(root))

		gt.NoError(t, w.WriteFile("docs/a.md", []byte("hello")))

		data := gt.R1(os.ReadFile(filepath.Join(root, "docs", "a.md"))).NoError(t)
		gt.V(t, string(data)).Equal("hello")
	})
}

func TestWriteFileKeepsBackslash(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}

	root := t.TempDir()
	w := mirror.New(osfs.New(root))

	gt.NoError(t, w.WriteFile(`notes\win.md`, []byte("literal")))

	data := gt.R1(os.ReadFile(filepath.Join(root, `notes\win.md`))).NoError(t)
	gt.V(t, string(data)).Equal("literal")

	_, err := os.Stat(filepath.Join(root, "notes"))
	gt.True(t, errors.Is(err, os.ErrNotExist))

	gt.True(t, gt.R1(w.Exists(`notes\win.md`)).NoError(t))
}

func TestConcurrentWrites(t *testing.T) {
	fs := memfs.New()
	w := mirror.New(fs)
	subA := gt.R1(w.Sub("a")).NoError(t)
	subB := gt.R1(w.Sub("b")).NoError(t)

	const n = 32
	errCh := make(chan error, 4*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for _, sub := range []*mirror.Writer{subA, subB} {
			wg.Add(2)
			go func(sub *mirror.Writer, i int) {
				defer wg.Done()
				errCh <- sub.WriteFile(fmt.Sprintf("dir%d/file.md", i%4), []byte("x"))
			}(sub, i)
			go func(sub *mirror.Writer, i int) {
				defer wg.Done()
				errCh <- sub.EnsureDir(fmt.Sprintf("dir%d/nested%d", i%4, i))
			}(sub, i)
		}
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		gt.NoError(t, err)
	}
	for _, root := range []string{"a", "b"} {
		for i := 0; i < 4; i++ {
			data := gt.R1(util.ReadFile(fs, fmt.Sprintf("%s/dir%d/file.md", root, i))).NoError(t)
			gt.V(t, string(data)).Equal("x")
		}
	}
}

func TestSub(t *testing.T) {
	fs := memfs.New()
	w := mirror.New(fs)

	sub := gt.R1(w.Sub("handbook")).NoError(t)
	gt.NoError(t, sub.WriteFile("docs/a.md", []byte("a")))

	data := gt.R1(util.ReadFile(fs, "handbook/docs/a.md")).NoError(t)
	gt.V(t, string(data)).Equal("a")

	_, err := w.Sub("../outside")
	gt.True(t, errors.Is(err, types.ErrFilesystem))
}

func TestExistsAndRemoveAll(t *testing.T) {
	w := mirror.New(memfs.New())
	gt.NoError(t, w.WriteFile("a/b.md", []byte("b")))

	gt.True(t, gt.R1(w.Exists("a/b.md")).NoError(t))
	gt.True(t, gt.R1(w.Exists("a")).NoError(t))
	gt.False(t, gt.R1(w.Exists("missing")).NoError(t))

	gt.NoError(t, w.RemoveAll("a"))
	gt.False(t, gt.R1(w.Exists("a/b.md")).NoError(t))
	gt.NoError(t, w.RemoveAll("missing"))
}

func TestReplace(t *testing.T) {
	t.Run("into empty destination", func(t *testing.T) {
		root := t.TempDir()
		w := mirror.New(osfs.New(root))
		gt.NoError(t, w.WriteFile("staging/new/docs/a.md", []byte("new")))

		gt.NoError(t, w.Replace("staging/new", "handbook", "staging/old"))

		data := gt.R1(os.ReadFile(filepath.Join(root, "handbook", "docs", "a.md"))).NoError(t)
		gt.V(t, string(data)).Equal("new")
		gt.False(t, gt.R1(w.Exists("staging/new")).NoError(t))
	})

	t.Run("over existing destination", func(t *testing.T) {
		root := t.TempDir()
		w := mirror.New(osfs.New(root))
		gt.NoError(t, w.WriteFile("handbook/docs/removed.md", []byte("old")))
		gt.NoError(t, w.WriteFile("handbook/docs/a.md", []byte("old")))
		gt.NoError(t, w.WriteFile("staging/new/docs/a.md", []byte("new")))

		gt.NoError(t, w.Replace("staging/new", "handbook", "staging/old"))

		data := gt.R1(os.ReadFile(filepath.Join(root, "handbook", "docs", "a.md"))).NoError(t)
		gt.V(t, string(data)).Equal("new")
		gt.False(t, gt.R1(w.Exists("handbook/docs/removed.md")).NoError(t))
		gt.False(t, gt.R1(w.Exists("staging/old")).NoError(t))
	})

	t.Run("restores destination when move fails", func(t *testing.T) {
		root := t.TempDir()
		w := mirror.New(osfs.New(root))
		gt.NoError(t, w.WriteFile("handbook/a.md", []byte("old")))
		gt.NoError(t, w.EnsureDir("staging"))

		// staging/new does not exist, so moving it fails
		err := w.Replace("staging/new", "handbook", "staging/old")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrFilesystem))

		data := gt.R1(os.ReadFile(filepath.Join(root, "handbook", "a.md"))).NoError(t)
		gt.V(t, string(data)).Equal("old")
	})
}

type failingFS struct {
	billy.Filesystem
	failMkdir bool
	failOpen  bool
}

func (x *failingFS) MkdirAll(filename string, perm os.FileMode) error {
	if x.failMkdir {
		return os.ErrPermission
	}
	return x.Filesystem.MkdirAll(filename, perm)
}

func (x *failingFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if x.failOpen {
		return nil, os.ErrPermission
	}
	return x.Filesystem.OpenFile(filename, flag, perm)
}
