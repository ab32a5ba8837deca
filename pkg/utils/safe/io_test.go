package safe_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/docmirror/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

type errCloser struct {
	err    error
	closed bool
}

func (x *errCloser) Close() error {
	x.closed = true
	return x.err
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	t.Run("close valid reader", func(t *testing.T) {
		reader := io.NopCloser(bytes.NewReader([]byte("test")))
		safe.Close(ctx, reader) // Should not panic
	})

	t.Run("close nil reader", func(t *testing.T) {
		safe.Close(ctx, nil) // Should not panic
	})

	t.Run("close error is swallowed", func(t *testing.T) {
		closer := &errCloser{err: errors.New("close failed")}
		safe.Close(ctx, closer)
		gt.True(t, closer.closed)
	})

	t.Run("file closed twice", func(t *testing.T) {
		fd := gt.R1(os.Create(filepath.Join(t.TempDir(), "a.txt"))).NoError(t)
		gt.NoError(t, fd.Close())
		safe.Close(ctx, fd) // os.ErrClosed is ignored
	})
}
