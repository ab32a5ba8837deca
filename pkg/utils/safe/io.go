package safe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/docmirror/pkg/utils/logging"
)

// Close closes the resource and logs error if any
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
			return
		}
		logging.From(ctx).Warn("Fail to close resource", slog.Any("error", err))
	}
}
