package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func syncCommand() *cli.Command {
	var cfg mirrorConfig

	return &cli.Command{
		Name:      "sync",
		Aliases:   []string{"s"},
		Usage:     "Mirror the content of a registered resource into the content root",
		ArgsUsage: "<resource>",
		Flags:     cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return goerr.Wrap(types.ErrInvalidOption, "exactly one resource name is required",
					goerr.V("args", c.Args().Slice()),
				)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logging.From(ctx).Debug("starting sync", "config", &cfg)

			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			result, err := uc.SyncResource(ctx, &model.SyncInput{
				Resource: types.ResourceName(c.Args().First()),
			})
			if result != nil {
				printSyncResult(c.Root().Writer, result)
			}
			return err
		},
	}
}

func printSyncResult(w io.Writer, result *model.SyncResult) {
	if result.State == types.SyncStateDone {
		fmt.Fprintf(w, "synced %s: %d directories, %d files, %d skipped (%s)\n",
			result.Resource,
			result.Directories,
			len(result.Files),
			result.Skipped,
			result.FinishedAt.Sub(result.StartedAt),
		)
		return
	}

	fmt.Fprintf(w, "sync of %s failed: %d files written, %d files not refreshed\n",
		result.Resource,
		len(result.Files),
		len(result.Stale),
	)
	if result.FailedPath != "" {
		fmt.Fprintf(w, "failed at %s\n", result.FailedPath)
	}
}
