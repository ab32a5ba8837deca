package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/docmirror/pkg/cli/config"
	"github.com/m-mizutani/docmirror/pkg/controller/server"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr         string
		historyLimit int64

		cfg    mirrorConfig
		sentry config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DOCMIRROR_ADDR"),
			Destination: &addr,
		},
		&cli.Int64Flag{
			Name:        "history-limit",
			Usage:       "Default number of sync records returned by the history endpoint",
			Value:       server.DefaultHistoryLimit,
			Sources:     cli.EnvVars("DOCMIRROR_HISTORY_LIMIT"),
			Destination: &historyLimit,
		},
	}

	return &cli.Command{
		Name:  "serve",
		Usage: "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			cfg.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("HistoryLimit", historyLimit),
				slog.Any("Config", &cfg),
				slog.Any("Sentry", &sentry),
			)

			if historyLimit < 1 {
				return goerr.Wrap(types.ErrInvalidOption, "history-limit must be 1 or more",
					goerr.V("history-limit", historyLimit),
				)
			}

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			s := server.New(uc, server.WithHistoryLimit(int(historyLimit)))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// A sync pass runs within the request
				WriteTimeout: 10 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
