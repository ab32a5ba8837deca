package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/docmirror/pkg/cli/config"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/infra"
	"github.com/m-mizutani/docmirror/pkg/repository/memory"
	"github.com/m-mizutani/docmirror/pkg/usecase"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

// mirrorConfig is the flag set shared by commands that run sync passes
type mirrorConfig struct {
	resources config.Resources
	github    config.GitHub
	mirror    config.Mirror
	bigQuery  config.BigQuery
	firestore config.Firestore
}

func (x *mirrorConfig) Flags() []cli.Flag {
	return slice.Flatten(
		x.resources.Flags(),
		x.github.Flags(),
		x.mirror.Flags(),
		x.bigQuery.Flags(),
		x.firestore.Flags(),
	)
}

func (x *mirrorConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("resources", &x.resources),
		slog.Any("github", &x.github),
		slog.Any("mirror", &x.mirror),
		slog.Any("bigQuery", &x.bigQuery),
		slog.Any("firestore", &x.firestore),
	)
}

func (x *mirrorConfig) newUseCase(ctx context.Context) (*usecase.UseCase, error) {
	registry, err := x.resources.NewRegistry(ctx)
	if err != nil {
		return nil, err
	}

	ucOptions, err := x.mirror.Options()
	if err != nil {
		return nil, err
	}

	ghClient, err := x.github.NewClient()
	if err != nil {
		return nil, err
	}

	infraOptions := []infra.Option{
		infra.WithGitHub(ghClient),
		infra.WithContentRoot(x.mirror.Filesystem()),
	}

	history, err := x.newSyncHistory(ctx)
	if err != nil {
		return nil, err
	}
	infraOptions = append(infraOptions, infra.WithSyncHistory(history))

	if bqClient, err := x.bigQuery.NewClient(ctx); err != nil {
		return nil, err
	} else if bqClient != nil {
		infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
	}

	clients := infra.New(infraOptions...)
	ucOptions = append(ucOptions, usecase.WithRegistry(registry))

	return usecase.New(clients, ucOptions...), nil
}

func (x *mirrorConfig) newSyncHistory(ctx context.Context) (interfaces.SyncHistory, error) {
	if x.firestore.Enabled() {
		return x.firestore.NewRepository(ctx)
	}
	return memory.New(), nil
}
