package config

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra"
	"github.com/m-mizutani/docmirror/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Mirror struct {
	contentRoot string
	workers     int64
	applyMode   string
}

func (x *Mirror) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-root",
			Usage:       "Local directory under which resources are mirrored",
			Category:    "Mirror",
			Value:       infra.DefaultContentRoot,
			Sources:     cli.EnvVars("DOCMIRROR_CONTENT_ROOT"),
			Destination: &x.contentRoot,
		},
		&cli.Int64Flag{
			Name:        "workers",
			Usage:       "Number of concurrent file downloads (1 keeps listing order)",
			Category:    "Mirror",
			Value:       usecase.DefaultWorkers,
			Sources:     cli.EnvVars("DOCMIRROR_WORKERS"),
			Destination: &x.workers,
		},
		&cli.StringFlag{
			Name:        "apply",
			Usage:       "Apply mode [direct|staged]",
			Category:    "Mirror",
			Value:       string(types.ApplyModeDirect),
			Sources:     cli.EnvVars("DOCMIRROR_APPLY"),
			Destination: &x.applyMode,
		},
	}
}

func (x *Mirror) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("contentRoot", x.contentRoot),
		slog.Int64("workers", x.workers),
		slog.String("apply", x.applyMode),
	)
}

// Filesystem returns the content root on the OS filesystem
func (x *Mirror) Filesystem() billy.Filesystem {
	return osfs.New(x.contentRoot)
}

// Options validates mirror flags and converts them to use case options
func (x *Mirror) Options() ([]usecase.Option, error) {
	if x.workers < 1 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "workers must be 1 or more", goerr.V("workers", x.workers))
	}

	mode := types.ApplyMode(x.applyMode)
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	return []usecase.Option{
		usecase.WithWorkers(int(x.workers)),
		usecase.WithApplyMode(mode),
	}, nil
}
