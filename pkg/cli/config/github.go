package config

import (
	"log/slog"

	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	apiURL string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL (for GitHub Enterprise Server)",
			Category:    "GitHub",
			Value:       string(github.DefaultAPIURL),
			Sources:     cli.EnvVars("DOCMIRROR_GITHUB_API_URL"),
			Destination: &x.apiURL,
		},
	}
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("apiURL", x.apiURL),
	)
}

func (x *GitHub) NewClient() (*github.Client, error) {
	return github.New(types.GitHubAPIURL(x.apiURL))
}
