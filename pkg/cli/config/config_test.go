package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/docmirror/pkg/cli/config"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

// parseFlags runs a command with flags so that their destinations are filled
func parseFlags(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestMirrorOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var mirror config.Mirror
		parseFlags(t, mirror.Flags())

		options, err := mirror.Options()
		gt.NoError(t, err)
		gt.V(t, len(options)).Equal(2)
		gt.V(t, mirror.Filesystem().Root()).Equal("content/docs")
	})

	t.Run("staged with workers", func(t *testing.T) {
		var mirror config.Mirror
		parseFlags(t, mirror.Flags(), "--apply", "staged", "--workers", "8", "--content-root", t.TempDir())

		_, err := mirror.Options()
		gt.NoError(t, err)
	})

	t.Run("invalid apply mode", func(t *testing.T) {
		var mirror config.Mirror
		parseFlags(t, mirror.Flags(), "--apply", "merge")

		_, err := mirror.Options()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("zero workers", func(t *testing.T) {
		var mirror config.Mirror
		parseFlags(t, mirror.Flags(), "--workers", "0")

		_, err := mirror.Options()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestBigQueryNewClient(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		var bq config.BigQuery
		parseFlags(t, bq.Flags())

		client, err := bq.NewClient(context.Background())
		gt.NoError(t, err)
		gt.V(t, client).Equal(nil)
	})

	t.Run("dataset is required", func(t *testing.T) {
		var bq config.BigQuery
		parseFlags(t, bq.Flags(), "--bigquery-project-id", "my-project")

		_, err := bq.NewClient(context.Background())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestFirestoreEnabled(t *testing.T) {
	var fs config.Firestore
	parseFlags(t, fs.Flags())
	gt.False(t, fs.Enabled())

	var enabled config.Firestore
	parseFlags(t, enabled.Flags(), "--firestore-project-id", "my-project")
	gt.True(t, enabled.Enabled())
}

func TestGitHubNewClient(t *testing.T) {
	t.Run("default API URL", func(t *testing.T) {
		var gh config.GitHub
		parseFlags(t, gh.Flags())
		gt.R1(gh.NewClient()).NoError(t)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		var gh config.GitHub
		parseFlags(t, gh.Flags(), "--github-api-url", "ftp://example.com/")
		_, err := gh.NewClient()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
