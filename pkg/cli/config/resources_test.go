package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/docmirror/pkg/cli/config"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func env(vars map[string]string) config.LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

const registryTOML = `
[resources.handbook]
repository = "octo/handbook"
branch = "main"
content = ["docs", "guides/"]
token_env = "GITHUB_SYNC_TOKEN"

[resources.runbook]
repository = "octo/runbook"
branch = "release"
token = "inline-token"

[resources.nothing]
repository = "octo/nothing"
branch = "main"
content = []
token = "t"
`

func TestParseRegistry(t *testing.T) {
	reg, err := config.ParseRegistry(registryTOML, env(map[string]string{
		"GITHUB_SYNC_TOKEN": "env-token\n",
	}))
	gt.NoError(t, err)

	resources := reg.Resources()
	gt.V(t, len(resources)).Equal(3)

	t.Run("token from environment", func(t *testing.T) {
		res := gt.R1(reg.Lookup("handbook")).NoError(t)
		gt.V(t, res.Repository).Equal(types.RepositoryName("octo/handbook"))
		gt.V(t, res.Branch).Equal(types.BranchName("main"))
		gt.V(t, res.Content).Equal(model.ContentPrefixes{"docs", "guides/"})
		gt.V(t, res.Token).Equal(types.GitHubToken("env-token"))
	})

	t.Run("inline token and no content", func(t *testing.T) {
		res := gt.R1(reg.Lookup("runbook")).NoError(t)
		gt.V(t, res.Token).Equal(types.GitHubToken("inline-token"))
		gt.True(t, res.Content == nil)
		gt.True(t, res.Content.Match("anything.md"))
	})

	t.Run("empty content matches nothing", func(t *testing.T) {
		res := gt.R1(reg.Lookup("nothing")).NoError(t)
		gt.True(t, res.Content != nil)
		gt.False(t, res.Content.Match("docs/a.md"))
	})
}

func TestParseRegistryMissingEnv(t *testing.T) {
	reg, err := config.ParseRegistry(registryTOML, env(nil))
	gt.NoError(t, err)

	// The resource stays registered and fails when selected
	_, err = reg.Lookup("handbook")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrIncompleteResource))

	gt.R1(reg.Lookup("runbook")).NoError(t)
}

func TestParseRegistryErrors(t *testing.T) {
	testCases := map[string]string{
		"unknown key": `
[resources.handbook]
repository = "octo/handbook"
branch = "main"
prefix = ["docs"]
`,
		"token and token_env": `
[resources.handbook]
repository = "octo/handbook"
branch = "main"
token = "a"
token_env = "B"
`,
		"broken toml": `[resources.handbook`,
	}

	for title, data := range testCases {
		t.Run(title, func(t *testing.T) {
			_, err := config.ParseRegistry(data, env(nil))
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrInvalidOption))
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docmirror.toml")
		gt.NoError(t, os.WriteFile(path, []byte(registryTOML), 0600))

		reg := gt.R1(config.LoadRegistry(ctx, path, env(nil))).NoError(t)
		gt.V(t, len(reg.Resources())).Equal(3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadRegistry(ctx, filepath.Join(t.TempDir(), "none.toml"), env(nil))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
