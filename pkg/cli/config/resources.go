package config

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// DefaultResourcesPath is the registry file read when --resources is not given
const DefaultResourcesPath = "docmirror.toml"

type Resources struct {
	path string
}

func (x *Resources) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "resources",
			Aliases:     []string{"r"},
			Usage:       "Path to resource registry file (TOML)",
			Category:    "Resources",
			Value:       DefaultResourcesPath,
			Sources:     cli.EnvVars("DOCMIRROR_RESOURCES"),
			Destination: &x.path,
		},
	}
}

func (x *Resources) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
	)
}

// NewRegistry loads the registry file. Tokens given by token_env are resolved from the process
// environment.
func (x *Resources) NewRegistry(ctx context.Context) (*model.Registry, error) {
	return LoadRegistry(ctx, x.path, os.LookupEnv)
}

// LookupEnv resolves environment variables referenced by the registry file
type LookupEnv func(key string) (string, bool)

type registryFile struct {
	Resources map[string]resourceEntry `toml:"resources"`
}

type resourceEntry struct {
	Repository string   `toml:"repository"`
	Branch     string   `toml:"branch"`
	Content    []string `toml:"content"`
	Token      string   `toml:"token"`
	TokenEnv   string   `toml:"token_env"`
}

// LoadRegistry reads a registry file from path
func LoadRegistry(ctx context.Context, path string, lookupEnv LookupEnv) (*model.Registry, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to open resource registry file",
			goerr.V("path", path),
			goerr.V("error", err),
		)
	}
	defer safe.Close(ctx, fd)

	var raw registryFile
	meta, err := toml.NewDecoder(fd).Decode(&raw)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to decode resource registry file",
			goerr.V("path", path),
			goerr.V("error", err),
		)
	}

	reg, err := buildRegistry(raw, meta, lookupEnv)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid resource registry file", goerr.V("path", path))
	}
	return reg, nil
}

// ParseRegistry builds a registry from TOML text
func ParseRegistry(data string, lookupEnv LookupEnv) (*model.Registry, error) {
	var raw registryFile
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to decode resource registry", goerr.V("error", err))
	}

	return buildRegistry(raw, meta, lookupEnv)
}

func buildRegistry(raw registryFile, meta toml.MetaData, lookupEnv LookupEnv) (*model.Registry, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, goerr.Wrap(types.ErrInvalidOption, "unknown keys in resource registry",
			goerr.V("keys", strings.Join(keys, ", ")),
		)
	}

	names := make([]string, 0, len(raw.Resources))
	for name := range raw.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	resources := make([]*model.SyncResource, 0, len(names))
	for _, name := range names {
		entry := raw.Resources[name]
		res := &model.SyncResource{
			Name:       types.ResourceName(name),
			Repository: types.RepositoryName(strings.TrimSpace(entry.Repository)),
			Branch:     types.BranchName(strings.TrimSpace(entry.Branch)),
		}

		// An explicitly empty list is kept non-nil so that it matches nothing
		if meta.IsDefined("resources", name, "content") {
			res.Content = append(model.ContentPrefixes{}, entry.Content...)
		}

		switch {
		case entry.Token != "" && entry.TokenEnv != "":
			return nil, goerr.Wrap(types.ErrInvalidOption, "token and token_env are exclusive",
				goerr.V("resource", name),
			)
		case entry.TokenEnv != "":
			// A missing variable leaves the resource incomplete; it fails when synced
			if v, ok := lookupEnv(entry.TokenEnv); ok {
				res.Token = types.GitHubToken(strings.TrimSpace(v))
			}
		default:
			res.Token = types.GitHubToken(entry.Token)
		}

		resources = append(resources, res)
	}

	return model.NewRegistry(resources...)
}
