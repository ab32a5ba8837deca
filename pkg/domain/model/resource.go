package model

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SyncResource identifies one mirror target. Name is used both as the registry key and as the
// destination folder name under the content root.
type SyncResource struct {
	Name       types.ResourceName   `json:"name"`
	Repository types.RepositoryName `json:"repository"`
	Branch     types.BranchName     `json:"branch"`
	Content    ContentPrefixes      `json:"content,omitempty"`
	Token      types.GitHubToken    `json:"-" masq:"secret"`
}

// Validate checks the resource can be synced. It does not modify the resource.
func (x *SyncResource) Validate() error {
	if x.Token == "" || x.Repository == "" || x.Branch == "" {
		return goerr.Wrap(types.ErrIncompleteResource, "missing some configuration",
			goerr.V("resource", x.Name),
			goerr.V("has_token", x.Token != ""),
			goerr.V("repository", x.Repository),
			goerr.V("branch", x.Branch),
		)
	}
	if _, _, ok := x.Repository.Split(); !ok {
		return goerr.Wrap(types.ErrIncompleteResource, "repository must be in owner/name form",
			goerr.V("resource", x.Name),
			goerr.V("repository", x.Repository),
		)
	}
	if !isPathSegment(string(x.Name)) {
		return goerr.Wrap(types.ErrIncompleteResource, "resource name must be a single path segment",
			goerr.V("resource", x.Name),
		)
	}
	if x.Name == types.StagingDir {
		return goerr.Wrap(types.ErrIncompleteResource, "resource name is reserved for staging",
			goerr.V("resource", x.Name),
		)
	}

	return nil
}

func isPathSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (x SyncResource) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("name", x.Name),
		slog.Any("repository", x.Repository),
		slog.Any("branch", x.Branch),
		slog.Any("content", []string(x.Content)),
		slog.Int("token.len", len(x.Token)),
	)
}

// ContentPrefixes is an allow-list of path prefixes. nil means every path is allowed.
type ContentPrefixes []string

// Match reports whether path starts with any of prefixes. This is a plain string prefix match,
// so "docs" matches "docs-old/x.md" as well as "docs/x.md". An empty prefix never matches.
func (x ContentPrefixes) Match(path string) bool {
	if x == nil {
		return true
	}

	for _, prefix := range x {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Registry maps resource names to their sync configuration. It is read-only after creation.
type Registry struct {
	resources map[types.ResourceName]*SyncResource
}

// NewRegistry creates a registry. Resources are stored as given; completeness is checked by Lookup
// so that an incomplete resource fails the sync that selects it, not the whole registry.
func NewRegistry(resources ...*SyncResource) (*Registry, error) {
	reg := &Registry{
		resources: make(map[types.ResourceName]*SyncResource, len(resources)),
	}

	for _, res := range resources {
		if res == nil || res.Name == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "resource name is empty")
		}
		if _, exists := reg.resources[res.Name]; exists {
			return nil, goerr.Wrap(types.ErrInvalidOption, "duplicated resource name", goerr.V("resource", res.Name))
		}

		copied := *res
		reg.resources[res.Name] = &copied
	}

	return reg, nil
}

// Lookup returns a validated copy of the resource
func (x *Registry) Lookup(name types.ResourceName) (*SyncResource, error) {
	var res *SyncResource
	if x != nil {
		res = x.resources[name]
	}
	if res == nil {
		return nil, goerr.Wrap(types.ErrUnknownResource, "cannot find resource", goerr.V("resource", name))
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	copied := *res
	return &copied, nil
}

// Resources returns all registered resources sorted by name
func (x *Registry) Resources() []*SyncResource {
	if x == nil {
		return nil
	}

	resp := make([]*SyncResource, 0, len(x.resources))
	for _, res := range x.resources {
		copied := *res
		resp = append(resp, &copied)
	}
	sort.Slice(resp, func(i, j int) bool {
		return resp[i].Name < resp[j].Name
	})

	return resp
}
