package github

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v53/github"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint
	DefaultAPIURL types.GitHubAPIURL = "https://api.github.com/"

	mediaType  = "application/vnd.github+json"
	apiVersion = "2022-11-28"
)

type Client struct {
	baseURL *url.URL
	base    http.RoundTripper
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithTransport replaces the underlying transport. Authentication is layered on top of it.
func WithTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.base = tr
	}
}

func New(apiURL types.GitHubAPIURL, options ...Option) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	raw := string(apiURL)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL", goerr.V("url", apiURL), goerr.V("error", err))
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub API URL must be http or https", goerr.V("url", apiURL))
	}

	client := &Client{
		baseURL: baseURL,
		base:    http.DefaultTransport,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) buildGithubClient(token types.GitHubToken) *gogithub.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: src,
			Base:   &headerTransport{base: x.base},
		},
	}

	client := gogithub.NewClient(httpClient)
	client.BaseURL = x.baseURL
	return client
}

// headerTransport pins the media type and API version sent with every request
type headerTransport struct {
	base http.RoundTripper
}

func (x *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", mediaType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	return x.base.RoundTrip(req)
}

// GetTree returns the recursive tree listing of a branch.
// https://docs.github.com/en/rest/git/trees?apiVersion=2022-11-28#get-a-tree
func (x *Client) GetTree(ctx context.Context, input *interfaces.GetTreeInput) (*model.Tree, error) {
	owner, repo, ok := input.Repository.Split()
	if !ok {
		return nil, goerr.Wrap(types.ErrIncompleteResource, "repository must be in owner/name form", goerr.V("repository", input.Repository))
	}

	logging.From(ctx).Debug("Sending GetTree request",
		slog.Any("repository", input.Repository),
		slog.Any("branch", input.Branch),
	)

	client := x.buildGithubClient(input.Token)
	tree, resp, err := client.Git.GetTree(ctx, owner, repo, string(input.Branch), true)
	if err != nil {
		status, body := responseDetail(resp, err)
		return nil, goerr.Wrap(types.ErrRemoteUnavailable, "failed to get tree",
			goerr.V("repository", input.Repository),
			goerr.V("branch", input.Branch),
			goerr.V("status", status),
			goerr.V("body", body),
		)
	}

	result := &model.Tree{
		Truncated: tree.GetTruncated(),
		Entries:   make([]*model.TreeEntry, 0, len(tree.Entries)),
	}
	for _, entry := range tree.Entries {
		result.Entries = append(result.Entries, &model.TreeEntry{
			Path: entry.GetPath(),
			Kind: types.EntryKind(entry.GetType()),
		})
	}

	logging.From(ctx).Debug("GetTree response",
		slog.Any("repository", input.Repository),
		slog.Int("entries", len(result.Entries)),
		slog.Bool("truncated", result.Truncated),
	)

	return result, nil
}

// GetBlob returns decoded content of a single file.
// https://docs.github.com/en/rest/repos/contents?apiVersion=2022-11-28#get-repository-content
func (x *Client) GetBlob(ctx context.Context, input *interfaces.GetBlobInput) ([]byte, error) {
	owner, repo, ok := input.Repository.Split()
	if !ok {
		return nil, goerr.Wrap(types.ErrIncompleteResource, "repository must be in owner/name form", goerr.V("repository", input.Repository))
	}

	client := x.buildGithubClient(input.Token)
	opt := &gogithub.RepositoryContentGetOptions{
		Ref: string(input.Branch),
	}

	file, _, resp, err := client.Repositories.GetContents(ctx, owner, repo, input.Path, opt)
	if err != nil {
		status, body := responseDetail(resp, err)
		return nil, goerr.Wrap(types.ErrBlobDownloadFailed, "failed to download blob",
			goerr.V("path", input.Path),
			goerr.V("status", status),
			goerr.V("body", body),
		)
	}
	if file == nil || file.Content == nil {
		return nil, goerr.Wrap(types.ErrBlobDownloadFailed, "no content in response", goerr.V("path", input.Path))
	}

	// Files over 1MB come back with encoding "none" and an empty content
	if enc := file.GetEncoding(); enc != "" && enc != "base64" {
		return nil, goerr.Wrap(types.ErrBlobDownloadFailed, "unsupported content encoding",
			goerr.V("path", input.Path),
			goerr.V("encoding", enc),
		)
	}

	// StdEncoding skips the line breaks GitHub inserts into content
	data, err := base64.StdEncoding.DecodeString(*file.Content)
	if err != nil {
		return nil, goerr.Wrap(types.ErrBlobDownloadFailed, "failed to decode content",
			goerr.V("path", input.Path),
			goerr.V("error", err),
		)
	}

	return data, nil
}

func responseDetail(resp *gogithub.Response, err error) (int, string) {
	var ghErr *gogithub.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.Body != nil {
		if body, readErr := io.ReadAll(ghErr.Response.Body); readErr == nil && len(body) > 0 {
			return ghErr.Response.StatusCode, string(body)
		}
	}

	if resp != nil && resp.Response != nil {
		return resp.StatusCode, err.Error()
	}
	return 0, err.Error()
}
