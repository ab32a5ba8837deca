package cli_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/docmirror/pkg/cli"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

const registryTOML = `
[resources.handbook]
repository = "octo/handbook"
branch = "main"
content = ["docs"]
token = "ghp_cli_test"

[resources.draft]
repository = "octo/draft"
branch = "main"
`

func writeRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docmirror.toml")
	gt.NoError(t, os.WriteFile(path, []byte(registryTOML), 0600))
	return path
}

func newFakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	blobs := map[string]string{
		"docs/index.md":       "# Handbook\n",
		"docs/guide/start.md": "start here\n",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.Header.Get("Authorization")).Equal("Bearer ghp_cli_test")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/repos/octo/handbook/git/trees/main":
			_, _ = w.Write([]byte(`{
				"sha": "abc",
				"truncated": false,
				"tree": [
					{"path": "README.md", "type": "blob"},
					{"path": "docs", "type": "tree"},
					{"path": "docs/index.md", "type": "blob"},
					{"path": "docs/guide", "type": "tree"},
					{"path": "docs/guide/start.md", "type": "blob"}
				]
			}`))

		case strings.HasPrefix(r.URL.Path, "/repos/octo/handbook/contents/"):
			p := strings.TrimPrefix(r.URL.Path, "/repos/octo/handbook/contents/")
			body, ok := blobs[p]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"Not Found"}`))
				return
			}
			gt.V(t, r.URL.Query().Get("ref")).Equal("main")
			_, _ = fmt.Fprintf(w, `{"type":"file","encoding":"base64","path":%q,"content":%q}`,
				p, base64.StdEncoding.EncodeToString([]byte(body)))

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncCommand(t *testing.T) {
	registry := writeRegistry(t)
	gh := newFakeGitHub(t)
	contentRoot := t.TempDir()

	var out bytes.Buffer
	err := cli.New(cli.WithWriter(&out)).Run([]string{
		"docmirror", "sync",
		"--resources", registry,
		"--content-root", contentRoot,
		"--github-api-url", gh.URL,
		"handbook",
	})
	gt.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(contentRoot, "handbook", "docs", "index.md"))
	gt.NoError(t, err)
	gt.V(t, string(index)).Equal("# Handbook\n")

	start, err := os.ReadFile(filepath.Join(contentRoot, "handbook", "docs", "guide", "start.md"))
	gt.NoError(t, err)
	gt.V(t, string(start)).Equal("start here\n")

	_, err = os.Stat(filepath.Join(contentRoot, "handbook", "README.md"))
	gt.True(t, errors.Is(err, os.ErrNotExist))

	gt.True(t, strings.Contains(out.String(), "synced handbook: 2 directories, 2 files, 1 skipped"))
}

func TestSyncCommandStaged(t *testing.T) {
	registry := writeRegistry(t)
	gh := newFakeGitHub(t)
	contentRoot := t.TempDir()

	stale := filepath.Join(contentRoot, "handbook", "docs", "removed.md")
	gt.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	gt.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	err := cli.New(cli.WithWriter(&bytes.Buffer{})).Run([]string{
		"docmirror", "sync",
		"--resources", registry,
		"--content-root", contentRoot,
		"--github-api-url", gh.URL,
		"--apply", "staged",
		"handbook",
	})
	gt.NoError(t, err)

	_, err = os.Stat(stale)
	gt.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(filepath.Join(contentRoot, "handbook", "docs", "index.md"))
	gt.NoError(t, err)
}

func TestSyncCommandErrors(t *testing.T) {
	registry := writeRegistry(t)
	gh := newFakeGitHub(t)

	testCases := map[string]struct {
		args []string
		err  error
	}{
		"no resource argument": {
			args: []string{},
			err:  types.ErrInvalidOption,
		},
		"unknown resource": {
			args: []string{"nothing"},
			err:  types.ErrUnknownResource,
		},
		"resource without token": {
			args: []string{"draft"},
			err:  types.ErrIncompleteResource,
		},
		"invalid apply mode": {
			args: []string{"--apply", "atomic", "handbook"},
			err:  types.ErrInvalidOption,
		},
		"invalid workers": {
			args: []string{"--workers", "0", "handbook"},
			err:  types.ErrInvalidOption,
		},
	}

	for title, tc := range testCases {
		t.Run(title, func(t *testing.T) {
			argv := append([]string{
				"docmirror", "sync",
				"--resources", registry,
				"--content-root", t.TempDir(),
				"--github-api-url", gh.URL,
			}, tc.args...)

			err := cli.New(cli.WithWriter(&bytes.Buffer{})).Run(argv)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, tc.err))
		})
	}
}

func TestResourcesCommand(t *testing.T) {
	registry := writeRegistry(t)

	var out bytes.Buffer
	err := cli.New(cli.WithWriter(&out)).Run([]string{
		"docmirror", "resources", "--resources", registry,
	})
	gt.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	gt.V(t, len(lines)).Equal(3)
	gt.True(t, strings.HasPrefix(lines[0], "NAME"))
	// Registry lists resources in name order
	gt.True(t, strings.HasPrefix(lines[1], "draft"))
	gt.True(t, strings.Contains(lines[1], "incomplete"))
	gt.True(t, strings.HasPrefix(lines[2], "handbook"))
	gt.True(t, strings.Contains(lines[2], "docs"))
	gt.False(t, strings.Contains(out.String(), "ghp_cli_test"))
}

func TestPrintResources(t *testing.T) {
	var out bytes.Buffer
	gt.NoError(t, cli.PrintResources(&out, []*model.SyncResource{
		{Name: "all", Repository: "octo/all", Branch: "main", Token: "x"},
		{Name: "none", Repository: "octo/none", Branch: "main", Token: "x", Content: model.ContentPrefixes{}},
	}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	gt.V(t, len(lines)).Equal(3)
	gt.True(t, strings.Contains(lines[1], "*"))
	gt.True(t, strings.Contains(lines[1], "ok"))
	gt.True(t, strings.Contains(lines[2], " - "))
}

func TestPrintSyncResult(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("done", func(t *testing.T) {
		var out bytes.Buffer
		cli.PrintSyncResult(&out, &model.SyncResult{
			Resource:    "handbook",
			State:       types.SyncStateDone,
			Directories: 1,
			Files:       []string{"docs/a.md"},
			Skipped:     3,
			StartedAt:   started,
			FinishedAt:  started.Add(2 * time.Second),
		})
		gt.V(t, out.String()).Equal("synced handbook: 1 directories, 1 files, 3 skipped (2s)\n")
	})

	t.Run("failed", func(t *testing.T) {
		var out bytes.Buffer
		cli.PrintSyncResult(&out, &model.SyncResult{
			Resource:   "handbook",
			State:      types.SyncStateFailed,
			Files:      []string{"docs/a.md"},
			Stale:      []string{"docs/b.md", "docs/c.md"},
			FailedPath: "docs/b.md",
		})
		gt.V(t, out.String()).Equal("sync of handbook failed: 1 files written, 2 files not refreshed\nfailed at docs/b.md\n")
	})
}
