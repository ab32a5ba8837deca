package infra_test

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/m-mizutani/docmirror/pkg/domain/mock"
	"github.com/m-mizutani/docmirror/pkg/infra"
	"github.com/m-mizutani/docmirror/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// Content root defaults to an OS filesystem, which is not touched until a sync runs
		gt.V(t, clients.ContentRoot().Root()).Equal(infra.DefaultContentRoot)
		gt.V(t, clients.GitHub()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
		gt.V(t, clients.SyncHistory()).Equal(nil)
	})

	t.Run("WithGitHub option sets GitHub client", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		clients := infra.New(infra.WithGitHub(mockGH))
		gt.V(t, clients.GitHub()).Equal(mockGH)
	})

	t.Run("WithContentRoot option sets filesystem", func(t *testing.T) {
		fs := memfs.New()
		clients := infra.New(infra.WithContentRoot(fs))
		gt.V(t, clients.ContentRoot()).Equal(fs)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		mockBQ := &mock.BigQueryMock{}
		history := memory.New()

		clients := infra.New(
			infra.WithGitHub(mockGH),
			infra.WithBigQuery(mockBQ),
			infra.WithSyncHistory(history),
		)

		gt.V(t, clients.GitHub()).Equal(mockGH)
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
		gt.V(t, clients.SyncHistory()).Equal(history)
	})
}
