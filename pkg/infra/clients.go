package infra

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
)

// DefaultContentRoot is the local directory mirrors are written under
const DefaultContentRoot = "content/docs"

type Clients struct {
	github      interfaces.GitHub
	contentRoot billy.Filesystem
	bqClient    interfaces.BigQuery
	syncHistory interfaces.SyncHistory
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		contentRoot: osfs.New(DefaultContentRoot),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) ContentRoot() billy.Filesystem {
	return x.contentRoot
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) SyncHistory() interfaces.SyncHistory {
	return x.syncHistory
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

// WithContentRoot sets the filesystem whose root is the local content root
func WithContentRoot(fs billy.Filesystem) Option {
	return func(x *Clients) {
		x.contentRoot = fs
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithSyncHistory(repo interfaces.SyncHistory) Option {
	return func(x *Clients) {
		x.syncHistory = repo
	}
}
