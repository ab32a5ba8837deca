package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery GitHub

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// GitHub is the remote tree and content API
type GitHub interface {
	GetTree(ctx context.Context, input *GetTreeInput) (*model.Tree, error)
	GetBlob(ctx context.Context, input *GetBlobInput) ([]byte, error)
}

type GetTreeInput struct {
	Repository types.RepositoryName
	Branch     types.BranchName
	Token      types.GitHubToken
}

type GetBlobInput struct {
	Repository types.RepositoryName
	Branch     types.BranchName
	Path       string
	Token      types.GitHubToken
}
