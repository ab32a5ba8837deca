package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
)

type UseCase interface {
	SyncResource(ctx context.Context, input *model.SyncInput) (*model.SyncResult, error)
	ListResources(ctx context.Context) []*model.SyncResource
	ListSyncHistory(ctx context.Context, resource types.ResourceName, limit int) ([]*model.SyncRecord, error)
}
