package interfaces

import (
	"context"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
)

//go:generate moq -out ../mock/sync_history_mock.go -pkg mock . SyncHistory

// SyncHistory is an append-only log of finished sync passes
type SyncHistory interface {
	PutSyncRecord(ctx context.Context, record *model.SyncRecord) error
	// ListSyncRecords returns records of the resource, newest first. limit <= 0 means no limit.
	ListSyncRecords(ctx context.Context, resource types.ResourceName, limit int) ([]*model.SyncRecord, error)
}
