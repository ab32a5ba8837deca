package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

type syncHistory struct {
	mu      sync.RWMutex
	records map[string][]*model.SyncRecord
}

func (r *syncHistory) PutSyncRecord(ctx context.Context, record *model.SyncRecord) error {
	if record == nil || record.Resource == "" || record.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "sync record requires ID and resource",
			goerr.V("record", record),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := record.Resource.String()
	for _, stored := range r.records[key] {
		if stored.ID == record.ID {
			return goerr.Wrap(repository.ErrDuplicated, "sync record already exists",
				goerr.V("resource", record.Resource),
				goerr.V("syncID", record.ID),
			)
		}
	}

	copied := *record
	r.records[key] = append(r.records[key], &copied)

	return nil
}

func (r *syncHistory) ListSyncRecords(ctx context.Context, resource types.ResourceName, limit int) ([]*model.SyncRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.records[resource.String()]
	resp := make([]*model.SyncRecord, 0, len(stored))
	for _, record := range stored {
		copied := *record
		resp = append(resp, &copied)
	}

	sort.SliceStable(resp, func(i, j int) bool {
		return resp[i].StartedAt.After(resp[j].StartedAt)
	})

	if limit > 0 && len(resp) > limit {
		resp = resp[:limit]
	}

	return resp, nil
}
