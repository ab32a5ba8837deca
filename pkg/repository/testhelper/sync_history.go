package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/repository"
	"github.com/m-mizutani/gt"
)

// TestAll runs all test cases for SyncHistory
func TestAll(t *testing.T, repo interfaces.SyncHistory) {
	t.Run("PutAndList", func(t *testing.T) {
		TestPutAndList(t, repo)
	})
	t.Run("Limit", func(t *testing.T) {
		TestLimit(t, repo)
	})
	t.Run("Isolation", func(t *testing.T) {
		TestIsolation(t, repo)
	})
	t.Run("InvalidRecord", func(t *testing.T) {
		TestInvalidRecord(t, repo)
	})
	t.Run("Duplicated", func(t *testing.T) {
		TestDuplicated(t, repo)
	})
}

func newResourceName() types.ResourceName {
	return types.ResourceName(fmt.Sprintf("res-%s", uuid.New().String()[:8]))
}

func newRecord(resource types.ResourceName, startedAt time.Time, state types.SyncState) *model.SyncRecord {
	return &model.SyncRecord{
		ID:         types.NewSyncID(),
		Resource:   resource,
		Repository: "octo/handbook",
		Branch:     "main",
		ApplyMode:  types.ApplyModeDirect,
		State:      state,
		Files:      2,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(time.Second),
	}
}

// TestPutAndList checks that records come back newest first
func TestPutAndList(t *testing.T, repo interfaces.SyncHistory) {
	ctx := context.Background()
	resource := newResourceName()
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := newRecord(resource, base.Add(-time.Hour), types.SyncStateDone)
	newer := newRecord(resource, base, types.SyncStateFailed)
	newer.FailedPath = "docs/b.md"
	newer.Error = "blob download failed"

	gt.NoError(t, repo.PutSyncRecord(ctx, older))
	gt.NoError(t, repo.PutSyncRecord(ctx, newer))

	records, err := repo.ListSyncRecords(ctx, resource, 0)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(2)

	gt.V(t, records[0].ID).Equal(newer.ID)
	gt.V(t, records[0].State).Equal(types.SyncStateFailed)
	gt.V(t, records[0].FailedPath).Equal("docs/b.md")
	gt.V(t, records[0].Error).Equal("blob download failed")
	gt.True(t, records[0].StartedAt.Equal(newer.StartedAt))

	gt.V(t, records[1].ID).Equal(older.ID)
	gt.V(t, records[1].Files).Equal(2)
}

// TestLimit checks that limit keeps the newest records
func TestLimit(t *testing.T, repo interfaces.SyncHistory) {
	ctx := context.Background()
	resource := newResourceName()
	base := time.Now().UTC().Truncate(time.Millisecond)

	var ids []types.SyncID
	for i := 0; i < 3; i++ {
		record := newRecord(resource, base.Add(time.Duration(i)*time.Minute), types.SyncStateDone)
		ids = append(ids, record.ID)
		gt.NoError(t, repo.PutSyncRecord(ctx, record))
	}

	records, err := repo.ListSyncRecords(ctx, resource, 2)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(2)
	gt.V(t, records[0].ID).Equal(ids[2])
	gt.V(t, records[1].ID).Equal(ids[1])
}

// TestIsolation checks that records of another resource are not listed
func TestIsolation(t *testing.T, repo interfaces.SyncHistory) {
	ctx := context.Background()
	a := newResourceName()
	b := newResourceName()

	gt.NoError(t, repo.PutSyncRecord(ctx, newRecord(a, time.Now().UTC(), types.SyncStateDone)))

	records, err := repo.ListSyncRecords(ctx, b, 0)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(0)
}

// TestInvalidRecord checks that a record without ID is rejected
func TestInvalidRecord(t *testing.T, repo interfaces.SyncHistory) {
	ctx := context.Background()
	record := newRecord(newResourceName(), time.Now().UTC(), types.SyncStateDone)
	record.ID = ""

	err := repo.PutSyncRecord(ctx, record)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}

// TestDuplicated checks that a record can not be overwritten
func TestDuplicated(t *testing.T, repo interfaces.SyncHistory) {
	ctx := context.Background()
	record := newRecord(newResourceName(), time.Now().UTC().Truncate(time.Millisecond), types.SyncStateDone)
	gt.NoError(t, repo.PutSyncRecord(ctx, record))

	dup := *record
	dup.State = types.SyncStateFailed
	err := repo.PutSyncRecord(ctx, &dup)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrDuplicated))

	records, err := repo.ListSyncRecords(ctx, record.Resource, 0)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(1)
	gt.V(t, records[0].State).Equal(types.SyncStateDone)
}
