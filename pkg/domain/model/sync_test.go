package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSyncInputValidate(t *testing.T) {
	gt.NoError(t, (&model.SyncInput{Resource: "handbook"}).Validate())

	err := (&model.SyncInput{}).Validate()
	gt.True(t, errors.Is(err, types.ErrValidationFailed))
}

func TestNewSyncRecord(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := &model.SyncResult{
		ID:          "sync-1",
		Resource:    "handbook",
		ApplyMode:   types.ApplyModeDirect,
		State:       types.SyncStateFailed,
		Directories: 2,
		Files:       []string{"docs/a.md", "docs/b.md"},
		Skipped:     3,
		FailedPath:  "docs/c.md",
		Stale:       []string{"docs/c.md", "docs/d.md", "docs/e.md"},
		StartedAt:   now,
		FinishedAt:  now.Add(time.Second),
	}

	t.Run("with resource and error", func(t *testing.T) {
		record := model.NewSyncRecord(result, newResource(), errors.New("boom"))
		gt.V(t, record.ID).Equal(types.SyncID("sync-1"))
		gt.V(t, record.Repository).Equal(types.RepositoryName("example/handbook"))
		gt.V(t, record.Branch).Equal(types.BranchName("main"))
		gt.V(t, record.Files).Equal(2)
		gt.V(t, record.Stale).Equal(3)
		gt.V(t, record.Skipped).Equal(3)
		gt.V(t, record.FailedPath).Equal("docs/c.md")
		gt.V(t, record.Error).Equal("boom")
		gt.V(t, record.FinishedAt.Sub(record.StartedAt)).Equal(time.Second)
	})

	t.Run("without resource", func(t *testing.T) {
		record := model.NewSyncRecord(result, nil, nil)
		gt.V(t, record.Repository).Equal(types.RepositoryName(""))
		gt.V(t, record.Error).Equal("")
	})
}
