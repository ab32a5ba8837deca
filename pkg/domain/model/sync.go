package model

import (
	"time"

	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type SyncInput struct {
	Resource types.ResourceName
}

func (x *SyncInput) Validate() error {
	if x.Resource == "" {
		return goerr.Wrap(types.ErrValidationFailed, "resource name is empty")
	}
	return nil
}

// SyncResult reports one sync pass. It is returned for failed passes as well, so that callers can
// tell which files were refreshed before the failure.
type SyncResult struct {
	ID        types.SyncID       `json:"id"`
	Resource  types.ResourceName `json:"resource"`
	ApplyMode types.ApplyMode    `json:"apply_mode"`
	State     types.SyncState    `json:"state"`

	// Directories is the number of directory entries materialized
	Directories int `json:"directories"`
	// Files lists the file paths written, in listing order
	Files []string `json:"files"`
	// Skipped is the number of entries rejected by the content prefixes
	Skipped int `json:"skipped"`

	// FailedPath is the entry that aborted the pass, if any
	FailedPath string `json:"failed_path,omitempty"`
	// Stale lists matching file paths that were not refreshed because the pass failed
	Stale []string `json:"stale,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncRecord is an append-only history entry of a finished pass
type SyncRecord struct {
	ID          types.SyncID         `json:"id" bigquery:"id" firestore:"ID"`
	Resource    types.ResourceName   `json:"resource" bigquery:"resource" firestore:"Resource"`
	Repository  types.RepositoryName `json:"repository" bigquery:"repository" firestore:"Repository"`
	Branch      types.BranchName     `json:"branch" bigquery:"branch" firestore:"Branch"`
	ApplyMode   types.ApplyMode      `json:"apply_mode" bigquery:"apply_mode" firestore:"ApplyMode"`
	State       types.SyncState      `json:"state" bigquery:"state" firestore:"State"`
	Directories int                  `json:"directories" bigquery:"directories" firestore:"Directories"`
	Files       int                  `json:"files" bigquery:"files" firestore:"Files"`
	Skipped     int                  `json:"skipped" bigquery:"skipped" firestore:"Skipped"`
	Stale       int                  `json:"stale" bigquery:"stale" firestore:"Stale"`
	FailedPath  string               `json:"failed_path,omitempty" bigquery:"failed_path" firestore:"FailedPath"`
	Error       string               `json:"error,omitempty" bigquery:"error" firestore:"Error"`
	StartedAt   time.Time            `json:"started_at" bigquery:"started_at" firestore:"StartedAt"`
	FinishedAt  time.Time            `json:"finished_at" bigquery:"finished_at" firestore:"FinishedAt"`
}

// NewSyncRecord builds a history record from a pass result. res may be nil when the resource could
// not be resolved.
func NewSyncRecord(result *SyncResult, res *SyncResource, syncErr error) *SyncRecord {
	record := &SyncRecord{
		ID:          result.ID,
		Resource:    result.Resource,
		ApplyMode:   result.ApplyMode,
		State:       result.State,
		Directories: result.Directories,
		Files:       len(result.Files),
		Skipped:     result.Skipped,
		Stale:       len(result.Stale),
		FailedPath:  result.FailedPath,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
	}
	if res != nil {
		record.Repository = res.Repository
		record.Branch = res.Branch
	}
	if syncErr != nil {
		record.Error = syncErr.Error()
	}

	return record
}
