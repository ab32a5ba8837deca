package usecase

import (
	"context"
	"path"
	"sync"

	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra/mirror"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// StagingDir is the directory under the content root used by the staged apply mode
const StagingDir = types.StagingDir

// SyncResource mirrors the content of a registered resource into the content root. The result is
// returned for failed passes as well.
func (x *UseCase) SyncResource(ctx context.Context, input *model.SyncInput) (*model.SyncResult, error) {
	result := &model.SyncResult{
		ID:        types.NewSyncID(),
		Resource:  input.Resource,
		ApplyMode: x.applyMode,
		State:     types.SyncStateValidating,
		StartedAt: logging.CtxTime(ctx),
	}

	logger := logging.From(ctx).With("sync_id", result.ID, "resource", input.Resource)
	ctx = logging.With(ctx, logger)

	res, err := x.syncResource(ctx, input, result)

	result.FinishedAt = logging.CtxTime(ctx)
	if err != nil {
		result.State = types.SyncStateFailed
		logger.Warn("sync failed",
			"error", err,
			"failed_path", result.FailedPath,
			"files", len(result.Files),
			"stale", len(result.Stale),
		)
	} else {
		result.State = types.SyncStateDone
		logger.Info("sync finished",
			"directories", result.Directories,
			"files", len(result.Files),
			"skipped", result.Skipped,
			"duration", result.FinishedAt.Sub(result.StartedAt),
		)
	}

	x.recordSync(ctx, result, res, err)

	return result, err
}

func (x *UseCase) syncResource(ctx context.Context, input *model.SyncInput, result *model.SyncResult) (*model.SyncResource, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := x.applyMode.Validate(); err != nil {
		return nil, err
	}

	res, err := x.registry.Lookup(input.Resource)
	if err != nil {
		return nil, err
	}

	if x.clients.GitHub() == nil {
		return res, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured")
	}

	unlock := x.lockResource(res.Name)
	defer unlock()

	result.State = types.SyncStateListing
	tree, err := x.clients.GitHub().GetTree(ctx, &interfaces.GetTreeInput{
		Repository: res.Repository,
		Branch:     res.Branch,
		Token:      res.Token,
	})
	if err != nil {
		return res, goerr.Wrap(err, "failed to list remote tree",
			goerr.V("repository", res.Repository),
			goerr.V("branch", res.Branch),
		)
	}
	if tree.Truncated {
		logging.From(ctx).Warn("remote tree listing is truncated, mirror may be incomplete",
			"repository", res.Repository,
			"branch", res.Branch,
			"entries", len(tree.Entries),
		)
	}

	entries, skipped := filterEntries(tree.Entries, res.Content)
	result.Skipped = skipped
	result.State = types.SyncStateProcessing

	root := mirror.New(x.clients.ContentRoot())
	switch x.applyMode {
	case types.ApplyModeStaged:
		return res, x.applyStaged(ctx, root, res, entries, result)
	default:
		dst, err := root.Sub(res.Name.String())
		if err != nil {
			result.Stale = filePaths(entries)
			return res, err
		}
		return res, x.processEntries(ctx, dst, res, entries, result)
	}
}

// filterEntries keeps directory and file entries accepted by prefixes, in listing order. Entries
// of other kinds are dropped without being counted as skipped.
func filterEntries(entries []*model.TreeEntry, prefixes model.ContentPrefixes) ([]*model.TreeEntry, int) {
	var resp []*model.TreeEntry
	var skipped int
	for _, entry := range entries {
		if !entry.IsFile() && !entry.IsDirectory() {
			continue
		}
		if !prefixes.Match(entry.Path) {
			skipped++
			continue
		}
		resp = append(resp, entry)
	}
	return resp, skipped
}

func filePaths(entries []*model.TreeEntry) []string {
	var resp []string
	for _, entry := range entries {
		if entry.IsFile() {
			resp = append(resp, entry.Path)
		}
	}
	return resp
}

func (x *UseCase) applyStaged(ctx context.Context, root *mirror.Writer, res *model.SyncResource, entries []*model.TreeEntry, result *model.SyncResult) error {
	staged := path.Join(StagingDir, "new."+result.ID.String()+"."+res.Name.String())
	trash := path.Join(StagingDir, "old."+result.ID.String()+"."+res.Name.String())

	dst, err := root.Sub(staged)
	if err != nil {
		result.Stale = filePaths(entries)
		return err
	}

	if err := x.processEntries(ctx, dst, res, entries, result); err != nil {
		if rmErr := root.RemoveAll(staged); rmErr != nil {
			logging.From(ctx).Warn("failed to remove staging directory", "error", rmErr, "path", staged)
		}
		// Nothing reached the mirror
		result.Files = nil
		result.Stale = filePaths(entries)
		return err
	}

	if err := root.Replace(staged, res.Name.String(), trash); err != nil {
		result.Files = nil
		if rmErr := root.RemoveAll(staged); rmErr != nil {
			logging.From(ctx).Warn("failed to remove staging directory", "error", rmErr, "path", staged)
		}
		result.Stale = filePaths(entries)
		return err
	}

	return nil
}

func (x *UseCase) processEntries(ctx context.Context, dst *mirror.Writer, res *model.SyncResource, entries []*model.TreeEntry, result *model.SyncResult) error {
	if x.workers > 1 {
		return x.processConcurrently(ctx, dst, res, entries, result)
	}
	return x.processSequentially(ctx, dst, res, entries, result)
}

// processSequentially handles entries one by one in listing order and stops at the first failure
func (x *UseCase) processSequentially(ctx context.Context, dst *mirror.Writer, res *model.SyncResource, entries []*model.TreeEntry, result *model.SyncResult) error {
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			result.Stale = filePaths(entries[i:])
			return goerr.Wrap(err, "sync is cancelled", goerr.V("path", entry.Path))
		}

		if entry.IsDirectory() {
			if err := dst.EnsureDir(entry.Path); err != nil {
				result.FailedPath = entry.Path
				result.Stale = filePaths(entries[i:])
				return err
			}
			result.Directories++
			continue
		}

		if err := x.fetchAndWrite(ctx, dst, res, entry); err != nil {
			result.FailedPath = entry.Path
			result.Stale = filePaths(entries[i:])
			return err
		}
		result.Files = append(result.Files, entry.Path)
	}

	return nil
}

// processConcurrently creates the whole directory skeleton first, then downloads files in a
// bounded pool. The first failure cancels downloads that have not started yet.
func (x *UseCase) processConcurrently(ctx context.Context, dst *mirror.Writer, res *model.SyncResource, entries []*model.TreeEntry, result *model.SyncResult) error {
	var files []*model.TreeEntry
	for _, entry := range entries {
		if entry.IsDirectory() {
			if err := dst.EnsureDir(entry.Path); err != nil {
				result.FailedPath = entry.Path
				result.Stale = filePaths(entries)
				return err
			}
			result.Directories++
			continue
		}

		if parent := path.Dir(entry.Path); parent != "." {
			if err := dst.EnsureDir(parent); err != nil {
				result.FailedPath = entry.Path
				result.Stale = filePaths(entries)
				return err
			}
		}
		files = append(files, entry)
	}

	written := make([]bool, len(files))
	var (
		mu         sync.Mutex
		failedPath string
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(x.workers)

	for i, entry := range files {
		if gctx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return goerr.Wrap(err, "sync is cancelled", goerr.V("path", entry.Path))
			}

			if err := x.fetchAndWrite(gctx, dst, res, entry); err != nil {
				mu.Lock()
				if failedPath == "" {
					failedPath = entry.Path
				}
				mu.Unlock()
				return err
			}
			written[i] = true
			return nil
		})
	}

	err := eg.Wait()

	for i, entry := range files {
		if written[i] {
			result.Files = append(result.Files, entry.Path)
		} else {
			result.Stale = append(result.Stale, entry.Path)
		}
	}
	result.FailedPath = failedPath

	// Dispatch stops without an error from any task when the caller cancels
	if err == nil && len(result.Stale) > 0 {
		err = goerr.Wrap(context.Cause(ctx), "sync is cancelled")
	}

	return err
}

func (x *UseCase) fetchAndWrite(ctx context.Context, dst *mirror.Writer, res *model.SyncResource, entry *model.TreeEntry) error {
	data, err := x.clients.GitHub().GetBlob(ctx, &interfaces.GetBlobInput{
		Repository: res.Repository,
		Branch:     res.Branch,
		Path:       entry.Path,
		Token:      res.Token,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to download blob", goerr.V("path", entry.Path))
	}

	if err := dst.WriteFile(entry.Path, data); err != nil {
		return goerr.Wrap(err, "failed to write mirrored file", goerr.V("path", entry.Path))
	}

	logging.From(ctx).Debug("file mirrored", "path", entry.Path, "size", len(data))
	return nil
}
