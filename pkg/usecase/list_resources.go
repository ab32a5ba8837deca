package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListResources returns registered resources sorted by name
func (x *UseCase) ListResources(ctx context.Context) []*model.SyncResource {
	return x.registry.Resources()
}

// ListSyncHistory returns recent passes of a registered resource, newest first. An incomplete
// resource can be queried as well.
func (x *UseCase) ListSyncHistory(ctx context.Context, resource types.ResourceName, limit int) ([]*model.SyncRecord, error) {
	if _, err := x.registry.Lookup(resource); errors.Is(err, types.ErrUnknownResource) {
		return nil, err
	}

	history := x.clients.SyncHistory()
	if history == nil {
		return nil, nil
	}

	records, err := history.ListSyncRecords(ctx, resource, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sync history", goerr.V("resource", resource))
	}
	return records, nil
}
