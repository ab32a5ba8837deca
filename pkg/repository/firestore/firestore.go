package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID types.GoogleProjectID, databaseID types.FirestoreDatabaseID) (interfaces.SyncHistory, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, string(projectID), string(databaseID))
	} else {
		client, err = firestore.NewClient(ctx, string(projectID))
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &syncHistory{
		client: client,
	}, nil
}
