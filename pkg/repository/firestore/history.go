package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionResource = "resource"
	collectionSync     = "sync"
)

type syncHistory struct {
	client *firestore.Client
}

// ToResourceDocID validates a resource name for use as a Firestore document ID
func ToResourceDocID(resource types.ResourceName) (string, error) {
	name := resource.String()
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") || strings.HasPrefix(name, "__") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "resource name is not a valid document ID",
			goerr.V("resource", resource),
		)
	}
	return name, nil
}

func (r *syncHistory) syncCollection(resource types.ResourceName) (*firestore.CollectionRef, error) {
	docID, err := ToResourceDocID(resource)
	if err != nil {
		return nil, err
	}
	return r.client.Collection(collectionResource).Doc(docID).Collection(collectionSync), nil
}

func (r *syncHistory) PutSyncRecord(ctx context.Context, record *model.SyncRecord) error {
	if record == nil || record.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "sync record requires ID",
			goerr.V("record", record),
		)
	}

	col, err := r.syncCollection(record.Resource)
	if err != nil {
		return err
	}

	if _, err := col.Doc(record.ID.String()).Create(ctx, record); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(repository.ErrDuplicated, "sync record already exists",
				goerr.V("resource", record.Resource),
				goerr.V("syncID", record.ID),
			)
		}
		return goerr.Wrap(err, "failed to put sync record",
			goerr.V("resource", record.Resource),
			goerr.V("syncID", record.ID),
		)
	}

	return nil
}

func (r *syncHistory) ListSyncRecords(ctx context.Context, resource types.ResourceName, limit int) ([]*model.SyncRecord, error) {
	col, err := r.syncCollection(resource)
	if err != nil {
		return nil, err
	}

	query := col.OrderBy("StartedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.SyncRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sync records",
				goerr.V("resource", resource),
			)
		}

		var record model.SyncRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode sync record",
				goerr.V("resource", resource),
				goerr.V("docID", doc.Ref.ID),
			)
		}
		records = append(records, &record)
	}

	return records, nil
}
