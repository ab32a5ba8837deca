package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/utils/errutil"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// recordSync stores the outcome of a pass in the configured sinks. Sink failures are reported and
// never change the outcome of the pass. Passes rejected before the resource was resolved are not
// recorded.
func (x *UseCase) recordSync(ctx context.Context, result *model.SyncResult, res *model.SyncResource, syncErr error) {
	if res == nil {
		logging.From(ctx).Debug("sync record skipped, resource is not resolved", "error", syncErr)
		return
	}

	// A cancelled pass is still recorded
	ctx = context.WithoutCancel(ctx)
	record := model.NewSyncRecord(result, res, syncErr)

	if history := x.clients.SyncHistory(); history != nil {
		if err := history.PutSyncRecord(ctx, record); err != nil {
			errutil.HandleError(ctx, "failed to save sync history", err)
		}
	}

	if bq := x.clients.BigQuery(); bq != nil {
		if err := insertSyncRecord(ctx, bq, record); err != nil {
			errutil.HandleError(ctx, "failed to export sync record to BigQuery", err)
		}
	}
}

func insertSyncRecord(ctx context.Context, bq interfaces.BigQuery, record *model.SyncRecord) error {
	schema, err := createOrUpdateBigQueryTable(ctx, bq, record)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, record); err != nil {
		return goerr.Wrap(err, "failed to insert sync record to BigQuery", goerr.V("syncID", record.ID))
	}

	logging.From(ctx).Debug("sync record exported", "sync_id", record.ID)
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, record *model.SyncRecord) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer sync record schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Field: "started_at",
				Type:  bigquery.DayPartitioningType,
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
