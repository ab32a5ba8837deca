package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra/bq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type BigQuery struct {
	projectID types.GoogleProjectID
	datasetID types.BQDatasetID
	tableID   types.BQTableID
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID for sync history export (optional)",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("DOCMIRROR_BIGQUERY_PROJECT_ID"),
			Destination: (*string)(&x.projectID),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("DOCMIRROR_BIGQUERY_DATASET_ID"),
			Destination: (*string)(&x.datasetID),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       types.DefaultBQTableID.String(),
			Sources:     cli.EnvVars("DOCMIRROR_BIGQUERY_TABLE_ID"),
			Destination: (*string)(&x.tableID),
		},
	}
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
	)
}

// NewClient returns nil without error when export is not configured
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if x.projectID == "" {
		return nil, nil
	}
	if x.datasetID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bigquery-dataset-id is required when bigquery-project-id is set",
			goerr.V("projectID", x.projectID),
		)
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID)
	if err != nil {
		return nil, err
	}
	return client, nil
}
