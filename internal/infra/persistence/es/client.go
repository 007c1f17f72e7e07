package es

import "context"

type TypedEsClient interface {
	CreateIndexWithMapping(ctx context.Context) error
	BulkIndexDocsWithID(ctx context.Context, docs []*RowDoc) error
	CountDocs(ctx context.Context) (int64, error)
}
