package es

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

// Writer indexes every row of a dataset as its own document.
type Writer struct {
	client       TypedEsClient
	indexEnsured bool
	now          func() time.Time
}

func NewWriter(client TypedEsClient) *Writer {
	return &Writer{client: client, now: time.Now}
}

func (w *Writer) Name() string {
	return "elasticsearch"
}

func (w *Writer) Write(ctx context.Context, dataset *model.Dataset) error {
	if !w.indexEnsured {
		if err := w.client.CreateIndexWithMapping(ctx); err != nil {
			return err
		}
		w.indexEnsured = true
	}
	if err := w.client.BulkIndexDocsWithID(ctx, RowDocs(dataset, w.now().UTC())); err != nil {
		return fmt.Errorf("index %s: %w", dataset.Name, err)
	}
	total, err := w.client.CountDocs(ctx)
	if err != nil {
		log.Printf("统计索引文档数失败: %v", err)
		return nil
	}
	log.Printf("%s 已写入 %d 行, 索引共 %d 个文档", dataset.Name, len(dataset.Rows), total)
	return nil
}
