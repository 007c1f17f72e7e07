package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// DatasetWriter persists one dataset. Implementations are called from a
// single goroutine per writer.
type DatasetWriter interface {
	Name() string
	Write(ctx context.Context, dataset *model.Dataset) error
}

// MultiWriter writes every dataset to all of its writers concurrently.
type MultiWriter struct {
	writers []DatasetWriter
}

func NewMultiWriter(writers ...DatasetWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Name() string {
	return "multi"
}

// Write runs every writer with the caller's ctx to completion, even when
// another writer fails. All failures are joined.
func (mw *MultiWriter) Write(ctx context.Context, dataset *model.Dataset) error {
	var g errgroup.Group
	errs := make([]error, len(mw.writers))
	for i, w := range mw.writers {
		g.Go(func() error {
			if err := w.Write(ctx, dataset); err != nil {
				errs[i] = fmt.Errorf("%s: %w", w.Name(), err)
			}
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}
