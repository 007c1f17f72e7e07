// Package csvfile writes datasets as comma separated files named
// "{prefix}-{dataset}.csv".
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

type Writer struct {
	dir    string
	prefix string
	out    io.Writer
}

// New returns a writer placing files in dir and announcing each saved path on out.
func New(dir, prefix string, out io.Writer) *Writer {
	return &Writer{dir: dir, prefix: prefix, out: out}
}

func (w *Writer) Name() string {
	return "csv"
}

// Path returns where the dataset called name is written.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.csv", w.prefix, name))
}

func (w *Writer) Write(ctx context.Context, dataset *model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := w.Path(dataset.Name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := writeRecords(f, dataset); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	fmt.Fprintf(w.out, "%s saved as: %s\n", dataset.Name, absPath)
	return nil
}

func writeRecords(out io.Writer, dataset *model.Dataset) error {
	cw := csv.NewWriter(out)
	if len(dataset.Header) > 0 {
		if err := cw.Write(dataset.Header); err != nil {
			return err
		}
	}
	for _, row := range dataset.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
