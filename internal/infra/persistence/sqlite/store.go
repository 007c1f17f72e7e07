// Package sqlite keeps scraped datasets in a local sqlite database. A dataset
// written twice replaces its earlier rows.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
// path may be ":memory:".
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// :memory: 数据库每个连接都是独立的
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Name() string {
	return "sqlite"
}

func (s *Store) Write(ctx context.Context, dataset *model.Dataset) (err error) {
	header, err := json.Marshal(dataset.Header)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (name, statistic, year, header, scraped_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			statistic = excluded.statistic,
			year = excluded.year,
			header = excluded.header,
			scraped_at = excluded.scraped_at`,
		dataset.Name, dataset.Statistic, string(dataset.Year), string(header), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert dataset %s: %w", dataset.Name, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM dataset_rows WHERE dataset = ?", dataset.Name); err != nil {
		return fmt.Errorf("clear rows of %s: %w", dataset.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO dataset_rows (dataset, position, cells) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, row := range dataset.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, dataset.Name, i+1, string(cells)); err != nil {
			return fmt.Errorf("insert row %d of %s: %w", i+1, dataset.Name, err)
		}
	}
	return tx.Commit()
}

// Dataset loads a stored dataset by name. It returns sql.ErrNoRows when the
// dataset was never written.
func (s *Store) Dataset(ctx context.Context, name string) (*model.Dataset, error) {
	var (
		dataset model.Dataset
		year    string
		header  string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT name, statistic, year, header FROM datasets WHERE name = ?", name,
	).Scan(&dataset.Name, &dataset.Statistic, &year, &header)
	if err != nil {
		return nil, err
	}
	dataset.Year = model.YearToken(year)
	if err := json.Unmarshal([]byte(header), &dataset.Header); err != nil {
		return nil, fmt.Errorf("decode header of %s: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT cells FROM dataset_rows WHERE dataset = ? ORDER BY position", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dataset.Rows = []model.Row{}
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		var row model.Row
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("decode row of %s: %w", name, err)
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return &dataset, rows.Err()
}
