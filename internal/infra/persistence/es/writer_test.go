package es

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

type fakeClient struct {
	createCalls int
	createErr   error
	indexed     []*RowDoc
	counts      int
	countErr    error
}

func (f *fakeClient) CreateIndexWithMapping(context.Context) error {
	f.createCalls++
	return f.createErr
}

func (f *fakeClient) BulkIndexDocsWithID(_ context.Context, docs []*RowDoc) error {
	f.indexed = append(f.indexed, docs...)
	return nil
}

func (f *fakeClient) CountDocs(context.Context) (int64, error) {
	f.counts++
	return int64(len(f.indexed)), f.countErr
}

var scrapedAt = time.Date(2024, 5, 26, 18, 0, 0, 0, time.UTC)

func TestRowDocs(t *testing.T) {
	dataset := &model.Dataset{
		Name:      "Most-Runs-2024",
		Statistic: "most-runs",
		Year:      "2024",
		Header:    model.Header{"Pos", "Player", "Runs", "Runs"},
		Rows: []model.Row{
			{"1", "V Kohli (RCB)", "741", "38"},
			{"2", "R Gaikwad (CSK)", "583", "29", "spill"},
		},
	}

	docs := RowDocs(dataset, scrapedAt)
	require.Len(t, docs, 2)

	require.Equal(t, &RowDoc{
		ID:        "Most-Runs-2024-1",
		Dataset:   "Most-Runs-2024",
		Statistic: "most-runs",
		Year:      "2024",
		Position:  1,
		Rank:      "1",
		Name:      "V Kohli (RCB)",
		Cells:     map[string]string{"Pos": "1", "Player": "V Kohli (RCB)", "Runs": "741", "Runs_2": "38"},
		ScrapedAt: scrapedAt,
	}, docs[0])
	require.Equal(t, "spill", docs[1].Cells["col_5"])
	require.Equal(t, "Most-Runs-2024-2", docs[1].ID)
}

func TestWriterEnsuresIndexOnce(t *testing.T) {
	client := &fakeClient{}
	w := NewWriter(client)
	w.now = func() time.Time { return scrapedAt }

	d := &model.Dataset{Name: "Team-Ranking-2024", Header: model.Header{"Pos", "Team"}, Rows: []model.Row{{"1", "KKR (KKR)"}}}
	require.NoError(t, w.Write(context.Background(), d))
	require.NoError(t, w.Write(context.Background(), d))

	require.Equal(t, 1, client.createCalls)
	require.Len(t, client.indexed, 2)
	require.Equal(t, 2, client.counts)
}

func TestWriterIgnoresCountFailure(t *testing.T) {
	client := &fakeClient{countErr: errors.New("index_not_found_exception")}
	w := NewWriter(client)

	d := &model.Dataset{Name: "Most-Runs-2024", Rows: []model.Row{{"1", "V Kohli (RCB)"}}}
	require.NoError(t, w.Write(context.Background(), d))
	require.Len(t, client.indexed, 1)
	require.Equal(t, 1, client.counts)
}

func TestWriterCreateIndexFailure(t *testing.T) {
	boom := errors.New("connection refused")
	w := NewWriter(&fakeClient{createErr: boom})
	err := w.Write(context.Background(), &model.Dataset{Name: "x"})
	require.ErrorIs(t, err, boom)
}
