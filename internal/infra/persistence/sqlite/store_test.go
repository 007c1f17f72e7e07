package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWriteAndRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := &model.Dataset{
		Name:      "Most-Runs-2024",
		Statistic: "most-runs",
		Year:      "2024",
		Header:    model.Header{"POS", "Player", "Runs"},
		Rows: []model.Row{
			{"1", "V Kohli (RCB)", "741"},
			{"2", "R Gaikwad (CSK)", "583"},
		},
	}
	require.NoError(t, store.Write(ctx, want))

	got, err := store.Dataset(ctx, "Most-Runs-2024")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReplacesRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := &model.Dataset{
		Name:   "Team-Ranking-2023",
		Year:   "2023",
		Header: model.Header{"Pos", "Team"},
		Rows:   []model.Row{{"1", "GT (GT)"}, {"2", "CSK (CSK)"}, {"3", "LSG (LSG)"}},
	}
	require.NoError(t, store.Write(ctx, first))

	second := &model.Dataset{
		Name:   "Team-Ranking-2023",
		Year:   "2023",
		Header: model.Header{"Pos", "Team"},
		Rows:   []model.Row{{"1", "CSK (CSK)"}},
	}
	require.NoError(t, store.Write(ctx, second))

	got, err := store.Dataset(ctx, "Team-Ranking-2023")
	require.NoError(t, err)
	require.Equal(t, second.Rows, got.Rows)
}

func TestEmptyDataset(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, &model.Dataset{Name: "Most-Fours-all-time", Year: model.AllTime, Header: model.Header{}, Rows: []model.Row{}}))
	got, err := store.Dataset(ctx, "Most-Fours-all-time")
	require.NoError(t, err)
	require.Empty(t, got.Rows)
	require.Equal(t, model.AllTime, got.Year)
}

func TestMissingDataset(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Dataset(context.Background(), "nope")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
