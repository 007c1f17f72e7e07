package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/dimchansky/utfbom"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(utfbom.SkipOnly(bytes.NewReader(data))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	w := New(dir, "Result", &out)

	dataset := &model.Dataset{
		Name:   "Most-Runs-2024",
		Header: model.Header{"Pos", "Player", "Mat", "Runs"},
		Rows: []model.Row{
			{"1", "V Kohli (RCB)", "16", "741"},
			{"2", "R Gaikwad, Jr (CSK)", "14", "583"},
		},
	}
	require.NoError(t, w.Write(context.Background(), dataset))

	path := filepath.Join(dir, "Result-Most-Runs-2024.csv")
	require.Equal(t, path, w.Path("Most-Runs-2024"))

	expected := [][]string{
		{"Pos", "Player", "Mat", "Runs"},
		{"1", "V Kohli (RCB)", "16", "741"},
		{"2", "R Gaikwad, Jr (CSK)", "14", "583"},
	}
	if diff := cmp.Diff(expected, readCSV(t, path)); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "Most-Runs-2024 saved as: "+path+"\n", out.String())
}

func TestWriteEmptyTable(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "Result", &bytes.Buffer{})

	dataset := &model.Dataset{Name: "Team-Ranking-2024", Header: model.Header{"Pos", "Team", "Pts"}}
	require.NoError(t, w.Write(context.Background(), dataset))
	require.Equal(t, [][]string{{"Pos", "Team", "Pts"}}, readCSV(t, w.Path("Team-Ranking-2024")))
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := New(dir, "Result", &bytes.Buffer{})
	require.NoError(t, w.Write(context.Background(), &model.Dataset{Name: "Most-Runs-all-time"}))
	_, err := os.Stat(filepath.Join(dir, "Result-Most-Runs-all-time.csv"))
	require.NoError(t, err)
}
