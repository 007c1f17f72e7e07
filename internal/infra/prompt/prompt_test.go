package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

var (
	testYears = []model.YearToken{"2024", "2023", "2022", model.AllTime}
	testStats = []model.StatCategory{
		{ID: "most-runs", Title: "Most Runs"},
		{ID: "most-wickets", Title: "Most Wickets"},
		{ID: "team-ranking", Title: "Team Ranking"},
	}
)

type recordingSelector struct {
	yearsAsked bool
	statsAsked bool
}

func (r *recordingSelector) SelectYears(years []model.YearToken) ([]model.YearToken, error) {
	r.yearsAsked = true
	return years[:1], nil
}

func (r *recordingSelector) SelectStatistics(stats []model.StatCategory) ([]model.StatCategory, error) {
	r.statsAsked = true
	return stats[:1], nil
}

func TestPickKeepsCatalogOrder(t *testing.T) {
	require.Equal(t, []model.YearToken{"2024", "2022", model.AllTime}, pick(testYears, []int{3, 0, 2, 0}))
	require.Empty(t, pick(testYears, nil))
	require.Equal(t, []model.YearToken{"2023"}, pick(testYears, []int{1, 9, -1}))
}

func TestPresetSelector(t *testing.T) {
	p := &PresetSelector{Years: []string{"all-time", "2023"}, Stats: []string{"team-ranking", "most-runs"}}

	years, err := p.SelectYears(testYears)
	require.NoError(t, err)
	require.Equal(t, []model.YearToken{"2023", model.AllTime}, years)

	stats, err := p.SelectStatistics(testStats)
	require.NoError(t, err)
	require.Equal(t, []model.StatCategory{testStats[0], testStats[2]}, stats)
}

func TestPresetSelectorAll(t *testing.T) {
	p := &PresetSelector{All: true}
	years, err := p.SelectYears(testYears)
	require.NoError(t, err)
	require.Equal(t, testYears, years)

	p = &PresetSelector{Stats: []string{"ALL"}}
	stats, err := p.SelectStatistics(testStats)
	require.NoError(t, err)
	require.Equal(t, testStats, stats)
}

func TestPresetSelectorUnknownValue(t *testing.T) {
	p := &PresetSelector{Years: []string{"1999"}, Stats: []string{"most-catches"}}

	_, err := p.SelectYears(testYears)
	require.ErrorContains(t, err, `unknown year "1999"`)
	require.ErrorContains(t, err, "2024, 2023, 2022, all-time")

	_, err = p.SelectStatistics(testStats)
	require.ErrorContains(t, err, "most-runs, most-wickets, team-ranking")
}

func TestPresetSelectorFallback(t *testing.T) {
	fallback := &recordingSelector{}
	p := &PresetSelector{Years: []string{"2022"}, Fallback: fallback}

	years, err := p.SelectYears(testYears)
	require.NoError(t, err)
	require.Equal(t, []model.YearToken{"2022"}, years)
	require.False(t, fallback.yearsAsked)

	stats, err := p.SelectStatistics(testStats)
	require.NoError(t, err)
	require.Equal(t, testStats[:1], stats)
	require.True(t, fallback.statsAsked)
}
