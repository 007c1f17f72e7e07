package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

const landingPage = `<html><body>
<div class="np-battingtable_contaner 2023"></div>
<div class="np-battingtable_contaner 2024"></div>
<div class="np-battingtable_contaner 2023"></div>
<div class="np-battingtable_contaner 2008"></div>
<a class="st-table statsTable" href="https://www.iplt20.com/stats/2024/most-runs">Most
   Runs</a>
<a class="st-table statsTable" href="/stats/2024/most-wickets/">Most Wickets</a>
<a class="st-table statsTable" href="">Broken</a>
<a class="st-table statsTable" href="/stats/2024/team-ranking?tab=all">Team Ranking</a>
</body></html>`

type fakeFetcher struct {
	html  string
	err   error
	calls []string
}

func (f *fakeFetcher) FetchHTML(_ context.Context, url, readySelector string) (string, error) {
	f.calls = append(f.calls, url+" "+readySelector)
	return f.html, f.err
}

func newTestService(f *fakeFetcher) *Service {
	return InitCatalogService(f, "https://www.iplt20.com/stats/", ".np-battingtable_contaner", ".st-table.statsTable")
}

func TestListYears(t *testing.T) {
	s := newTestService(&fakeFetcher{html: landingPage})
	years := s.ListYears(context.Background())
	require.Equal(t, []model.YearToken{"2024", "2023", "2008", model.AllTime}, years)
}

func TestListStatCategories(t *testing.T) {
	s := newTestService(&fakeFetcher{html: landingPage})
	stats := s.ListStatCategories(context.Background())
	require.Equal(t, []model.StatCategory{
		{ID: "most-runs", Title: "Most Runs"},
		{ID: "most-wickets", Title: "Most Wickets"},
		{ID: "team-ranking", Title: "Team Ranking"},
	}, stats)
}

func TestDiscoverFetchesOnce(t *testing.T) {
	f := &fakeFetcher{html: landingPage}
	catalog := newTestService(f).Discover(context.Background())

	require.Len(t, f.calls, 1)
	require.Equal(t, "https://www.iplt20.com/stats/ .st-table.statsTable", f.calls[0])
	require.False(t, catalog.Empty())
	require.Len(t, catalog.Years, 4)
	require.Len(t, catalog.Statistics, 3)
}

func TestFetchFailureYieldsEmpty(t *testing.T) {
	s := newTestService(&fakeFetcher{err: errors.New("timeout")})

	require.Empty(t, s.ListYears(context.Background()))
	require.Empty(t, s.ListStatCategories(context.Background()))
	require.True(t, s.Discover(context.Background()).Empty())
}

func TestAllTimeAlwaysOffered(t *testing.T) {
	s := newTestService(&fakeFetcher{html: `<html><body><a class="st-table statsTable" href="/x/most-runs">Most Runs</a></body></html>`})
	catalog := s.Discover(context.Background())

	require.Equal(t, []model.YearToken{model.AllTime}, catalog.Years)
	require.Len(t, catalog.Statistics, 1)
	require.False(t, catalog.Empty())
}

func TestLastPathSegment(t *testing.T) {
	tests := map[string]string{
		"https://www.iplt20.com/stats/2024/most-runs": "most-runs",
		"/stats/2024/most-sixes/":                     "most-sixes",
		"most-fours":                                  "most-fours",
		"/stats/2024/team-ranking?tab=all":            "team-ranking",
		"":                                            "",
		"/":                                           "",
	}
	for href, want := range tests {
		require.Equal(t, want, lastPathSegment(href), href)
	}
}
