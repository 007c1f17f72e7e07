package scrape

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

type Status string

const (
	StatusWritten     Status = "written"
	StatusUnavailable Status = "unavailable"
	StatusWriteFailed Status = "write-failed"
	StatusSkipped     Status = "skipped"
)

// Outcome is what happened to one (year, statistic) pair.
type Outcome struct {
	Year      model.YearToken
	Statistic string
	URL       string
	Dataset   string
	Rows      int
	Status    Status
	Err       error
}

type Summary struct {
	Outcomes []Outcome
	counts   map[Status]int
}

func (s *Summary) add(o Outcome) {
	if s.counts == nil {
		s.counts = make(map[Status]int)
	}
	s.counts[o.Status]++
	s.Outcomes = append(s.Outcomes, o)
}

func (s *Summary) Count(status Status) int {
	return s.counts[status]
}

// Render writes the summary as a table.
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Year", "Statistic", "Dataset", "Rows", "Status"})
	for _, o := range s.Outcomes {
		t.AppendRow(table.Row{o.Year, o.Statistic, o.Dataset, o.Rows, o.Status})
	}
	t.AppendFooter(table.Row{"", "", "written", s.Count(StatusWritten), len(s.Outcomes)})
	t.Render()
}
