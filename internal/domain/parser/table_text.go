// Package parser turns the rendered text of a stats table into rows.
//
// A rendered table is one header line followed by records spread over four
// physical lines each:
//
//	1                 <- rank
//	V Kohli           <- player or team name
//	RCB               <- team
//	16 741            <- whitespace separated statistics
//
// A stray digit-only line inside a record (for example a numeric team name)
// is taken as the slot it occupies, so such input desynchronizes the scan.
package parser

import (
	"strings"
	"unicode"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

type state int

const (
	expectRank state = iota
	expectName
	expectTeam
	expectStats
)

// Result is the outcome of parsing one table region.
type Result struct {
	Header model.Header
	Rows   []model.Row
	// SkippedLines counts lines that were not part of any record.
	SkippedLines int
	// Truncated is set when the input ended in the middle of a record.
	Truncated bool
}

// Parse returns the records of text in document order together with its header.
func Parse(text string) ([]model.Row, model.Header) {
	res := ParseDetailed(text)
	return res.Rows, res.Header
}

func ParseDetailed(text string) Result {
	lines := strings.Split(text, "\n")
	res := Result{
		Header: model.Header(strings.Fields(lines[0])),
		Rows:   []model.Row{},
	}

	var (
		st               = expectRank
		rank, name, team string
	)
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch st {
		case expectRank:
			if !isRank(line) {
				res.SkippedLines++
				continue
			}
			rank = line
			st = expectName
		case expectName:
			name = line
			st = expectTeam
		case expectTeam:
			team = line
			st = expectStats
		case expectStats:
			stats := strings.Fields(line)
			row := make(model.Row, 0, 2+len(stats))
			row = append(row, rank, name+" ("+team+")")
			row = append(row, stats...)
			res.Rows = append(res.Rows, row)
			st = expectRank
		}
	}
	res.Truncated = st != expectRank
	return res
}

func isRank(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
