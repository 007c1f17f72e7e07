package model

// AllTime is the year token that aggregates every season.
const AllTime YearToken = "all-time"

// TeamRanking is the statistic id whose table lives on the bare per-year page.
const TeamRanking = "team-ranking"

// YearToken identifies a season filter, or AllTime.
type YearToken string

// StatCategory is one ranking table offered by the site.
type StatCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Row holds the cells of one player or team record.
type Row []string

// Header holds the column names of a stats table.
type Header []string

type Dataset struct {
	Name      string    `json:"name"`
	Statistic string    `json:"statistic"`
	Year      YearToken `json:"year"`
	Header    Header    `json:"header"`
	Rows      []Row     `json:"rows"`
}

// Normalize pads short rows with empty cells and truncates long rows so that
// every row has len(Header) cells. It returns how many rows were adjusted.
// Datasets without a header are left untouched.
func (d *Dataset) Normalize() int {
	width := len(d.Header)
	if width == 0 {
		return 0
	}
	adjusted := 0
	for i, row := range d.Rows {
		switch {
		case len(row) < width:
			padded := make(Row, width)
			copy(padded, row)
			d.Rows[i] = padded
			adjusted++
		case len(row) > width:
			d.Rows[i] = row[:width:width]
			adjusted++
		}
	}
	return adjusted
}
