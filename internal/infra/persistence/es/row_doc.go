package es

import (
	"fmt"
	"strconv"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

// RowDoc is one dataset row as stored in Elasticsearch.
type RowDoc struct {
	ID        string            `json:"-"`
	Dataset   string            `json:"dataset"`
	Statistic string            `json:"statistic"`
	Year      string            `json:"year"`
	Position  int               `json:"position"`
	Rank      string            `json:"rank"`
	Name      string            `json:"name"`
	Cells     map[string]string `json:"cells"`
	ScrapedAt time.Time         `json:"scraped_at"`
}

func rowDocMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"dataset":    types.NewKeywordProperty(),
			"statistic":  types.NewKeywordProperty(),
			"year":       types.NewKeywordProperty(),
			"position":   types.NewIntegerNumberProperty(),
			"rank":       types.NewKeywordProperty(),
			"name":       types.NewTextProperty(),
			"cells":      types.NewObjectProperty(),
			"scraped_at": types.NewDateProperty(),
		},
	}
}

// RowDocs converts every row of dataset into a document. Document ids are
// stable per (dataset, position) so a rescrape overwrites earlier documents.
func RowDocs(dataset *model.Dataset, scrapedAt time.Time) []*RowDoc {
	keys := cellKeys(dataset.Header)
	docs := make([]*RowDoc, 0, len(dataset.Rows))
	for i, row := range dataset.Rows {
		doc := &RowDoc{
			ID:        fmt.Sprintf("%s-%d", dataset.Name, i+1),
			Dataset:   dataset.Name,
			Statistic: dataset.Statistic,
			Year:      string(dataset.Year),
			Position:  i + 1,
			Cells:     make(map[string]string, len(row)),
			ScrapedAt: scrapedAt,
		}
		if len(row) > 0 {
			doc.Rank = row[0]
		}
		if len(row) > 1 {
			doc.Name = row[1]
		}
		for j, cell := range row {
			key := "col_" + strconv.Itoa(j+1)
			if j < len(keys) {
				key = keys[j]
			}
			doc.Cells[key] = cell
		}
		docs = append(docs, doc)
	}
	return docs
}

// cellKeys makes header names unique by suffixing repeats with _2, _3...
func cellKeys(header model.Header) []string {
	seen := make(map[string]int, len(header))
	keys := make([]string, len(header))
	for i, h := range header {
		seen[h]++
		if n := seen[h]; n > 1 {
			keys[i] = fmt.Sprintf("%s_%d", h, n)
			continue
		}
		keys[i] = h
	}
	return keys
}
