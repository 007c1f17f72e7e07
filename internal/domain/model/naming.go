package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnsafeName = errors.New("dataset name is not filesystem safe")

// DatasetName derives the artifact name for a (statistic, year) pair:
// "Team-Ranking-{year}" for the team ranking, "{TitleCase(statisticID)}-{year}" otherwise.
func DatasetName(statisticID string, year YearToken) (string, error) {
	var name string
	if statisticID == TeamRanking {
		name = fmt.Sprintf("Team-Ranking-%s", year)
	} else {
		name = fmt.Sprintf("%s-%s", titleCase(statisticID), year)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return name, nil
}

// titleCase capitalizes every run of letters and digits, lowering the rest.
// Separators such as "-" and "_" are kept.
func titleCase(id string) string {
	// cases.Caser 不是并发安全的, 每次调用新建
	caser := cases.Title(language.Und)
	var b strings.Builder
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(caser.String(id[start:end]))
			start = -1
		}
	}
	for i, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(id))
	return b.String()
}
