// Package prompt decides which years and statistics a run covers, either by
// asking on the terminal or from command line values.
package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("selection interrupted")

type Selector interface {
	SelectYears(years []model.YearToken) ([]model.YearToken, error)
	SelectStatistics(stats []model.StatCategory) ([]model.StatCategory, error)
}

// SurveySelector asks with two multi-select prompts.
type SurveySelector struct {
	opts []survey.AskOpt
}

func NewSurveySelector(opts ...survey.AskOpt) *SurveySelector {
	return &SurveySelector{opts: opts}
}

func (s *SurveySelector) SelectYears(years []model.YearToken) ([]model.YearToken, error) {
	options := make([]string, len(years))
	for i, y := range years {
		options[i] = string(y)
	}
	picked, err := s.ask("Select years:", options)
	if err != nil {
		return nil, err
	}
	return pick(years, picked), nil
}

func (s *SurveySelector) SelectStatistics(stats []model.StatCategory) ([]model.StatCategory, error) {
	options := make([]string, len(stats))
	for i, st := range stats {
		options[i] = st.Title
	}
	picked, err := s.ask("Select statistics:", options)
	if err != nil {
		return nil, err
	}
	return pick(stats, picked), nil
}

func (s *SurveySelector) ask(message string, options []string) ([]int, error) {
	var picked []int
	err := survey.AskOne(&survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}, &picked, s.opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return nil, ErrInterrupted
	}
	if err != nil {
		return nil, fmt.Errorf("prompt %q: %w", message, err)
	}
	return picked, nil
}

// pick returns the items at the picked indices in catalog order.
func pick[T any](items []T, picked []int) []T {
	sorted := slices.Clone(picked)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	out := make([]T, 0, len(sorted))
	for _, i := range sorted {
		if i >= 0 && i < len(items) {
			out = append(out, items[i])
		}
	}
	return out
}

// PresetSelector selects from values given up front. A value "all" (or All)
// selects everything. A dimension without values is delegated to Fallback.
type PresetSelector struct {
	Years    []string
	Stats    []string
	All      bool
	Fallback Selector
}

func (p *PresetSelector) SelectYears(years []model.YearToken) ([]model.YearToken, error) {
	if p.All || isAll(p.Years) {
		return years, nil
	}
	if len(p.Years) == 0 && p.Fallback != nil {
		return p.Fallback.SelectYears(years)
	}
	var picked []int
	for _, want := range p.Years {
		i := slices.Index(years, model.YearToken(want))
		if i < 0 {
			return nil, fmt.Errorf("unknown year %q, valid years: %s", want, joinYears(years))
		}
		picked = append(picked, i)
	}
	return pick(years, picked), nil
}

func (p *PresetSelector) SelectStatistics(stats []model.StatCategory) ([]model.StatCategory, error) {
	if p.All || isAll(p.Stats) {
		return stats, nil
	}
	if len(p.Stats) == 0 && p.Fallback != nil {
		return p.Fallback.SelectStatistics(stats)
	}
	var picked []int
	for _, want := range p.Stats {
		i := slices.IndexFunc(stats, func(st model.StatCategory) bool {
			return st.ID == want
		})
		if i < 0 {
			return nil, fmt.Errorf("unknown statistic %q, valid statistics: %s", want, joinStats(stats))
		}
		picked = append(picked, i)
	}
	return pick(stats, picked), nil
}

func isAll(values []string) bool {
	return len(values) == 1 && strings.EqualFold(values[0], "all")
}

func joinYears(years []model.YearToken) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = string(y)
	}
	return strings.Join(parts, ", ")
}

func joinStats(stats []model.StatCategory) string {
	parts := make([]string, len(stats))
	for i, st := range stats {
		parts[i] = st.ID
	}
	return strings.Join(parts, ", ")
}
