package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"cestas/internal/models"
)

const resultsDatesRequiredMsg = "Parâmetros de data são obrigatórios."

// ResultsFilter narrows a results report. Dates are inclusive calendar days;
// the context filters match the response context exactly when set.
type ResultsFilter struct {
	StartDate string
	EndDate   string
	Cabin     string
	Country   string
	State     string
	City      string
}

type NPSSummary struct {
	Score      int `json:"score"`
	Promoters  int `json:"promoters"`
	Passives   int `json:"passives"`
	Detractors int `json:"detractors"`
	Total      int `json:"total"`
}

type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

type DailyAverage struct {
	Date          string  `json:"date"`
	AverageRating float64 `json:"averageRating"`
}

type Insights struct {
	Weakest   *CategoryAverage `json:"weakest"`
	Strongest *CategoryAverage `json:"strongest"`
}

type SurveyResults struct {
	TotalResponses       int               `json:"totalResponses"`
	NPS                  NPSSummary        `json:"nps"`
	OverallAverage       float64           `json:"overallAverage"`
	AverageByCategory    []CategoryAverage `json:"averageByCategory"`
	TextFeedback         []string          `json:"textFeedback"`
	SatisfactionOverTime []DailyAverage    `json:"satisfactionOverTime"`
	Insights             Insights          `json:"insights"`
}

type AvailableFilters struct {
	Cabins    []string `json:"cabins"`
	Countries []string `json:"countries"`
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
}

type ResultsReport struct {
	Results SurveyResults    `json:"results"`
	Filters AvailableFilters `json:"filters"`
}

// Results aggregates the responses of one survey within the filter's date
// range. Filter values offered back are computed before the context filters
// apply, so the caller can always widen the selection again.
func (s *SurveyService) Results(ctx context.Context, rawSurveyID string, filter ResultsFilter) (ResultsReport, error) {
	surveyID := strings.TrimSpace(rawSurveyID)
	if surveyID == "" {
		return ResultsReport{}, invalid(surveyIDRequiredMsg)
	}

	start, end, err := dayRange(filter.StartDate, filter.EndDate, resultsDatesRequiredMsg)
	if err != nil {
		return ResultsReport{}, err
	}

	responses, err := s.responses.ListResponses(ctx, surveyID, start, end)
	if err != nil {
		return ResultsReport{}, internal("list responses", err)
	}
	return BuildResults(responses, filter), nil
}

// BuildResults computes the report from already loaded responses.
func BuildResults(responses []models.ResponseWithAnswers, filter ResultsFilter) ResultsReport {
	report := ResultsReport{
		Filters: AvailableFilters{
			Cabins:    distinctContext(responses, "cabinName"),
			Countries: distinctContext(responses, "country"),
			States:    distinctContext(responses, "state"),
			Cities:    distinctContext(responses, "city"),
		},
		Results: SurveyResults{
			AverageByCategory:    []CategoryAverage{},
			TextFeedback:         []string{},
			SatisfactionOverTime: []DailyAverage{},
		},
	}

	type tally struct {
		total float64
		count int
	}
	var (
		ratings    tally
		nps        []float64
		categories = map[string]*tally{}
		days       = map[string]*tally{}
		results    = &report.Results
	)

	for _, response := range responses {
		if !matchesContext(response.SurveyResponse, filter) {
			continue
		}
		results.TotalResponses++

		day := response.RespondedAt.UTC().Format("2006-01-02")
		if _, ok := days[day]; !ok {
			days[day] = &tally{}
		}

		for _, answer := range response.Answers {
			switch answer.QuestionTypeSnapshot {
			case models.QuestionRating:
				value, ok := numericValue(answer.Value)
				if !ok {
					continue
				}
				ratings.total += value
				ratings.count++
				days[day].total += value
				days[day].count++
				category := answer.QuestionCategorySnapshot
				if categories[category] == nil {
					categories[category] = &tally{}
				}
				categories[category].total += value
				categories[category].count++
			case models.QuestionNPS:
				if value, ok := numericValue(answer.Value); ok {
					nps = append(nps, value)
				}
			case models.QuestionText:
				if text, ok := answer.Value.(string); ok && text != "" {
					results.TextFeedback = append(results.TextFeedback, text)
				}
			}
		}
	}

	for _, value := range nps {
		switch {
		case value >= 9:
			results.NPS.Promoters++
		case value >= 7:
			results.NPS.Passives++
		default:
			results.NPS.Detractors++
		}
	}
	results.NPS.Total = len(nps)
	if len(nps) > 0 {
		results.NPS.Score = int(math.Round(float64(results.NPS.Promoters-results.NPS.Detractors) / float64(len(nps)) * 100))
	}

	if ratings.count > 0 {
		results.OverallAverage = ratings.total / float64(ratings.count)
	}

	for category, t := range categories {
		results.AverageByCategory = append(results.AverageByCategory, CategoryAverage{
			Category: category,
			Average:  t.total / float64(t.count),
		})
	}
	sort.Slice(results.AverageByCategory, func(i, j int) bool {
		return results.AverageByCategory[i].Category < results.AverageByCategory[j].Category
	})

	if len(results.AverageByCategory) > 0 {
		ranked := append([]CategoryAverage(nil), results.AverageByCategory...)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Average < ranked[j].Average })
		weakest, strongest := ranked[0], ranked[len(ranked)-1]
		results.Insights = Insights{Weakest: &weakest, Strongest: &strongest}
	}

	for day, t := range days {
		average := 0.0
		if t.count > 0 {
			average = t.total / float64(t.count)
		}
		results.SatisfactionOverTime = append(results.SatisfactionOverTime, DailyAverage{Date: day, AverageRating: average})
	}
	sort.Slice(results.SatisfactionOverTime, func(i, j int) bool {
		return results.SatisfactionOverTime[i].Date < results.SatisfactionOverTime[j].Date
	})

	return report
}

// dayRange turns two calendar days into [start of first, end of last].
func dayRange(startRaw, endRaw, message string) (time.Time, time.Time, error) {
	startRaw, endRaw = strings.TrimSpace(startRaw), strings.TrimSpace(endRaw)
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, invalid(message)
	}
	start, err := parseDay(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(message, "startDate is invalid")
	}
	end, err := parseDay(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(message, "endDate is invalid")
	}
	return start, end.Add(24*time.Hour - time.Millisecond), nil
}

// parseDay accepts a calendar date or a full timestamp and returns the start
// of that day in UTC.
func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func matchesContext(response models.SurveyResponse, filter ResultsFilter) bool {
	checks := []struct{ want, key string }{
		{filter.Cabin, "cabinName"},
		{filter.Country, "country"},
		{filter.State, "state"},
		{filter.City, "city"},
	}
	for _, check := range checks {
		if check.want != "" && response.ContextString(check.key) != check.want {
			return false
		}
	}
	return true
}

func distinctContext(responses []models.ResponseWithAnswers, key string) []string {
	seen := map[string]struct{}{}
	values := []string{}
	for _, response := range responses {
		value := response.ContextString(key)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
