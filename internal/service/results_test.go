package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

func response(id string, at time.Time, context map[string]interface{}, answers ...models.Answer) models.ResponseWithAnswers {
	return models.ResponseWithAnswers{
		SurveyResponse: models.SurveyResponse{ID: id, SurveyID: "s1", RespondedAt: models.NewInstant(at), Context: context},
		Answers:        answers,
	}
}

func rating(category string, value float64) models.Answer {
	return models.Answer{QuestionSnapshot: category + "?", QuestionCategorySnapshot: category, QuestionTypeSnapshot: models.QuestionRating, Value: value}
}

func nps(value float64) models.Answer {
	return models.Answer{QuestionSnapshot: "Recomendaria?", QuestionTypeSnapshot: models.QuestionNPS, Value: value}
}

func text(value string) models.Answer {
	return models.Answer{QuestionSnapshot: "Comentários", QuestionTypeSnapshot: models.QuestionText, Value: value}
}

func TestBuildResults_Aggregates(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	responses := []models.ResponseWithAnswers{
		response("r1", day1, map[string]interface{}{"cabinName": "Ipê", "country": "Brasil"},
			rating("Café", 5), rating("Limpeza", 3), nps(10), text("Tudo ótimo")),
		response("r2", day1, map[string]interface{}{"cabinName": "Jatobá", "country": "Brasil"},
			rating("Café", 4), nps(8), text("")),
		response("r3", day2, map[string]interface{}{"cabinName": "Ipê", "country": "Argentina"},
			rating("Limpeza", 1), nps(3)),
	}

	report := service.BuildResults(responses, service.ResultsFilter{})
	results := report.Results

	require.Equal(t, 3, results.TotalResponses)
	require.Equal(t, service.NPSSummary{Score: 0, Promoters: 1, Passives: 1, Detractors: 1, Total: 3}, results.NPS)
	require.InDelta(t, 13.0/4.0, results.OverallAverage, 1e-9)
	require.Equal(t, []service.CategoryAverage{{Category: "Café", Average: 4.5}, {Category: "Limpeza", Average: 2}}, results.AverageByCategory)
	require.Equal(t, []string{"Tudo ótimo"}, results.TextFeedback)
	require.Equal(t, []service.DailyAverage{{Date: "2025-03-01", AverageRating: 4}, {Date: "2025-03-02", AverageRating: 1}}, results.SatisfactionOverTime)
	require.Equal(t, "Limpeza", results.Insights.Weakest.Category)
	require.Equal(t, "Café", results.Insights.Strongest.Category)

	require.Equal(t, []string{"Ipê", "Jatobá"}, report.Filters.Cabins)
	require.Equal(t, []string{"Argentina", "Brasil"}, report.Filters.Countries)
	require.Empty(t, report.Filters.Cities)
}

func TestBuildResults_ContextFilterKeepsAllFilterValues(t *testing.T) {
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	responses := []models.ResponseWithAnswers{
		response("r1", day, map[string]interface{}{"cabinName": "Ipê"}, rating("Café", 5)),
		response("r2", day, map[string]interface{}{"cabinName": "Jatobá"}, rating("Café", 1)),
	}

	report := service.BuildResults(responses, service.ResultsFilter{Cabin: "Ipê"})
	require.Equal(t, 1, report.Results.TotalResponses)
	require.InDelta(t, 5.0, report.Results.OverallAverage, 1e-9)
	require.Equal(t, []string{"Ipê", "Jatobá"}, report.Filters.Cabins)
}

func TestBuildResults_NoResponses(t *testing.T) {
	report := service.BuildResults(nil, service.ResultsFilter{})
	require.Zero(t, report.Results.TotalResponses)
	require.NotNil(t, report.Results.AverageByCategory)
	require.NotNil(t, report.Results.TextFeedback)
	require.Nil(t, report.Results.Insights.Weakest)
}

func TestResults_RequiresDateRange(t *testing.T) {
	svc := newSurveyService(memstore.New())

	_, err := svc.Results(context.Background(), "s1", service.ResultsFilter{StartDate: "2025-03-01"})
	requireValidation(t, err)

	_, err = svc.Results(context.Background(), "s1", service.ResultsFilter{StartDate: "01/03/2025", EndDate: "2025-03-02"})
	requireValidation(t, err)

	_, err = svc.Results(context.Background(), "", service.ResultsFilter{StartDate: "2025-03-01", EndDate: "2025-03-02"})
	requireValidation(t, err)
}

func TestResults_EndDateIsInclusive(t *testing.T) {
	store := memstore.New()
	svc := newSurveyService(store)
	svc.Now = clock(time.Date(2025, 3, 2, 23, 30, 0, 0, time.UTC))

	_, err := svc.SubmitResponse(context.Background(), service.SubmitResponseInput{SurveyID: "s1", Answers: validAnswers(1)})
	require.NoError(t, err)

	report, err := svc.Results(context.Background(), "s1", service.ResultsFilter{StartDate: "2025-03-01", EndDate: "2025-03-02"})
	require.NoError(t, err)
	require.Equal(t, 1, report.Results.TotalResponses)

	report, err = svc.Results(context.Background(), "s1", service.ResultsFilter{StartDate: "2025-03-03", EndDate: "2025-03-04"})
	require.NoError(t, err)
	require.Zero(t, report.Results.TotalResponses)
}

func TestExport_OneRowPerResponse(t *testing.T) {
	store := memstore.New()
	svc := newSurveyService(store)
	survey := createSurvey(t, svc, "Satisfação")

	_, err := svc.AddQuestion(context.Background(), survey.ID, service.QuestionInput{Text: "Extras", Type: models.QuestionMultipleChoice, Category: "Café", Position: 2})
	require.NoError(t, err)
	_, err = svc.AddQuestion(context.Background(), survey.ID, service.QuestionInput{Text: "Nota", Type: models.QuestionRating, Category: "Café", Position: 1})
	require.NoError(t, err)

	id, err := svc.SubmitResponse(context.Background(), service.SubmitResponseInput{
		SurveyID: survey.ID,
		Answers: []service.AnswerInput{
			{QuestionSnapshot: "Nota", QuestionCategorySnapshot: "Café", QuestionTypeSnapshot: models.QuestionRating, Value: float64(4.5)},
			{QuestionSnapshot: "Extras", QuestionCategorySnapshot: "Café", QuestionTypeSnapshot: models.QuestionMultipleChoice, Value: []interface{}{"Mel", "Queijo"}},
		},
		Context: map[string]interface{}{"cabinName": "Ipê", "guestCount": float64(2), "country": "Brasil"},
	})
	require.NoError(t, err)

	table, err := svc.Export(context.Background(), survey.ID, service.ResultsFilter{StartDate: "2025-03-14", EndDate: "2025-03-14"})
	require.NoError(t, err)

	require.Equal(t, []string{"Nota", "Extras"}, table.Columns[len(table.Columns)-2:])
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Equal(t, id, row[0])
	require.Equal(t, "Ipê", row[2])
	require.Equal(t, "2", row[3])
	require.Equal(t, "Brasil", row[4])
	require.Equal(t, "4.5", row[len(row)-2])
	require.Equal(t, "Mel, Queijo", row[len(row)-1])

	records := table.Records()
	require.Len(t, records, 2)
	require.Equal(t, "ID da Resposta", records[0][0])
}
