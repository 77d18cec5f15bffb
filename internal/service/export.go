package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cestas/internal/models"
)

var exportBaseColumns = []string{
	"ID da Resposta",
	"Data da Resposta",
	"Cabana",
	"Nº Hóspedes",
	"País",
	"Estado",
	"Cidade",
	"Check-in",
	"Check-out",
}

// ExportTable is a flat, spreadsheet-ready view of a survey's responses.
type ExportTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Records returns the header followed by every row.
func (t ExportTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns)
	return append(records, t.Rows...)
}

// Export builds one row per response in range, with one column per question
// text. Answers are matched to columns by their question snapshot, so answers
// to deleted or reworded questions do not appear.
func (s *SurveyService) Export(ctx context.Context, rawSurveyID string, filter ResultsFilter) (ExportTable, error) {
	surveyID, err := requireID(rawSurveyID, surveyIDRequiredMsg)
	if err != nil {
		return ExportTable{}, err
	}
	start, end, err := dayRange(filter.StartDate, filter.EndDate, resultsDatesRequiredMsg)
	if err != nil {
		return ExportTable{}, err
	}

	questions, err := s.store.ListQuestions(ctx, surveyID)
	if err != nil {
		return ExportTable{}, internal("list questions", err)
	}
	responses, err := s.responses.ListResponses(ctx, surveyID, start, end)
	if err != nil {
		return ExportTable{}, internal("list responses", err)
	}

	table := ExportTable{Columns: append([]string(nil), exportBaseColumns...), Rows: [][]string{}}
	for _, question := range questions {
		table.Columns = append(table.Columns, question.Text)
	}

	for _, response := range responses {
		if !matchesContext(response.SurveyResponse, filter) {
			continue
		}
		row := []string{
			response.ID,
			response.RespondedAt.Local().Format("02/01/2006 15:04:05"),
			response.ContextString("cabinName"),
			response.ContextString("guestCount"),
			response.ContextString("country"),
			response.ContextString("state"),
			response.ContextString("city"),
			response.ContextString("checkInDate"),
			response.ContextString("checkOutDate"),
		}
		for _, question := range questions {
			row = append(row, answerCell(response.Answers, question.Text))
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func answerCell(answers []models.Answer, questionText string) string {
	for _, answer := range answers {
		if answer.QuestionSnapshot != questionText {
			continue
		}
		switch value := answer.Value.(type) {
		case nil:
			return ""
		case string:
			return value
		case []string:
			return strings.Join(value, ", ")
		case []interface{}:
			return joinValues(value)
		case primitive.A:
			return joinValues(value)
		case float64:
			return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
		default:
			return fmt.Sprint(value)
		}
	}
	return ""
}

func joinValues(values []interface{}) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, ", ")
}
