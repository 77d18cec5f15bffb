package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cestas/internal/models"
)

const (
	surveyNotFoundMsg       = "Pesquisa não encontrada."
	surveyNoActiveMsg       = "Nenhuma pesquisa ativa encontrada."
	surveyIDRequiredMsg     = "O ID da pesquisa é obrigatório."
	surveyTitleRequiredMsg  = "O título da pesquisa é obrigatório."
	questionIncompleteMsg   = "Dados da pergunta incompletos."
	questionNotFoundMsg     = "Pergunta não encontrada."
	questionNoChangesMsg    = "Nenhum campo para atualizar."
	responseIncompleteMsg   = "Dados da resposta incompletos."
	responseInvalidValueMsg = "Valor de resposta inválido."
)

type CreateSurveyInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateSurveyInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type QuestionInput struct {
	Text     string              `json:"text" validate:"required"`
	Type     models.QuestionType `json:"type" validate:"required,oneof=RATING TEXT SINGLE_CHOICE MULTIPLE_CHOICE NPS"`
	Category string              `json:"category" validate:"required"`
	Options  []string            `json:"options"`
	Position int                 `json:"position"`
}

type UpdateQuestionInput struct {
	Text     *string              `json:"text"`
	Type     *models.QuestionType `json:"type"`
	Category *string              `json:"category"`
	Options  *[]string            `json:"options"`
	Position *int                 `json:"position"`
}

type AnswerInput struct {
	QuestionSnapshot         string              `json:"question_snapshot" validate:"required"`
	QuestionCategorySnapshot string              `json:"question_category_snapshot"`
	QuestionTypeSnapshot     models.QuestionType `json:"question_type_snapshot" validate:"required,oneof=RATING TEXT SINGLE_CHOICE MULTIPLE_CHOICE NPS"`
	Value                    interface{}         `json:"value"`
}

type SubmitResponseInput struct {
	SurveyID  string                 `json:"surveyId" validate:"required"`
	ComandaID string                 `json:"comandaId"`
	Answers   []AnswerInput          `json:"answers" validate:"required,min=1,dive"`
	Context   map[string]interface{} `json:"context"`
}

// SurveyService manages surveys, their ordered questions and the responses
// guests submit.
type SurveyService struct {
	store     SurveyStore
	responses ResponseStore
	Now       func() time.Time
}

func NewSurveyService(store SurveyStore, responses ResponseStore) *SurveyService {
	return &SurveyService{store: store, responses: responses, Now: time.Now}
}

func (s *SurveyService) ListAll(ctx context.Context) ([]models.Survey, error) {
	surveys, err := s.store.ListSurveys(ctx)
	if err != nil {
		return nil, internal("list surveys", err)
	}
	return surveys, nil
}

func (s *SurveyService) GetActive(ctx context.Context) (models.SurveyWithQuestions, error) {
	survey, err := s.store.FindActiveSurvey(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return models.SurveyWithQuestions{}, &NotFoundError{Message: surveyNoActiveMsg}
	}
	if err != nil {
		return models.SurveyWithQuestions{}, internal("find active survey", err)
	}
	return s.withQuestions(ctx, survey)
}

func (s *SurveyService) GetByID(ctx context.Context, rawID string) (models.SurveyWithQuestions, error) {
	id, err := requireID(rawID, surveyIDRequiredMsg)
	if err != nil {
		return models.SurveyWithQuestions{}, err
	}
	survey, err := s.findSurvey(ctx, id)
	if err != nil {
		return models.SurveyWithQuestions{}, err
	}
	return s.withQuestions(ctx, survey)
}

func (s *SurveyService) Create(ctx context.Context, input CreateSurveyInput) (models.Survey, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := checkInput(input, surveyTitleRequiredMsg); err != nil {
		return models.Survey{}, err
	}

	survey := models.Survey{
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		IsActive:    false,
		CreatedAt:   models.NewInstant(s.Now()),
	}
	if err := s.store.InsertSurvey(ctx, &survey); err != nil {
		return models.Survey{}, internal("create survey", err)
	}
	return survey, nil
}

// Update edits survey fields. Activating a survey deactivates all others.
func (s *SurveyService) Update(ctx context.Context, rawID string, input UpdateSurveyInput) (models.Survey, error) {
	id, err := requireID(rawID, surveyIDRequiredMsg)
	if err != nil {
		return models.Survey{}, err
	}

	update := models.SurveyUpdate{
		Title:       trimPtr(input.Title),
		Description: trimPtr(input.Description),
		IsActive:    input.IsActive,
	}
	if update.Title != nil && *update.Title == "" {
		return models.Survey{}, invalid(surveyTitleRequiredMsg, "title is required")
	}
	if update.Title == nil && update.Description == nil && update.IsActive == nil {
		return models.Survey{}, invalid(questionNoChangesMsg)
	}

	survey, err := s.store.UpdateSurvey(ctx, id, update)
	if errors.Is(err, models.ErrNotFound) {
		return models.Survey{}, &NotFoundError{Message: surveyNotFoundMsg}
	}
	if err != nil {
		return models.Survey{}, internal("update survey", err)
	}
	return survey, nil
}

// Delete removes a survey and its questions. Submitted responses keep their
// answer snapshots.
func (s *SurveyService) Delete(ctx context.Context, rawID string) error {
	id, err := requireID(rawID, surveyIDRequiredMsg)
	if err != nil {
		return err
	}
	err = s.store.DeleteSurvey(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: surveyNotFoundMsg}
	}
	if err != nil {
		return internal("delete survey", err)
	}
	return nil
}

func (s *SurveyService) AddQuestion(ctx context.Context, rawSurveyID string, input QuestionInput) (models.Question, error) {
	surveyID, err := requireID(rawSurveyID, surveyIDRequiredMsg)
	if err != nil {
		return models.Question{}, err
	}

	input.Text = strings.TrimSpace(input.Text)
	input.Category = strings.TrimSpace(input.Category)
	input.Type = models.QuestionType(strings.ToUpper(strings.TrimSpace(string(input.Type))))
	if err := checkInput(input, questionIncompleteMsg); err != nil {
		return models.Question{}, err
	}

	if _, err := s.findSurvey(ctx, surveyID); err != nil {
		return models.Question{}, err
	}

	question := models.Question{
		SurveyID: surveyID,
		Text:     input.Text,
		Type:     input.Type,
		Category: input.Category,
		Options:  optionsFrom(input.Options),
		Position: input.Position,
	}
	if err := s.store.InsertQuestion(ctx, &question); err != nil {
		return models.Question{}, internal("add question", err)
	}
	return question, nil
}

// UpdateQuestion merges the supplied fields onto the stored question.
func (s *SurveyService) UpdateQuestion(ctx context.Context, rawSurveyID, rawQuestionID string, input UpdateQuestionInput) error {
	surveyID, err := requireID(rawSurveyID, surveyIDRequiredMsg)
	if err != nil {
		return err
	}
	questionID, err := requireID(rawQuestionID, "O ID da pergunta é obrigatório.")
	if err != nil {
		return err
	}

	update := models.QuestionUpdate{
		Text:     trimPtr(input.Text),
		Category: trimPtr(input.Category),
		Position: input.Position,
	}
	if input.Type != nil {
		questionType := models.QuestionType(strings.ToUpper(strings.TrimSpace(string(*input.Type))))
		if !questionType.Valid() {
			return invalid(questionIncompleteMsg, "type is invalid")
		}
		update.Type = &questionType
	}
	if input.Options != nil {
		options := optionsFrom(*input.Options)
		update.Options = &options
	}
	if update.Empty() {
		return invalid(questionNoChangesMsg)
	}

	err = s.store.UpdateQuestion(ctx, surveyID, questionID, update)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: questionNotFoundMsg}
	}
	if err != nil {
		return internal("update question", err)
	}
	return nil
}

func (s *SurveyService) DeleteQuestion(ctx context.Context, rawSurveyID, rawQuestionID string) error {
	surveyID, err := requireID(rawSurveyID, surveyIDRequiredMsg)
	if err != nil {
		return err
	}
	questionID, err := requireID(rawQuestionID, "O ID da pergunta é obrigatório.")
	if err != nil {
		return err
	}

	err = s.store.DeleteQuestion(ctx, surveyID, questionID)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: questionNotFoundMsg}
	}
	if err != nil {
		return internal("delete question", err)
	}
	return nil
}

// SubmitResponse records a response header and its answer snapshots in one
// atomic write and returns the new response id.
func (s *SurveyService) SubmitResponse(ctx context.Context, input SubmitResponseInput) (string, error) {
	input.SurveyID = strings.TrimSpace(input.SurveyID)
	for i := range input.Answers {
		answer := &input.Answers[i]
		answer.QuestionSnapshot = strings.TrimSpace(answer.QuestionSnapshot)
		answer.QuestionTypeSnapshot = models.QuestionType(strings.ToUpper(strings.TrimSpace(string(answer.QuestionTypeSnapshot))))
	}
	if err := checkInput(input, responseIncompleteMsg); err != nil {
		return "", err
	}

	answers := make([]models.Answer, 0, len(input.Answers))
	for i, answer := range input.Answers {
		value, err := normalizeAnswerValue(answer.QuestionTypeSnapshot, answer.Value)
		if err != nil {
			return "", invalid(responseInvalidValueMsg, fmt.Sprintf("answers[%d].value %s", i, err.Error()))
		}
		answers = append(answers, models.Answer{
			QuestionSnapshot:         answer.QuestionSnapshot,
			QuestionCategorySnapshot: strings.TrimSpace(answer.QuestionCategorySnapshot),
			QuestionTypeSnapshot:     answer.QuestionTypeSnapshot,
			Value:                    value,
		})
	}

	response := models.SurveyResponse{
		SurveyID:    input.SurveyID,
		RespondedAt: models.NewInstant(s.Now()),
		Context:     input.Context,
	}
	if response.Context == nil {
		response.Context = map[string]interface{}{}
	}
	if comandaID := strings.TrimSpace(input.ComandaID); comandaID != "" {
		response.ComandaID = &comandaID
	}

	if err := s.responses.InsertResponse(ctx, &response, answers); err != nil {
		return "", internal("submit response", err)
	}
	return response.ID, nil
}

func (s *SurveyService) findSurvey(ctx context.Context, id string) (models.Survey, error) {
	survey, err := s.store.FindSurvey(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Survey{}, &NotFoundError{Message: surveyNotFoundMsg}
	}
	if err != nil {
		return models.Survey{}, internal("find survey", err)
	}
	return survey, nil
}

func (s *SurveyService) withQuestions(ctx context.Context, survey models.Survey) (models.SurveyWithQuestions, error) {
	questions, err := s.store.ListQuestions(ctx, survey.ID)
	if err != nil {
		return models.SurveyWithQuestions{}, internal("list questions", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return models.SurveyWithQuestions{Survey: survey, Questions: questions}, nil
}

func optionsFrom(values []string) models.StringList {
	if values == nil {
		return nil
	}
	return models.StringList(values).Clean()
}

// normalizeAnswerValue checks value against the snapshot type and returns the
// form that gets persisted.
func normalizeAnswerValue(questionType models.QuestionType, value interface{}) (interface{}, error) {
	switch questionType {
	case models.QuestionRating, models.QuestionNPS:
		number, ok := numericValue(value)
		if !ok {
			return nil, errors.New("must be a number")
		}
		if questionType == models.QuestionNPS && (number < 0 || number > 10) {
			return nil, errors.New("must be between 0 and 10")
		}
		return number, nil
	case models.QuestionText, models.QuestionSingleChoice:
		text, ok := value.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		return strings.TrimSpace(text), nil
	case models.QuestionMultipleChoice:
		switch list := value.(type) {
		case []string:
			return list, nil
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				text, ok := item.(string)
				if !ok {
					return nil, errors.New("must be a list of strings")
				}
				out = append(out, text)
			}
			return out, nil
		}
		return nil, errors.New("must be a list of strings")
	}
	return nil, errors.New("has an unknown question type")
}

func numericValue(value interface{}) (float64, bool) {
	switch number := value.(type) {
	case float64:
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return 0, false
		}
		return number, true
	case float32:
		return float64(number), true
	case int:
		return float64(number), true
	case int32:
		return float64(number), true
	case int64:
		return float64(number), true
	}
	return 0, false
}
