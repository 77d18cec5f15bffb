package service

import (
	"context"
	"strings"
	"time"

	"cestas/internal/models"
)

const (
	LinkHistoryLimit    = 50
	linkRequiredMsg     = "surveyId e fullUrl são obrigatórios."
	linkSurveyIDMissing = "O ID da pesquisa (surveyId) é obrigatório."
)

type RecordLinkInput struct {
	SurveyID string                 `json:"surveyId" validate:"required"`
	FullURL  string                 `json:"fullUrl" validate:"required"`
	Context  map[string]interface{} `json:"context"`
	// Extra carries any other caller-supplied fields verbatim.
	Extra map[string]interface{} `json:"-"`
}

// LinkService keeps the append-only log of survey links sent to guests.
type LinkService struct {
	store LinkStore
	Now   func() time.Time
}

func NewLinkService(store LinkStore) *LinkService {
	return &LinkService{store: store, Now: time.Now}
}

func (s *LinkService) Record(ctx context.Context, input RecordLinkInput) (models.GeneratedSurveyLink, error) {
	input.SurveyID = strings.TrimSpace(input.SurveyID)
	input.FullURL = strings.TrimSpace(input.FullURL)
	if err := checkInput(input, linkRequiredMsg); err != nil {
		return models.GeneratedSurveyLink{}, err
	}

	extra := make(map[string]interface{}, len(input.Extra))
	for key, value := range input.Extra {
		switch key {
		case "id", "_id", "surveyId", "fullUrl", "context", "createdAt":
			continue
		}
		extra[key] = value
	}

	link := models.GeneratedSurveyLink{
		SurveyID:  input.SurveyID,
		FullURL:   input.FullURL,
		Context:   input.Context,
		CreatedAt: models.NewInstant(s.Now()),
		Extra:     extra,
	}
	if err := s.store.InsertLink(ctx, &link); err != nil {
		return models.GeneratedSurveyLink{}, internal("record link", err)
	}
	return link, nil
}

// History returns the most recent links for a survey, newest first.
func (s *LinkService) History(ctx context.Context, surveyID string) ([]models.GeneratedSurveyLink, error) {
	surveyID = strings.TrimSpace(surveyID)
	if surveyID == "" {
		return nil, invalid(linkSurveyIDMissing, "surveyId is required")
	}
	links, err := s.store.ListLinks(ctx, surveyID, LinkHistoryLimit)
	if err != nil {
		return nil, internal("list links", err)
	}
	return links, nil
}
