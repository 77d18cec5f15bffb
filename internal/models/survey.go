package models

type QuestionType string

const (
	QuestionRating         QuestionType = "RATING"
	QuestionText           QuestionType = "TEXT"
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionNPS            QuestionType = "NPS"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionRating, QuestionText, QuestionSingleChoice, QuestionMultipleChoice, QuestionNPS:
		return true
	}
	return false
}

type Survey struct {
	ID          string  `bson:"_id,omitempty" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	IsActive    bool    `bson:"isActive" json:"isActive"`
	CreatedAt   Instant `bson:"createdAt" json:"createdAt"`
}

// SurveyWithQuestions is a survey with its questions ordered by position.
type SurveyWithQuestions struct {
	Survey
	Questions []Question `json:"questions"`
}

type SurveyUpdate struct {
	Title       *string
	Description *string
	IsActive    *bool
}

type Question struct {
	ID       string       `bson:"_id,omitempty" json:"id"`
	SurveyID string       `bson:"surveyId" json:"surveyId"`
	Text     string       `bson:"text" json:"text"`
	Type     QuestionType `bson:"type" json:"type"`
	Category string       `bson:"category" json:"category"`
	Options  StringList   `bson:"options,omitempty" json:"options,omitempty"`
	Position int          `bson:"position" json:"position"`
}

type QuestionUpdate struct {
	Text     *string
	Type     *QuestionType
	Category *string
	Options  *StringList
	Position *int
}

func (u QuestionUpdate) Empty() bool {
	return u.Text == nil && u.Type == nil && u.Category == nil && u.Options == nil && u.Position == nil
}
