package models

// SurveyResponse is the header document of a submitted survey.
type SurveyResponse struct {
	ID          string                 `bson:"_id,omitempty" json:"id"`
	SurveyID    string                 `bson:"surveyId" json:"surveyId"`
	ComandaID   *string                `bson:"comandaId" json:"comandaId"`
	RespondedAt Instant                `bson:"respondedAt" json:"respondedAt"`
	Context     map[string]interface{} `bson:"context" json:"context"`
}

// ContextString reads a context entry as text; non-string values are
// rendered with their default formatting.
func (r SurveyResponse) ContextString(key string) string {
	return stringify(r.Context[key])
}

// Answer is an immutable snapshot of one answered question.
type Answer struct {
	ID                       string       `bson:"_id,omitempty" json:"id"`
	ResponseID               string       `bson:"responseId" json:"responseId"`
	QuestionSnapshot         string       `bson:"question_snapshot" json:"question_snapshot"`
	QuestionCategorySnapshot string       `bson:"question_category_snapshot" json:"question_category_snapshot"`
	QuestionTypeSnapshot     QuestionType `bson:"question_type_snapshot" json:"question_type_snapshot"`
	Value                    interface{}  `bson:"value" json:"value"`
}

// ResponseWithAnswers joins a header with its answers for reporting.
type ResponseWithAnswers struct {
	SurveyResponse
	Answers []Answer `json:"answers"`
}
