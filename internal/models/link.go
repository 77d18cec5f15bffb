package models

import "encoding/json"

// GeneratedSurveyLink records a shareable survey link handed to a guest.
// Fields the caller sent beyond the known ones are kept in Extra.
type GeneratedSurveyLink struct {
	ID        string                 `bson:"_id,omitempty"`
	SurveyID  string                 `bson:"surveyId"`
	FullURL   string                 `bson:"fullUrl"`
	Context   map[string]interface{} `bson:"context,omitempty"`
	CreatedAt Instant                `bson:"createdAt"`
	Extra     map[string]interface{} `bson:",inline"`
}

func (l GeneratedSurveyLink) MarshalJSON() ([]byte, error) {
	out := flatten(l.Extra)
	out["id"] = l.ID
	out["surveyId"] = l.SurveyID
	out["fullUrl"] = l.FullURL
	out["createdAt"] = l.CreatedAt
	if l.Context != nil {
		out["context"] = l.Context
	}
	return json.Marshal(out)
}
