package models

type Cabin struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Name     string `bson:"name" json:"name"`
	Capacity int    `bson:"capacity" json:"capacity"`
}

type CabinUpdate struct {
	Name     *string
	Capacity *int
}

type Country struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	Name string `bson:"name" json:"name"`
}

type State struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Name      string `bson:"name" json:"name"`
	CountryID string `bson:"countryId" json:"countryId"`
}

type City struct {
	ID      string `bson:"_id,omitempty" json:"id"`
	Name    string `bson:"name" json:"name"`
	StateID string `bson:"stateId" json:"stateId"`
}

// Settings is a free-form configuration document such as "app" (appearance
// and welcome texts) or "geral".
type Settings map[string]interface{}

const (
	SettingsApp     = "app"
	SettingsGeneral = "geral"
)
