package service

import (
	"context"
	"time"

	"cestas/internal/models"
)

// Store contracts. Implementations return models.ErrNotFound when a lookup
// or targeted write matches nothing and models.ErrDuplicateKey when a unique
// index rejects an insert; any other error is treated as internal.

type ComandaStore interface {
	InsertComanda(ctx context.Context, comanda *models.Comanda) error
	FindActiveComandaByToken(ctx context.Context, token string) (models.Comanda, error)
	ListComandas(ctx context.Context) ([]models.Comanda, error)
	UpdateComanda(ctx context.Context, id string, update models.ComandaUpdate) (models.Comanda, error)
	ListActiveComandasDueBetween(ctx context.Context, from, to time.Time) ([]models.Comanda, error)
	CountActiveComandasCreatedSince(ctx context.Context, since time.Time) (int64, error)
	// ListActiveComandasCreatedSince returns the newest first, at most limit.
	ListActiveComandasCreatedSince(ctx context.Context, since time.Time, limit int64) ([]models.Comanda, error)
}

type SurveyStore interface {
	ListSurveys(ctx context.Context) ([]models.Survey, error)
	FindActiveSurvey(ctx context.Context) (models.Survey, error)
	FindSurvey(ctx context.Context, id string) (models.Survey, error)
	InsertSurvey(ctx context.Context, survey *models.Survey) error
	// UpdateSurvey deactivates every other survey when the update activates
	// this one.
	UpdateSurvey(ctx context.Context, id string, update models.SurveyUpdate) (models.Survey, error)
	// DeleteSurvey removes the survey and its questions together.
	DeleteSurvey(ctx context.Context, id string) error

	ListQuestions(ctx context.Context, surveyID string) ([]models.Question, error)
	InsertQuestion(ctx context.Context, question *models.Question) error
	UpdateQuestion(ctx context.Context, surveyID, questionID string, update models.QuestionUpdate) error
	DeleteQuestion(ctx context.Context, surveyID, questionID string) error
}

type ResponseStore interface {
	// InsertResponse writes the header and every answer atomically.
	InsertResponse(ctx context.Context, response *models.SurveyResponse, answers []models.Answer) error
	// ListResponses returns responses with answers for one survey whose
	// respondedAt falls in [from, to], oldest first.
	ListResponses(ctx context.Context, surveyID string, from, to time.Time) ([]models.ResponseWithAnswers, error)
}

type LinkStore interface {
	InsertLink(ctx context.Context, link *models.GeneratedSurveyLink) error
	ListLinks(ctx context.Context, surveyID string, limit int64) ([]models.GeneratedSurveyLink, error)
}

type PreCheckInStore interface {
	InsertPreCheckIn(ctx context.Context, preCheckIn *models.PreCheckIn) error
	ListPreCheckIns(ctx context.Context, limit int64) ([]models.PreCheckIn, error)
	UpdatePreCheckInStatus(ctx context.Context, id string, status models.PreCheckInStatus) error
}

type StockStore interface {
	InsertStockOrder(ctx context.Context, order *models.StockOrderRequest) error
	ListStockOrders(ctx context.Context, limit int64) ([]models.StockOrderRequest, error)
	// ListStockOrdersBetween returns requests created in [from, to].
	ListStockOrdersBetween(ctx context.Context, from, to time.Time) ([]models.StockOrderRequest, error)

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	FindSupplier(ctx context.Context, id string) (models.Supplier, error)
	InsertSupplier(ctx context.Context, supplier *models.Supplier) error
	// DeleteSupplier removes the supplier and its items together.
	DeleteSupplier(ctx context.Context, id string) error

	// ListItems filters by supplier unless supplierID is empty.
	ListItems(ctx context.Context, supplierID string) ([]models.StockItem, error)
	InsertItem(ctx context.Context, item *models.StockItem) error
	DeleteItem(ctx context.Context, id string) error
}

type CabinStore interface {
	ListCabins(ctx context.Context) ([]models.Cabin, error)
	InsertCabin(ctx context.Context, cabin *models.Cabin) error
	UpdateCabin(ctx context.Context, id string, update models.CabinUpdate) (models.Cabin, error)
	DeleteCabin(ctx context.Context, id string) error
}

type LocationStore interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	InsertCountry(ctx context.Context, country *models.Country) error
	ListStates(ctx context.Context, countryID string) ([]models.State, error)
	InsertState(ctx context.Context, state *models.State) error
	ListCities(ctx context.Context, stateID string) ([]models.City, error)
	InsertCity(ctx context.Context, city *models.City) error
}

type SettingsStore interface {
	FindSettings(ctx context.Context, key string) (models.Settings, error)
	MergeSettings(ctx context.Context, key string, fields models.Settings) (models.Settings, error)
}

type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
	InsertAdmin(ctx context.Context, admin *models.Admin) error
}
