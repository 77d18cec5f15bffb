// Package memstore is an in-memory implementation of every service store.
// Tests use it in place of MongoDB; it honors the same ordering, limits and
// all-or-nothing guarantees as the Mongo stores.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cestas/internal/models"
)

type Store struct {
	mu sync.Mutex

	comandas    []models.Comanda
	surveys     []models.Survey
	questions   []models.Question
	responses   []models.SurveyResponse
	answers     []models.Answer
	links       []models.GeneratedSurveyLink
	preCheckIns []models.PreCheckIn
	orders      []models.StockOrderRequest
	suppliers   []models.Supplier
	items       []models.StockItem
	cabins      []models.Cabin
	countries   []models.Country
	states      []models.State
	cities      []models.City
	settings    map[string]models.Settings
	admins      []models.Admin

	failures       map[string]error
	failAnswerAt   int
	failAnswerWith error
}

func New() *Store {
	return &Store{settings: map[string]models.Settings{}, failures: map[string]error{}}
}

// Fail makes the next call of the named method return err.
func (s *Store) Fail(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// FailAnswerInsert makes the next InsertResponse fail while writing its n-th
// answer (1-based), after the header and earlier answers were staged.
func (s *Store) FailAnswerInsert(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAnswerAt = n
	s.failAnswerWith = err
}

func (s *Store) takeFailure(method string) error {
	err, ok := s.failures[method]
	if !ok {
		return nil
	}
	delete(s.failures, method)
	return err
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func ensureID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

/* ========================= COMANDAS ========================= */

func (s *Store) InsertComanda(_ context.Context, comanda *models.Comanda) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertComanda"); err != nil {
		return err
	}
	for _, existing := range s.comandas {
		if existing.IsActive && comanda.IsActive && existing.Token == comanda.Token {
			return models.ErrDuplicateKey
		}
	}
	ensureID(&comanda.ID)
	s.comandas = append(s.comandas, *comanda)
	return nil
}

func (s *Store) FindActiveComandaByToken(_ context.Context, token string) (models.Comanda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindActiveComandaByToken"); err != nil {
		return models.Comanda{}, err
	}
	for _, comanda := range s.comandas {
		if comanda.Token == token && comanda.IsActive {
			return comanda, nil
		}
	}
	return models.Comanda{}, models.ErrNotFound
}

func (s *Store) ListComandas(_ context.Context) ([]models.Comanda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListComandas"); err != nil {
		return nil, err
	}
	out := append([]models.Comanda(nil), s.comandas...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return out, nil
}

func (s *Store) UpdateComanda(_ context.Context, id string, update models.ComandaUpdate) (models.Comanda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("UpdateComanda"); err != nil {
		return models.Comanda{}, err
	}
	for i := range s.comandas {
		comanda := &s.comandas[i]
		if comanda.ID != id {
			continue
		}
		if update.GuestName != nil {
			comanda.GuestName = *update.GuestName
		}
		if update.Cabin != nil {
			comanda.Cabin = *update.Cabin
		}
		if update.NumberOfGuests != nil {
			comanda.NumberOfGuests = *update.NumberOfGuests
		}
		if update.MensagemAtraso != nil {
			comanda.MensagemAtraso = *update.MensagemAtraso
		}
		if update.HorarioLimite != nil {
			comanda.HorarioLimite = *update.HorarioLimite
		}
		if update.ClearHorarioLimite {
			comanda.HorarioLimite = models.Instant{}
		}
		return *comanda, nil
	}
	return models.Comanda{}, models.ErrNotFound
}

func (s *Store) ListActiveComandasDueBetween(_ context.Context, from, to time.Time) ([]models.Comanda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListActiveComandasDueBetween"); err != nil {
		return nil, err
	}
	var out []models.Comanda
	for _, comanda := range s.comandas {
		deadline := comanda.HorarioLimite
		if !comanda.IsActive || deadline.IsZero() {
			continue
		}
		if deadline.After(from) && !deadline.After(to) {
			out = append(out, comanda)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].HorarioLimite.Before(out[j].HorarioLimite.Time) })
	return out, nil
}

func (s *Store) CountActiveComandasCreatedSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("CountActiveComandasCreatedSince"); err != nil {
		return 0, err
	}
	var count int64
	for _, comanda := range s.comandas {
		if comanda.IsActive && !comanda.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListActiveComandasCreatedSince(_ context.Context, since time.Time, limit int64) ([]models.Comanda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListActiveComandasCreatedSince"); err != nil {
		return nil, err
	}
	var out []models.Comanda
	for _, comanda := range s.comandas {
		if comanda.IsActive && !comanda.CreatedAt.Before(since) {
			out = append(out, comanda)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return truncate(out, limit), nil
}

/* ========================= SURVEYS ========================= */

func (s *Store) ListSurveys(_ context.Context) ([]models.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListSurveys"); err != nil {
		return nil, err
	}
	out := append([]models.Survey(nil), s.surveys...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return out, nil
}

func (s *Store) FindActiveSurvey(_ context.Context) (models.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindActiveSurvey"); err != nil {
		return models.Survey{}, err
	}
	for _, survey := range s.surveys {
		if survey.IsActive {
			return survey, nil
		}
	}
	return models.Survey{}, models.ErrNotFound
}

func (s *Store) FindSurvey(_ context.Context, id string) (models.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindSurvey"); err != nil {
		return models.Survey{}, err
	}
	for _, survey := range s.surveys {
		if survey.ID == id {
			return survey, nil
		}
	}
	return models.Survey{}, models.ErrNotFound
}

func (s *Store) InsertSurvey(_ context.Context, survey *models.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertSurvey"); err != nil {
		return err
	}
	ensureID(&survey.ID)
	s.surveys = append(s.surveys, *survey)
	return nil
}

func (s *Store) UpdateSurvey(_ context.Context, id string, update models.SurveyUpdate) (models.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("UpdateSurvey"); err != nil {
		return models.Survey{}, err
	}
	index := -1
	for i := range s.surveys {
		if s.surveys[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return models.Survey{}, models.ErrNotFound
	}

	survey := &s.surveys[index]
	if update.Title != nil {
		survey.Title = *update.Title
	}
	if update.Description != nil {
		survey.Description = *update.Description
	}
	if update.IsActive != nil {
		if *update.IsActive {
			for i := range s.surveys {
				s.surveys[i].IsActive = false
			}
		}
		survey.IsActive = *update.IsActive
	}
	return *survey, nil
}

func (s *Store) DeleteSurvey(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("DeleteSurvey"); err != nil {
		return err
	}
	kept := s.surveys[:0]
	found := false
	for _, survey := range s.surveys {
		if survey.ID == id {
			found = true
			continue
		}
		kept = append(kept, survey)
	}
	if !found {
		return models.ErrNotFound
	}
	s.surveys = kept

	questions := s.questions[:0]
	for _, question := range s.questions {
		if question.SurveyID != id {
			questions = append(questions, question)
		}
	}
	s.questions = questions
	return nil
}

func (s *Store) ListQuestions(_ context.Context, surveyID string) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListQuestions"); err != nil {
		return nil, err
	}
	var out []models.Question
	for _, question := range s.questions {
		if question.SurveyID == surveyID {
			out = append(out, cloneQuestion(question))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *Store) InsertQuestion(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertQuestion"); err != nil {
		return err
	}
	ensureID(&question.ID)
	s.questions = append(s.questions, cloneQuestion(*question))
	return nil
}

func (s *Store) UpdateQuestion(_ context.Context, surveyID, questionID string, update models.QuestionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("UpdateQuestion"); err != nil {
		return err
	}
	for i := range s.questions {
		question := &s.questions[i]
		if question.SurveyID != surveyID || question.ID != questionID {
			continue
		}
		if update.Text != nil {
			question.Text = *update.Text
		}
		if update.Type != nil {
			question.Type = *update.Type
		}
		if update.Category != nil {
			question.Category = *update.Category
		}
		if update.Options != nil {
			question.Options = append(models.StringList(nil), (*update.Options)...)
		}
		if update.Position != nil {
			question.Position = *update.Position
		}
		return nil
	}
	return models.ErrNotFound
}

func (s *Store) DeleteQuestion(_ context.Context, surveyID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("DeleteQuestion"); err != nil {
		return err
	}
	for i, question := range s.questions {
		if question.SurveyID == surveyID && question.ID == questionID {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func cloneQuestion(question models.Question) models.Question {
	if question.Options != nil {
		question.Options = append(models.StringList(nil), question.Options...)
	}
	return question
}

/* ========================= RESPONSES ========================= */

// InsertResponse stages the header and answers and only commits them when
// every write succeeded.
func (s *Store) InsertResponse(_ context.Context, response *models.SurveyResponse, answers []models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertResponse"); err != nil {
		return err
	}

	header := *response
	ensureID(&header.ID)

	staged := make([]models.Answer, 0, len(answers))
	for i, answer := range answers {
		if s.failAnswerAt == i+1 {
			err := s.failAnswerWith
			s.failAnswerAt, s.failAnswerWith = 0, nil
			return err
		}
		answer.ResponseID = header.ID
		ensureID(&answer.ID)
		staged = append(staged, answer)
	}

	s.responses = append(s.responses, header)
	s.answers = append(s.answers, staged...)
	response.ID = header.ID
	return nil
}

func (s *Store) ListResponses(_ context.Context, surveyID string, from, to time.Time) ([]models.ResponseWithAnswers, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListResponses"); err != nil {
		return nil, err
	}
	var out []models.ResponseWithAnswers
	for _, response := range s.responses {
		if response.SurveyID != surveyID {
			continue
		}
		if !within(response.RespondedAt.Time, from, to) {
			continue
		}
		joined := models.ResponseWithAnswers{SurveyResponse: response, Answers: []models.Answer{}}
		for _, answer := range s.answers {
			if answer.ResponseID == response.ID {
				joined.Answers = append(joined.Answers, answer)
			}
		}
		out = append(out, joined)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RespondedAt.Before(out[j].RespondedAt.Time) })
	return out, nil
}

// ResponseCount and AnswerCount expose raw document counts for assertions.
func (s *Store) ResponseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}

func (s *Store) AnswerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

/* ========================= LINKS ========================= */

func (s *Store) InsertLink(_ context.Context, link *models.GeneratedSurveyLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertLink"); err != nil {
		return err
	}
	ensureID(&link.ID)
	s.links = append(s.links, *link)
	return nil
}

func (s *Store) ListLinks(_ context.Context, surveyID string, limit int64) ([]models.GeneratedSurveyLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListLinks"); err != nil {
		return nil, err
	}
	var out []models.GeneratedSurveyLink
	for _, link := range s.links {
		if link.SurveyID == surveyID {
			out = append(out, link)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return truncate(out, limit), nil
}

/* ========================= PRE-CHECK-IN ========================= */

func (s *Store) InsertPreCheckIn(_ context.Context, preCheckIn *models.PreCheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertPreCheckIn"); err != nil {
		return err
	}
	ensureID(&preCheckIn.ID)
	s.preCheckIns = append(s.preCheckIns, *preCheckIn)
	return nil
}

func (s *Store) ListPreCheckIns(_ context.Context, limit int64) ([]models.PreCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListPreCheckIns"); err != nil {
		return nil, err
	}
	out := append([]models.PreCheckIn(nil), s.preCheckIns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return truncate(out, limit), nil
}

func (s *Store) UpdatePreCheckInStatus(_ context.Context, id string, status models.PreCheckInStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("UpdatePreCheckInStatus"); err != nil {
		return err
	}
	for i := range s.preCheckIns {
		if s.preCheckIns[i].ID == id {
			s.preCheckIns[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

// PutPreCheckIn stores a document as is, keeping its id.
func (s *Store) PutPreCheckIn(preCheckIn models.PreCheckIn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preCheckIns = append(s.preCheckIns, preCheckIn)
}

/* ========================= STOCK ========================= */

func (s *Store) InsertStockOrder(_ context.Context, order *models.StockOrderRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertStockOrder"); err != nil {
		return err
	}
	ensureID(&order.ID)
	s.orders = append(s.orders, *order)
	return nil
}

func (s *Store) ListStockOrders(_ context.Context, limit int64) ([]models.StockOrderRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListStockOrders"); err != nil {
		return nil, err
	}
	out := append([]models.StockOrderRequest(nil), s.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return truncate(out, limit), nil
}

func (s *Store) ListStockOrdersBetween(_ context.Context, from, to time.Time) ([]models.StockOrderRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListStockOrdersBetween"); err != nil {
		return nil, err
	}
	var out []models.StockOrderRequest
	for _, order := range s.orders {
		if within(order.CreatedAt.Time, from, to) {
			out = append(out, order)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt.Time) })
	return out, nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListSuppliers"); err != nil {
		return nil, err
	}
	out := append([]models.Supplier(nil), s.suppliers...)
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, nil
}

func (s *Store) FindSupplier(_ context.Context, id string) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindSupplier"); err != nil {
		return models.Supplier{}, err
	}
	for _, supplier := range s.suppliers {
		if supplier.ID == id {
			return supplier, nil
		}
	}
	return models.Supplier{}, models.ErrNotFound
}

func (s *Store) InsertSupplier(_ context.Context, supplier *models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertSupplier"); err != nil {
		return err
	}
	ensureID(&supplier.ID)
	s.suppliers = append(s.suppliers, *supplier)
	return nil
}

func (s *Store) DeleteSupplier(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("DeleteSupplier"); err != nil {
		return err
	}
	index := -1
	for i, supplier := range s.suppliers {
		if supplier.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return models.ErrNotFound
	}
	s.suppliers = append(s.suppliers[:index], s.suppliers[index+1:]...)

	kept := s.items[:0]
	for _, item := range s.items {
		if item.SupplierID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

func (s *Store) ListItems(_ context.Context, supplierID string) ([]models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListItems"); err != nil {
		return nil, err
	}
	var out []models.StockItem
	for _, item := range s.items {
		if supplierID == "" || item.SupplierID == supplierID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Posicao != out[j].Posicao {
			return out[i].Posicao < out[j].Posicao
		}
		return byName(out[i].Name, out[j].Name)
	})
	return out, nil
}

func (s *Store) InsertItem(_ context.Context, item *models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertItem"); err != nil {
		return err
	}
	ensureID(&item.ID)
	s.items = append(s.items, *item)
	return nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("DeleteItem"); err != nil {
		return err
	}
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

/* ========================= CATALOGUE ========================= */

func (s *Store) ListCabins(_ context.Context) ([]models.Cabin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListCabins"); err != nil {
		return nil, err
	}
	out := append([]models.Cabin(nil), s.cabins...)
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, nil
}

func (s *Store) InsertCabin(_ context.Context, cabin *models.Cabin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertCabin"); err != nil {
		return err
	}
	ensureID(&cabin.ID)
	s.cabins = append(s.cabins, *cabin)
	return nil
}

func (s *Store) UpdateCabin(_ context.Context, id string, update models.CabinUpdate) (models.Cabin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("UpdateCabin"); err != nil {
		return models.Cabin{}, err
	}
	for i := range s.cabins {
		cabin := &s.cabins[i]
		if cabin.ID != id {
			continue
		}
		if update.Name != nil {
			cabin.Name = *update.Name
		}
		if update.Capacity != nil {
			cabin.Capacity = *update.Capacity
		}
		return *cabin, nil
	}
	return models.Cabin{}, models.ErrNotFound
}

func (s *Store) DeleteCabin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("DeleteCabin"); err != nil {
		return err
	}
	for i, cabin := range s.cabins {
		if cabin.ID == id {
			s.cabins = append(s.cabins[:i], s.cabins[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *Store) ListCountries(_ context.Context) ([]models.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListCountries"); err != nil {
		return nil, err
	}
	out := append([]models.Country(nil), s.countries...)
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, nil
}

func (s *Store) InsertCountry(_ context.Context, country *models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertCountry"); err != nil {
		return err
	}
	ensureID(&country.ID)
	s.countries = append(s.countries, *country)
	return nil
}

func (s *Store) ListStates(_ context.Context, countryID string) ([]models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListStates"); err != nil {
		return nil, err
	}
	var out []models.State
	for _, state := range s.states {
		if state.CountryID == countryID {
			out = append(out, state)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, nil
}

func (s *Store) InsertState(_ context.Context, state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertState"); err != nil {
		return err
	}
	ensureID(&state.ID)
	s.states = append(s.states, *state)
	return nil
}

func (s *Store) ListCities(_ context.Context, stateID string) ([]models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("ListCities"); err != nil {
		return nil, err
	}
	var out []models.City
	for _, city := range s.cities {
		if city.StateID == stateID {
			out = append(out, city)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, nil
}

func (s *Store) InsertCity(_ context.Context, city *models.City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertCity"); err != nil {
		return err
	}
	ensureID(&city.ID)
	s.cities = append(s.cities, *city)
	return nil
}

func (s *Store) FindSettings(_ context.Context, key string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindSettings"); err != nil {
		return nil, err
	}
	settings, ok := s.settings[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copySettings(settings), nil
}

func (s *Store) MergeSettings(_ context.Context, key string, fields models.Settings) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("MergeSettings"); err != nil {
		return nil, err
	}
	current, ok := s.settings[key]
	if !ok {
		current = models.Settings{}
	}
	for k, v := range fields {
		current[k] = v
	}
	s.settings[key] = current
	return copySettings(current), nil
}

func copySettings(settings models.Settings) models.Settings {
	out := make(models.Settings, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out
}

/* ========================= ADMINS ========================= */

func (s *Store) FindAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("FindAdminByEmail"); err != nil {
		return models.Admin{}, err
	}
	for _, admin := range s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return models.Admin{}, models.ErrNotFound
}

func (s *Store) InsertAdmin(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("InsertAdmin"); err != nil {
		return err
	}
	for _, existing := range s.admins {
		if existing.Email == admin.Email {
			return models.ErrDuplicateKey
		}
	}
	ensureID(&admin.ID)
	s.admins = append(s.admins, *admin)
	return nil
}

func truncate[T any](values []T, limit int64) []T {
	if limit > 0 && int64(len(values)) > limit {
		return values[:limit]
	}
	return values
}

// within treats a zero bound as open, as the Mongo stores do.
func within(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func byName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
