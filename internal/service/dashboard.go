package service

import (
	"context"
	"fmt"
	"time"

	"cestas/internal/models"
)

const (
	// ExpiryAlertWindow is how far ahead the dashboard warns about deadlines.
	ExpiryAlertWindow = 55 * time.Minute
	// TodayComandasLimit caps the comandas listed on the dashboard.
	TodayComandasLimit = 10
)

type DashboardAlert struct {
	ComandaID string `json:"comandaId"`
	Token     string `json:"token"`
	Message   string `json:"message"`
}

type Dashboard struct {
	ActiveComandasToday int64            `json:"activeComandasToday"`
	ComandasToday       []models.Comanda `json:"comandasToday"`
	Alerts              []DashboardAlert `json:"alerts"`
}

type DashboardService struct {
	comandas ComandaStore
	Now      func() time.Time
}

func NewDashboardService(comandas ComandaStore) *DashboardService {
	return &DashboardService{comandas: comandas, Now: time.Now}
}

// Summary counts today's active comandas, lists the newest of them and
// warns about those whose ordering deadline falls within the alert window.
func (s *DashboardService) Summary(ctx context.Context) (Dashboard, error) {
	now := s.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.comandas.CountActiveComandasCreatedSince(ctx, startOfDay)
	if err != nil {
		return Dashboard{}, internal("count comandas", err)
	}

	today, err := s.comandas.ListActiveComandasCreatedSince(ctx, startOfDay, TodayComandasLimit)
	if err != nil {
		return Dashboard{}, internal("list today's comandas", err)
	}

	due, err := s.comandas.ListActiveComandasDueBetween(ctx, now, now.Add(ExpiryAlertWindow))
	if err != nil {
		return Dashboard{}, internal("list expiring comandas", err)
	}

	dashboard := Dashboard{
		ActiveComandasToday: count,
		ComandasToday:       nonNil(today),
		Alerts:              make([]DashboardAlert, 0, len(due)),
	}
	for _, comanda := range due {
		dashboard.Alerts = append(dashboard.Alerts, DashboardAlert{
			ComandaID: comanda.ID,
			Token:     comanda.Token,
			Message:   fmt.Sprintf("A comanda %s para %s expira em breve!", comanda.Token, comanda.GuestName),
		})
	}
	return dashboard, nil
}
