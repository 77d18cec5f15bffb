package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

type recordingNotifier struct {
	sent []models.PreCheckIn
	err  error
}

func (n *recordingNotifier) NotifyPreCheckIn(_ context.Context, preCheckIn models.PreCheckIn) error {
	n.sent = append(n.sent, preCheckIn)
	return n.err
}

func TestPreCheckInUpdateStatus(t *testing.T) {
	store := memstore.New()
	store.PutPreCheckIn(models.PreCheckIn{ID: "abc123", LeadGuestCPF: "12345678900", Status: models.PreCheckInReceived})
	svc := service.NewPreCheckInService(store, nil)

	require.NoError(t, svc.UpdateStatus(context.Background(), "abc123", service.UpdatePreCheckInStatusInput{Status: "concluido"}))

	err := svc.UpdateStatus(context.Background(), "abc123", service.UpdatePreCheckInStatusInput{Status: "bogus"})
	requireValidation(t, err)

	items, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, models.PreCheckInCompleted, items[0].Status)

	err = svc.UpdateStatus(context.Background(), "nope", service.UpdatePreCheckInStatusInput{Status: "arquivado"})
	requireNotFound(t, err)
}

func TestPreCheckInSubmit(t *testing.T) {
	store := memstore.New()
	notifier := &recordingNotifier{}
	svc := service.NewPreCheckInService(store, notifier)
	svc.Now = clock(fixedNow)

	id, err := svc.Submit(context.Background(), service.SubmitPreCheckInInput{
		Guests:       []interface{}{map[string]interface{}{"name": "Ana"}},
		LeadGuestCPF: " 123.456.789-00 ",
		Extra:        map[string]interface{}{"arrivalTime": "14:00", "status": "concluido"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, notifier.sent, 1)
	sent := notifier.sent[0]
	require.Equal(t, models.PreCheckInReceived, sent.Status)
	require.Equal(t, "123.456.789-00", sent.LeadGuestCPF)
	require.Equal(t, map[string]interface{}{"arrivalTime": "14:00"}, sent.Extra)
}

func TestPreCheckInSubmit_NotificationFailureDoesNotFail(t *testing.T) {
	store := memstore.New()
	svc := service.NewPreCheckInService(store, &recordingNotifier{err: errors.New("smtp down")})

	_, err := svc.Submit(context.Background(), service.SubmitPreCheckInInput{Guests: []interface{}{"Ana"}, LeadGuestCPF: "1"})
	require.NoError(t, err)

	items, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestPreCheckInSubmit_Validation(t *testing.T) {
	store := memstore.New()
	svc := service.NewPreCheckInService(store, nil)

	_, err := svc.Submit(context.Background(), service.SubmitPreCheckInInput{LeadGuestCPF: "1"})
	requireValidation(t, err)
	_, err = svc.Submit(context.Background(), service.SubmitPreCheckInInput{Guests: []interface{}{"Ana"}})
	requireValidation(t, err)

	items, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestPreCheckInListRecent_CapsAtLimit(t *testing.T) {
	store := memstore.New()
	svc := service.NewPreCheckInService(store, nil)
	for i := 0; i < service.PreCheckInListLimit+5; i++ {
		_, err := svc.Submit(context.Background(), service.SubmitPreCheckInInput{Guests: []interface{}{"Ana"}, LeadGuestCPF: "1"})
		require.NoError(t, err)
	}

	items, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, service.PreCheckInListLimit)
}
