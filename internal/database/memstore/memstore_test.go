package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cestas/internal/models"
)

func TestListResponsesTreatsZeroBoundsAsOpen(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{base.AddDate(0, 0, -1), base, base.AddDate(0, 0, 1)} {
		require.NoError(t, store.InsertResponse(ctx, &models.SurveyResponse{
			SurveyID:    "s1",
			RespondedAt: models.NewInstant(at),
		}, []models.Answer{{QuestionSnapshot: "Nota", QuestionTypeSnapshot: models.QuestionRating, Value: 5}}))
	}

	all, err := store.ListResponses(ctx, "s1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Len(t, all[0].Answers, 1)

	upTo, err := store.ListResponses(ctx, "s1", time.Time{}, base)
	require.NoError(t, err)
	require.Len(t, upTo, 2)

	from, err := store.ListResponses(ctx, "s1", base, time.Time{})
	require.NoError(t, err)
	require.Len(t, from, 2)
	require.True(t, from[0].RespondedAt.Equal(base))

	none, err := store.ListResponses(ctx, "outra", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListStockOrdersBetweenIsInclusive(t *testing.T) {
	store := New()
	ctx := context.Background()
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	for _, at := range []time.Time{start.Add(-time.Millisecond), start, end, end.Add(time.Millisecond)} {
		require.NoError(t, store.InsertStockOrder(ctx, &models.StockOrderRequest{
			OrderData: models.OrderData{"f1": {"i1": 1}},
			CreatedAt: models.NewInstant(at),
		}))
	}

	orders, err := store.ListStockOrdersBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.True(t, orders[0].CreatedAt.Equal(start))
	require.True(t, orders[1].CreatedAt.Equal(end))
}
