package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/service"
)

func TestLinkHistory_ReturnsFiftyMostRecent(t *testing.T) {
	store := memstore.New()
	svc := service.NewLinkService(store)

	for i := 0; i < 60; i++ {
		svc.Now = clock(fixedNow.Add(time.Duration(i) * time.Minute))
		_, err := svc.Record(context.Background(), service.RecordLinkInput{
			SurveyID: "s1",
			FullURL:  fmt.Sprintf("https://fazenda.example/pesquisa?link=%d", i),
		})
		require.NoError(t, err)
	}
	_, err := svc.Record(context.Background(), service.RecordLinkInput{SurveyID: "s2", FullURL: "https://fazenda.example/outra"})
	require.NoError(t, err)

	links, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, links, service.LinkHistoryLimit)

	require.Equal(t, "https://fazenda.example/pesquisa?link=59", links[0].FullURL)
	require.Equal(t, "https://fazenda.example/pesquisa?link=10", links[len(links)-1].FullURL)
	for i := 1; i < len(links); i++ {
		require.True(t, links[i-1].CreatedAt.After(links[i].CreatedAt.Time))
	}
}

func TestLinkRecord_KeepsExtraFields(t *testing.T) {
	svc := service.NewLinkService(memstore.New())
	svc.Now = clock(fixedNow)

	link, err := svc.Record(context.Background(), service.RecordLinkInput{
		SurveyID: "s1",
		FullURL:  "https://fazenda.example/p",
		Context:  map[string]interface{}{"cabinName": "Ipê"},
		Extra:    map[string]interface{}{"guestName": "Ana", "surveyId": "ignored", "createdAt": "ignored"},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"guestName": "Ana"}, link.Extra)

	raw, err := json.Marshal(link)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "Ana", decoded["guestName"])
	require.Equal(t, "s1", decoded["surveyId"])
}

func TestLinkValidation(t *testing.T) {
	svc := service.NewLinkService(memstore.New())

	_, err := svc.Record(context.Background(), service.RecordLinkInput{SurveyID: "s1"})
	requireValidation(t, err)
	_, err = svc.Record(context.Background(), service.RecordLinkInput{FullURL: "https://fazenda.example/p"})
	requireValidation(t, err)

	_, err = svc.History(context.Background(), " ")
	requireValidation(t, err)
}
