package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

/* =========================
   SURVEY LINKS
========================= */

func ListSurveyLinks(svc *service.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys/links"
		defer handlePanic(c, route)

		links, err := svc.History(c.Request.Context(), c.Query("surveyId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": links})
	}
}

func RecordSurveyLink(svc *service.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /surveys/links"
		defer handlePanic(c, route)

		var input service.RecordLinkInput
		extra, ok := bindJSONWithExtra(c, route, &input)
		if !ok {
			return
		}
		input.Extra = extra

		link, err := svc.Record(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

/* =========================
   PRE-CHECK-IN
========================= */

func SubmitPreCheckIn(svc *service.PreCheckInService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /pre-check-in"
		defer handlePanic(c, route)

		var input service.SubmitPreCheckInInput
		extra, ok := bindJSONWithExtra(c, route, &input)
		if !ok {
			return
		}
		input.Extra = extra

		id, err := svc.Submit(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] stored pre-check-in=%s guests=%d", route, id, len(input.Guests))
		c.JSON(http.StatusCreated, gin.H{"message": "Pré-check-in enviado com sucesso!", "id": id})
	}
}

func ListPreCheckIns(svc *service.PreCheckInService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /pre-check-in/list"
		defer handlePanic(c, route)

		items, err := svc.ListRecent(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

func UpdatePreCheckInStatus(svc *service.PreCheckInService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /pre-check-in/:id"
		defer handlePanic(c, route)

		var input service.UpdatePreCheckInStatusInput
		if !bindJSON(c, route, &input) {
			return
		}

		if err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), input); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, fmt.Sprintf("Status atualizado para %s.", input.Status))
	}
}
