package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

/* =========================
   PUBLIC: SURVEYS
========================= */

func GetActiveSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys/active"
		defer handlePanic(c, route)

		survey, err := svc.GetActive(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, survey)
	}
}

func GetSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys/:id"
		defer handlePanic(c, route)

		survey, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, survey)
	}
}

func SubmitResponse(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /responses"
		defer handlePanic(c, route)

		var input service.SubmitResponseInput
		if !bindJSON(c, route, &input) {
			return
		}

		id, err := svc.SubmitResponse(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] stored response=%s survey=%s answers=%d", route, id, input.SurveyID, len(input.Answers))
		c.JSON(http.StatusCreated, gin.H{"message": "Respostas salvas com sucesso!", "id": id})
	}
}

/* =========================
   ADMIN: SURVEYS
========================= */

func ListSurveys(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys"
		defer handlePanic(c, route)

		surveys, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": surveys})
	}
}

func CreateSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /surveys"
		defer handlePanic(c, route)

		var input service.CreateSurveyInput
		if !bindJSON(c, route, &input) {
			return
		}

		survey, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, survey)
	}
}

func UpdateSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /surveys/:id"
		defer handlePanic(c, route)

		var input service.UpdateSurveyInput
		if !bindJSON(c, route, &input) {
			return
		}

		survey, err := svc.Update(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, survey)
	}
}

func DeleteSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /surveys/:id"
		defer handlePanic(c, route)

		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Pesquisa excluída com sucesso.")
	}
}

func resultsFilter(c *gin.Context) service.ResultsFilter {
	return service.ResultsFilter{
		StartDate: queryValue(c, "startDate"),
		EndDate:   queryValue(c, "endDate"),
		Cabin:     queryValue(c, "cabana"),
		Country:   queryValue(c, "pais"),
		State:     queryValue(c, "estado"),
		City:      queryValue(c, "cidade"),
	}
}

func SurveyResults(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys/:id/results"
		defer handlePanic(c, route)

		report, err := svc.Results(c.Request.Context(), c.Param("id"), resultsFilter(c))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// ExportSurvey streams the responses as CSV unless ?format=json is given.
func ExportSurvey(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /surveys/:id/export"
		defer handlePanic(c, route)

		filter := resultsFilter(c)
		table, err := svc.Export(c.Request.Context(), c.Param("id"), filter)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		if queryValue(c, "format") == "json" {
			c.JSON(http.StatusOK, table)
			return
		}

		filename := fmt.Sprintf("pesquisa_%s_%s_a_%s.csv", c.Param("id"), filter.StartDate, filter.EndDate)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)

		// BOM so spreadsheet tools pick up UTF-8 accents.
		_, _ = c.Writer.WriteString("\ufeff")
		w := csv.NewWriter(c.Writer)
		if err := w.WriteAll(table.Records()); err != nil {
			log.Printf("[%s] [ERROR] write csv: %v", route, err)
		}
	}
}

/* =========================
   ADMIN: QUESTIONS
========================= */

func AddQuestion(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /surveys/:id/questions"
		defer handlePanic(c, route)

		var input service.QuestionInput
		if !bindJSON(c, route, &input) {
			return
		}

		question, err := svc.AddQuestion(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, question)
	}
}

func UpdateQuestion(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /surveys/:id/questions/:questionId"
		defer handlePanic(c, route)

		var input service.UpdateQuestionInput
		if !bindJSON(c, route, &input) {
			return
		}

		if err := svc.UpdateQuestion(c.Request.Context(), c.Param("id"), c.Param("questionId"), input); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Pergunta atualizada com sucesso.")
	}
}

func DeleteQuestion(svc *service.SurveyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /surveys/:id/questions/:questionId"
		defer handlePanic(c, route)

		if err := svc.DeleteQuestion(c.Request.Context(), c.Param("id"), c.Param("questionId")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Pergunta excluída com sucesso.")
	}
}
