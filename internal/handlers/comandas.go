package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

/* =========================
   ADMIN: COMANDAS
========================= */

func CreateComanda(svc *service.ComandaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /comandas"
		defer handlePanic(c, route)

		var input service.CreateComandaInput
		if !bindJSON(c, route, &input) {
			return
		}

		comanda, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] created comanda=%s token=%s", route, comanda.ID, comanda.Token)
		c.JSON(http.StatusCreated, comanda)
	}
}

func ListComandas(svc *service.ComandaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /comandas"
		defer handlePanic(c, route)

		comandas, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": comandas})
	}
}

func UpdateComanda(svc *service.ComandaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /comandas/:id"
		defer handlePanic(c, route)

		var input service.UpdateComandaInput
		if !bindJSON(c, route, &input) {
			return
		}

		comanda, err := svc.Update(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, comanda)
	}
}

/* =========================
   PUBLIC: TOKEN VALIDATION
========================= */

func ValidateToken(svc *service.ComandaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /validate-token/:token"
		defer handlePanic(c, route)

		comanda, err := svc.ValidateToken(c.Request.Context(), c.Param("token"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, comanda)
	}
}

/* =========================
   ADMIN: DASHBOARD
========================= */

func Dashboard(svc *service.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/dashboard"
		defer handlePanic(c, route)

		summary, err := svc.Summary(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
