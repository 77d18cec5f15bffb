package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

/* =========================
   ADMIN AUTH
========================= */

func AdminLogin(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/login"
		defer handlePanic(c, route)

		var input service.LoginInput
		if !bindJSON(c, route, &input) {
			return
		}

		result, err := svc.Login(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func CreateAdmin(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/admins"
		defer handlePanic(c, route)

		var input service.CreateAdminInput
		if !bindJSON(c, route, &input) {
			return
		}

		admin, err := svc.CreateAdmin(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] created admin=%s", route, admin.Email)
		c.JSON(http.StatusCreated, admin)
	}
}
