package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/models"
	"cestas/internal/service"
)

/* =========================
   CABINS
========================= */

func ListCabins(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cabanas"
		defer handlePanic(c, route)

		cabins, err := svc.ListCabins(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": cabins})
	}
}

func CreateCabin(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cabanas"
		defer handlePanic(c, route)

		var input service.CabinInput
		if !bindJSON(c, route, &input) {
			return
		}

		cabin, err := svc.CreateCabin(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, cabin)
	}
}

func UpdateCabin(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cabanas/:id"
		defer handlePanic(c, route)

		var input service.UpdateCabinInput
		if !bindJSON(c, route, &input) {
			return
		}

		cabin, err := svc.UpdateCabin(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cabin)
	}
}

func DeleteCabin(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cabanas/:id"
		defer handlePanic(c, route)

		if err := svc.DeleteCabin(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Cabana excluída com sucesso.")
	}
}

/* =========================
   LOCATIONS
========================= */

func ListCountries(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /locations/countries"
		defer handlePanic(c, route)

		countries, err := svc.ListCountries(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": countries})
	}
}

func CreateCountry(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /locations/countries"
		defer handlePanic(c, route)

		var input service.CountryInput
		if !bindJSON(c, route, &input) {
			return
		}

		country, err := svc.CreateCountry(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, country)
	}
}

func ListStates(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /locations/states"
		defer handlePanic(c, route)

		states, err := svc.ListStates(c.Request.Context(), c.Query("countryId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": states})
	}
}

func CreateState(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /locations/states"
		defer handlePanic(c, route)

		var input service.StateInput
		if !bindJSON(c, route, &input) {
			return
		}

		state, err := svc.CreateState(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, state)
	}
}

func ListCities(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /locations/cities"
		defer handlePanic(c, route)

		cities, err := svc.ListCities(c.Request.Context(), c.Query("stateId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": cities})
	}
}

func CreateCity(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /locations/cities"
		defer handlePanic(c, route)

		var input service.CityInput
		if !bindJSON(c, route, &input) {
			return
		}

		city, err := svc.CreateCity(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, city)
	}
}

/* =========================
   SETTINGS
========================= */

func GetSettings(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings/:key"
		defer handlePanic(c, route)

		settings, err := svc.Settings(c.Request.Context(), c.Param("key"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func UpdateSettings(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /settings/:key"
		defer handlePanic(c, route)

		var fields models.Settings
		if !bindJSON(c, route, &fields) {
			return
		}

		settings, err := svc.MergeSettings(c.Request.Context(), c.Param("key"), fields)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
