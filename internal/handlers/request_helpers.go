package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

const (
	internalErrorMsg = "Erro interno do servidor."
	invalidBodyMsg   = "Corpo da requisição inválido."
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "internal_error", "message": internalErrorMsg})
	}
}

func respondWithError(c *gin.Context, status int, route, code, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, route string, err error) {
	var (
		validationErr   *service.ValidationError
		notFoundErr     *service.NotFoundError
		expiredErr      *service.ExpiredError
		unauthorizedErr *service.UnauthorizedError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Printf("[%s] returning error %d: %s %v", route, http.StatusBadRequest, validationErr.Message, validationErr.Details)
		body := gin.H{"code": "validation_error", "message": validationErr.Message}
		if len(validationErr.Details) > 0 {
			body["details"] = validationErr.Details
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, body)
	case errors.As(err, &notFoundErr):
		respondWithError(c, http.StatusNotFound, route, "not_found", notFoundErr.Message)
	case errors.As(err, &expiredErr):
		log.Printf("[%s] returning error %d: %s", route, http.StatusGone, expiredErr.Message)
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"code": "expired", "expired": true, "message": expiredErr.Message})
	case errors.As(err, &unauthorizedErr):
		respondWithError(c, http.StatusUnauthorized, route, "unauthorized", unauthorizedErr.Message)
	default:
		log.Printf("[%s] [ERROR] %v", route, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "internal_error", "message": internalErrorMsg})
	}
}

// bindJSON decodes the request body into dst. Field rules are enforced by
// the services, so only malformed JSON is rejected here.
func bindJSON(c *gin.Context, route string, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("[%s] invalid body: %v", route, err)
		respondWithError(c, http.StatusBadRequest, route, "validation_error", invalidBodyMsg)
		return false
	}
	return true
}

// bindJSONWithExtra decodes the body into dst and also returns every
// top-level field as a map, for payloads that persist unknown fields.
func bindJSONWithExtra(c *gin.Context, route string, dst interface{}) (map[string]interface{}, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[%s] read body: %v", route, err)
		respondWithError(c, http.StatusBadRequest, route, "validation_error", invalidBodyMsg)
		return nil, false
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		log.Printf("[%s] invalid body: %v", route, err)
		respondWithError(c, http.StatusBadRequest, route, "validation_error", invalidBodyMsg)
		return nil, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[%s] invalid body: %v", route, err)
		respondWithError(c, http.StatusBadRequest, route, "validation_error", invalidBodyMsg)
		return nil, false
	}
	return fields, true
}

func queryValue(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
