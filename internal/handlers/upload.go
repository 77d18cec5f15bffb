package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cestas/internal/storage"
)

const maxUploadSize = 10 << 20

// Uploader stores a file and returns where it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body []byte) (storage.Object, error)
}

/*
POST /upload?filename=logo.png
- raw body is the file, or a multipart "file" field
*/
func Upload(uploader Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /upload"
		defer handlePanic(c, route)

		if uploader == nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "unavailable", "Armazenamento de arquivos não configurado.")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

		filename, contentType, body, err := readUpload(c)
		if err != nil {
			log.Printf("[%s] read upload: %v", route, err)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(c, http.StatusRequestEntityTooLarge, route, "validation_error", "Arquivo muito grande (máx. 10MB).")
				return
			}
			respondWithError(c, http.StatusBadRequest, route, "validation_error", "Nome do arquivo ou corpo da requisição ausente.")
			return
		}
		if filename == "" || len(body) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "validation_error", "Nome do arquivo ou corpo da requisição ausente.")
			return
		}

		object, err := uploader.Upload(c.Request.Context(), filename, contentType, body)
		if err != nil {
			log.Printf("[%s] [ERROR] %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal_error", "Ocorreu um erro interno durante o upload.")
			return
		}

		log.Printf("[%s] stored %s (%d bytes)", route, object.Pathname, len(body))
		c.JSON(http.StatusOK, object)
	}
}

func readUpload(c *gin.Context) (string, string, []byte, error) {
	filename := queryValue(c, "filename")

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return "", "", nil, err
		}
		file, err := header.Open()
		if err != nil {
			return "", "", nil, err
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		if err != nil {
			return "", "", nil, err
		}
		if filename == "" {
			filename = header.Filename
		}
		return filename, header.Header.Get("Content-Type"), body, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", "", nil, err
	}
	return filename, c.ContentType(), body, nil
}
