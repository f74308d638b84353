package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vitalia/internal/domain"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondRepoError maps domain sentinels onto HTTP statuses; anything else
// is a 500 with a generic message so internals never leak to the client.
func respondRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "no encontrado")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "ya existe")
	default:
		respondError(c, http.StatusInternalServerError, "error interno")
	}
}

// respondServiceError is for write paths: sentinels map to their statuses,
// anything else is treated as a validation failure and echoed back.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "no encontrado")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "ya existe")
	default:
		respondError(c, http.StatusBadRequest, err.Error())
	}
}
