package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madeengine/memoryd/internal/store"
)

// mapServiceError maps a store-layer error to an HTTP status and
// writes the failure envelope onto c. Unexpected errors are logged and
// reduced to a generic 500 so internals never leak to the client.
func mapServiceError(c *gin.Context, err error) {
	var validErr *store.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, fail(validErr.Error()))
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, fail("resource not found"))
		return
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, fail("resource already exists"))
		return
	}

	slog.Error("unexpected store error", "error", err)
	c.JSON(http.StatusInternalServerError, fail("internal server error"))
}
