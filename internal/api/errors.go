package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/service"
)

// handleServiceError maps the service layer's sentinel errors onto HTTP
// statuses. Unrecognized errors are logged and reported as 500s without
// leaking internals.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrClientAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrTrainerNotFound),
		errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, service.ErrFormNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidClientInput),
		errors.Is(err, service.ErrInvalidQuestionInput),
		errors.Is(err, service.ErrOptionsRequired),
		errors.Is(err, service.ErrInvalidDayIndex),
		errors.Is(err, service.ErrInvalidPlanKind),
		errors.Is(err, service.ErrInvalidProgressInput),
		errors.Is(err, service.ErrInvalidAnswerInput),
		errors.Is(err, service.ErrInvalidContentType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLibraryAlreadyImported):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
