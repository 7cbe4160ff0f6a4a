package httperrors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/gin-gonic/gin"
)

// Status HTTP-статус для ошибки usecase-слоя
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrChartStorageDisabled),
		errors.Is(err, domain.ErrReportStorageDisabled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrChartNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message текст для клиента: у ошибки валидации только её сообщение, без обёрток
func Message(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	switch {
	case errors.Is(err, domain.ErrChartStorageDisabled):
		return domain.ErrChartStorageDisabled.Error()
	case errors.Is(err, domain.ErrReportStorageDisabled):
		return domain.ErrReportStorageDisabled.Error()
	case errors.Is(err, domain.ErrChartNotFound):
		return domain.ErrChartNotFound.Error()
	}
	return err.Error()
}

// Write отвечает {error: msg}; 5xx логируются как ошибки, 4xx как предупреждения
func Write(ctx *gin.Context, log *slog.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"error", err,
			"path", ctx.FullPath(),
		)
	} else {
		log.Debug("request rejected",
			"error", err,
			"status", status,
			"path", ctx.FullPath(),
		)
	}
	ctx.JSON(status, gin.H{"error": Message(err)})
}

// BadRequest 400 с заданным сообщением
func BadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
