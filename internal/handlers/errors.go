package handlers

import (
	"net/http"

	"todoapp/internal/logger"
	"todoapp/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError переводит ошибку бизнес-логики в HTML ответ.
func handleBusinessError(w http.ResponseWriter, err error, defaultMessage string) bool {
	if businessErr, ok := err.(*service.BusinessError); ok {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		message := defaultMessage
		if statusCode == http.StatusNotFound {
			message = "Task not found"
		}
		renderErrorPage(w, statusCode, message)
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
