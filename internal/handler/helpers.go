package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
	"github.com/keijiban-dev/keijiban/internal/logger"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

func (h *Handler) renderError(w http.ResponseWriter, message string, status int) {
	h.renderStatus(w, "error", errorPage{Message: message}, status)
}

// writeError maps service-layer errors onto the error page. Storage faults
// that survived the retry budget get a generic message, the cause stays in
// the server log.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var unavailable *internal_errors.StorageUnavailable
	if errors.As(err, &unavailable) {
		logger.Log.Error("storage unavailable", "error", unavailable.Err)
		h.renderError(w, "A database error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}
	var withStatus *internal_errors.ErrorWithStatusCode
	if errors.As(err, &withStatus) {
		h.renderError(w, withStatus.Message, withStatus.StatusCode)
		return
	}
	logger.Log.Error("unhandled error", "error", err)
	h.renderError(w, "Internal server error", http.StatusInternalServerError)
}

// isValidation reports whether err is a 400-class validation error, which
// re-renders the submitting form instead of the error page.
func isValidation(err error) bool {
	var withStatus *internal_errors.ErrorWithStatusCode
	return errors.As(err, &withStatus) && withStatus.StatusCode == http.StatusBadRequest
}
