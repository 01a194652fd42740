package gateway

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
)

var statusCodes = map[api.ErrorCode]int{
	api.InvalidParameterCode: http.StatusBadRequest,
	api.UnseparableInputCode: http.StatusUnprocessableEntity,
	api.ModelUnavailableCode: http.StatusServiceUnavailable,
	api.NotFoundCode:         http.StatusNotFound,
	api.DefaultErrorCode:     http.StatusInternalServerError,
}

type errorBody struct {
	Code    api.ErrorCode `json:"code"`
	Message string        `json:"message"`
}

// ErrorResponse logs the internal error and writes the user facing
// code and message with the matching HTTP status.
func ErrorResponse(c echo.Context, apiErr *api.Error) error {
	status, ok := statusCodes[apiErr.ErrorCode]
	if !ok {
		status = http.StatusInternalServerError
	}

	log.WithFields(log.Fields{
		"code":   string(apiErr.ErrorCode),
		"status": status,
	}).WithError(apiErr.InternalError).Error("Request failed")

	return c.JSON(status, errorBody{
		Code:    apiErr.ErrorCode,
		Message: apiErr.UserMessage,
	})
}
