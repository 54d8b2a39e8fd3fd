package apperror

import (
	"fmt"

	"ai-doc-assistant/config"
	"ai-doc-assistant/pkg/apperror/status"
	"ai-doc-assistant/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error       string `json:"error"`
	ErrorCode   string `json:"error_code"`
	Recoverable bool   `json:"recoverable"`
}

type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// HTTPStatus maps a pipeline error code to the HTTP status the API returns
// for it. Structural input failures are client errors; model transport
// failures map onto the matching gateway statuses.
func HTTPStatus(code status.ErrorCode) int {
	switch code {
	case status.UnsupportedFormat, status.EncodingFailed, status.InvalidStructure,
		status.EmptyDocument, status.EmptyContext:
		return fiber.StatusBadRequest
	case status.ModelTimeout:
		return fiber.StatusGatewayTimeout
	case status.ModelQuota:
		return fiber.StatusTooManyRequests
	case status.ModelMalformed, status.QuizParseFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code status.ErrorCode, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:       message,
		ErrorCode:   fmt.Sprintf("AI-%d", code),
		Recoverable: status.Recoverable(code),
	})
}

// BadRequest is a shorthand for client/validation failures
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, code, message)
}

// InternalError writes a structured warning and returns a standardized JSON error
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, status.Internal, err.Error())
}

// FromError maps a coded pipeline error onto the standardized JSON error
func FromError(module config.Module, c fiber.Ctx, err error) error {
	code := status.Code(err)
	return WriteError(module, c, HTTPStatus(code), code, err.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	return c.Status(fiber.StatusOK).JSON(response)
}
