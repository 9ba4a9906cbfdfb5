package server

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/store"
)

// Response is the envelope every endpoint returns.
type Response[T any] struct {
	Success bool     `json:"success"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    T        `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// SuccessResponse wraps data in a 200 envelope.
func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse builds a failed envelope.
func ErrorResponse(code int, message string, details ...string) Response[any] {
	return Response[any]{
		Code:    code,
		Message: message,
		Errors:  details,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// requestError is a 4xx error carrying per-field details.
type requestError struct {
	code    int
	message string
	details []string
}

func (e *requestError) Error() string {
	if len(e.details) == 0 {
		return e.message
	}
	return e.message + ": " + strings.Join(e.details, "; ")
}

// ValidateRequest checks req against its validate tags.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{code: fiber.StatusBadRequest, message: err.Error()}
	}
	details := make([]string, len(verrs))
	for i, fe := range verrs {
		details[i] = fe.Field() + " failed on " + fe.Tag()
	}
	return &requestError{code: fiber.StatusBadRequest, message: "validation failed", details: details}
}

// errorHandler maps handler errors onto status codes and the error envelope.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			reqErr   *requestError
			fiberErr *fiber.Error
		)
		resp := ErrorResponse(fiber.StatusInternalServerError, "internal server error")
		switch {
		case errors.As(err, &reqErr):
			resp = ErrorResponse(reqErr.code, reqErr.message, reqErr.details...)
		case errors.As(err, &fiberErr):
			resp = ErrorResponse(fiberErr.Code, fiberErr.Message)
		case errors.Is(err, store.ErrNotFound):
			resp = ErrorResponse(fiber.StatusNotFound, "document not found")
		case errors.Is(err, store.ErrInvalidID):
			resp = ErrorResponse(fiber.StatusBadRequest, "invalid document id")
		case errors.Is(err, store.ErrUnsanitized):
			resp = ErrorResponse(fiber.StatusUnprocessableEntity, "content is not sanitized")
		default:
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(resp.Code).JSON(resp)
	}
}
