package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// errInvalidBody el cuerpo no es JSON válido para el DTO.
var errInvalidBody = errors.New("cuerpo inválido")

// apiError respuesta ya resuelta (código HTTP + código de negocio).
type apiError struct {
	status int
	code   string
	msg    string
}

// toAPIError traduce errores de dominio a respuesta HTTP. Lo desconocido es 500.
func toAPIError(err error) apiError {
	var stockErr *domain.StockError
	var fe *fiber.Error
	switch {
	case errors.As(err, &stockErr):
		return apiError{fiber.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return apiError{fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error()}
	case errors.Is(err, domain.ErrInsufficientPayment):
		return apiError{fiber.StatusPaymentRequired, "INSUFFICIENT_PAYMENT", err.Error()}
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return apiError{fiber.StatusConflict, "INVALID_STATE_TRANSITION", err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return apiError{fiber.StatusConflict, "DUPLICATE", err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return apiError{fiber.StatusNotFound, "NOT_FOUND", err.Error()}
	case errors.Is(err, errInvalidBody):
		return apiError{fiber.StatusBadRequest, "INVALID_BODY", err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{fiber.StatusBadRequest, "VALIDATION", err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"}
	case errors.Is(err, domain.ErrUnauthorized):
		return apiError{fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return apiError{fiber.StatusForbidden, "FORBIDDEN", err.Error()}
	case errors.As(err, &fe):
		return apiError{fe.Code, "HTTP_ERROR", fe.Message}
	default:
		return apiError{fiber.StatusInternalServerError, "INTERNAL", "error interno"}
	}
}

// NewErrorHandler ErrorHandler de Fiber: los handlers devuelven el error de dominio tal
// cual y aquí se decide el código. Solo los 5xx se registran.
func NewErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae := toAPIError(err)
		if ae.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado en request")
		}
		return c.Status(ae.status).JSON(dto.ErrorResponse{Code: ae.code, Message: ae.msg})
	}
}
