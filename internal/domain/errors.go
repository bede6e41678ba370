package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInsufficientPayment    = errors.New("pago insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrInvalidCredentials     = errors.New("credenciales inválidas")

	// ErrLockScope indica un error de programación: se intentó mutar stock de un
	// producto que no fue declarado en el alcance de bloqueo de la transacción.
	ErrLockScope = errors.New("producto fuera del alcance de bloqueo de la transacción")
)

// StockError detalla un rechazo por stock insuficiente. Envuelve ErrInsufficientStock,
// así que errors.Is(err, ErrInsufficientStock) sigue funcionando.
type StockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
