package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidOperation = errors.New("operación inválida para el estado actual")
	// ErrInvalidInput es un caso particular de operación inválida (campos obligatorios, tipo o qtd fuera de rango):
	// errors.Is(ErrInvalidInput, ErrInvalidOperation) es verdadero.
	ErrInvalidInput = fmt.Errorf("%w: entrada inválida", ErrInvalidOperation)
	ErrDuplicate    = errors.New("recurso duplicado")
	// ErrPersistence envuelve cualquier fallo del proveedor de persistencia (red, driver, timeout).
	// Los adaptadores lo combinan con la causa: fmt.Errorf("%w: ...: %w", ErrPersistence, err).
	ErrPersistence = errors.New("fallo de persistencia")
)
