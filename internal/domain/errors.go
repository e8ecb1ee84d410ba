package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("cliente no encontrado")
	ErrDuplicateCustomer    = errors.New("ya existe un cliente con ese CPF")
	ErrInsufficientFunds    = errors.New("saldo insuficiente")
	ErrInvalidOperationType = errors.New("tipo de operación no reconocido")
	ErrInvalidAmount        = errors.New("el monto debe ser mayor que cero")
	ErrInvalidInput         = errors.New("entrada inválida")
)
