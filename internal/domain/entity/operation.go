package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación del extracto.
const (
	OperationTypeCredit = "credit" // depósito
	OperationTypeDebit  = "debit"  // retiro
)

// Operation representa un asiento del extracto. Una vez agregado no se modifica.
type Operation struct {
	ID          string
	Type        string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// IsValidOperationType indica si t pertenece al conjunto cerrado {credit, debit}.
func IsValidOperationType(t string) bool {
	return t == OperationTypeCredit || t == OperationTypeDebit
}
