package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finapi/internal/domain"
	"github.com/jhoicas/finapi/internal/domain/entity"
)

// Balance calcula el saldo de un extracto (servicio de dominio puro).
// Saldo = Σ créditos − Σ débitos, en orden de inserción.
// Un tipo desconocido indica datos corruptos: se aborta con domain.ErrInvalidOperationType.
func Balance(ops []entity.Operation) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, op := range ops {
		switch op.Type {
		case entity.OperationTypeCredit:
			total = total.Add(op.Amount)
		case entity.OperationTypeDebit:
			total = total.Sub(op.Amount)
		default:
			return decimal.Zero, fmt.Errorf("operación %d (%q): %w", i, op.Type, domain.ErrInvalidOperationType)
		}
	}
	return total, nil
}
