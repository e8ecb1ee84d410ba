package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finapi/internal/domain/entity"
)

// TxRunner ejecuta fn con acceso exclusivo a la cuenta del CPF (equivalente en memoria
// de un SELECT FOR UPDATE). fn recibe el registro vivo; sus cambios quedan aplicados
// al retornar nil. Si la cuenta no existe o se cerró, retorna domain.ErrNotFound.
type TxRunner interface {
	Run(ctx context.Context, cpf string, fn func(customer *entity.Customer) error) error
}

// StatementDocument datos necesarios para exportar un extracto.
// Day es nil cuando se exporta el extracto completo.
type StatementDocument struct {
	Customer    *entity.Customer
	Operations  []entity.Operation
	Balance     decimal.Decimal
	Day         *time.Time
	GeneratedAt time.Time
}

// StatementPDFGenerator genera la representación gráfica (PDF) de un extracto.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, doc *StatementDocument) ([]byte, error)
}

// StatementOFXExporter serializa un extracto en formato OFX.
type StatementOFXExporter interface {
	ExportStatementOFX(ctx context.Context, doc *StatementDocument) ([]byte, error)
}
