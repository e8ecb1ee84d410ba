package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/domain/ledger"
	"github.com/jhoicas/finapi/internal/domain/repository"
)

// ExportUseCase genera el extracto descargable (PDF u OFX) de una cuenta.
type ExportUseCase struct {
	repo      repository.CustomerRepository
	generator StatementPDFGenerator
	exporter  StatementOFXExporter
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso inyectando los generadores.
func NewExportUseCase(
	repo repository.CustomerRepository,
	generator StatementPDFGenerator,
	exporter StatementOFXExporter,
) *ExportUseCase {
	return &ExportUseCase{repo: repo, generator: generator, exporter: exporter, now: time.Now}
}

// DownloadStatementPDF arma el documento del extracto (completo o de un día) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la cuenta no existe.
func (uc *ExportUseCase) DownloadStatementPDF(ctx context.Context, cpf string, day *time.Time) ([]byte, string, error) {
	doc, err := uc.buildDocument(cpf, day)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateStatementPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("extracto: generar PDF: %w", err)
	}
	return pdfBytes, filename(doc, "pdf"), nil
}

// DownloadStatementOFX igual que DownloadStatementPDF pero en formato OFX 2.2.
func (uc *ExportUseCase) DownloadStatementOFX(ctx context.Context, cpf string, day *time.Time) ([]byte, string, error) {
	doc, err := uc.buildDocument(cpf, day)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportStatementOFX(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("extracto: generar OFX: %w", err)
	}
	return out, filename(doc, "ofx"), nil
}

func (uc *ExportUseCase) buildDocument(cpf string, day *time.Time) (*StatementDocument, error) {
	customer, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.Balance(customer.Statement)
	if err != nil {
		return nil, err
	}
	var ops []entity.Operation
	if day != nil {
		ops = customer.Statement.FilterByDate(*day)
	} else {
		ops = customer.Statement.All()
	}
	return &StatementDocument{
		Customer:    customer,
		Operations:  ops,
		Balance:     balance,
		Day:         day,
		GeneratedAt: uc.now(),
	}, nil
}

// filename: extrato_<id corto>[_<fecha>].<ext>
func filename(doc *StatementDocument, ext string) string {
	id := doc.Customer.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if doc.Day != nil {
		return fmt.Sprintf("extrato_%s_%s.%s", id, doc.Day.Format("2006-01-02"), ext)
	}
	return fmt.Sprintf("extrato_%s.%s", id, ext)
}
