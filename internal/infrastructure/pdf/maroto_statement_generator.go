// Package pdf implementa la representación gráfica del extracto de cuenta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app    │  Periodo + Fecha de emisión   │
//	│  TITULAR: Nombre + CPF + ID de cuenta                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Descripción | Tipo | Valor                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO ACTUAL                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCredit  = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorDebit   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa account.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	appName string
	printer *message.Printer
}

// NewMarotoStatementGenerator construye el generador. Los montos se formatean en pt-BR.
func NewMarotoStatementGenerator(appName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{
		appName: appName,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

var _ account.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, doc *account.StatementDocument) ([]byte, error) {
	if doc == nil || doc.Customer == nil {
		return nil, fmt.Errorf("pdf: documento sin cliente")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de conta", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(holderRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(doc.Operations) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma operação no período.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, op := range doc.Operations {
		m.AddRows(g.operationRow(op))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.balanceRow(doc.Balance))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) headerRow(doc *account.StatementDocument) core.Row {
	period := "Extrato completo"
	if doc.Day != nil {
		period = "Movimentações de " + doc.Day.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("EXTRATO DE CONTA", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Emitido em "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func holderRow(c *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF: %s   |   Conta: %s", c.CPF, c.ID), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 3, align.Left),
		h("Descrição", 5, align.Left),
		h("Tipo", 1, align.Center),
		h("Valor (R$)", 3, align.Right),
	)
}

func (g *MarotoStatementGenerator) operationRow(op entity.Operation) core.Row {
	kind, color, sign := "C", colorCredit, ""
	if op.Type == entity.OperationTypeDebit {
		kind, color, sign = "D", colorDebit, "-"
	}
	desc := op.Description
	if desc == "" {
		if op.Type == entity.OperationTypeDebit {
			desc = "Saque"
		} else {
			desc = "Depósito"
		}
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(op.CreatedAt.Format("02/01/2006 15:04:05"),
			props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(5).Add(text.New(desc,
			props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(kind,
			props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
		col.New(3).Add(text.New(sign+g.formatMoney(op.Amount),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
	)
}

func (g *MarotoStatementGenerator) balanceRow(balance decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("SALDO ATUAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("R$ "+g.formatMoney(balance), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con separadores pt-BR y dos decimales. Ej: 1234.5 → "1.234,50"
func (g *MarotoStatementGenerator) formatMoney(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
