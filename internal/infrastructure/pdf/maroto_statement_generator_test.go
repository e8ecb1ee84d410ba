package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/infrastructure/pdf"
)

func TestGenerateStatementPDF(t *testing.T) {
	at := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	doc := &account.StatementDocument{
		Customer: &entity.Customer{ID: "c0ffee00-0000-0000-0000-000000000001", CPF: "12345678900", Name: "Maria Silva"},
		Operations: []entity.Operation{
			{ID: "op-1", Type: entity.OperationTypeCredit, Amount: decimal.NewFromInt(1500), Description: "salário", CreatedAt: at},
			{ID: "op-2", Type: entity.OperationTypeDebit, Amount: decimal.RequireFromString("30.5"), CreatedAt: at.Add(time.Hour)},
		},
		Balance:     decimal.RequireFromString("1469.5"),
		GeneratedAt: at.Add(2 * time.Hour),
	}

	gen := pdf.NewMarotoStatementGenerator("finapi")
	out, err := gen.GenerateStatementPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateStatementPDF_ExtractoVacio(t *testing.T) {
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	doc := &account.StatementDocument{
		Customer:    &entity.Customer{ID: "c0ffee00", CPF: "12345678900", Name: "Maria Silva"},
		Balance:     decimal.Zero,
		Day:         &day,
		GeneratedAt: day,
	}

	out, err := pdf.NewMarotoStatementGenerator("finapi").GenerateStatementPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateStatementPDF_SinCliente(t *testing.T) {
	_, err := pdf.NewMarotoStatementGenerator("finapi").GenerateStatementPDF(context.Background(), nil)
	assert.Error(t, err)
}
