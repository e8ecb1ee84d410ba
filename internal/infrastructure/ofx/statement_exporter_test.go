package ofx_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/infrastructure/ofx"
)

func sampleDocument(day *time.Time) *account.StatementDocument {
	at := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	return &account.StatementDocument{
		Customer: &entity.Customer{ID: "c0ffee00-0000-0000-0000-000000000001", CPF: "12345678900", Name: "Maria Silva"},
		Operations: []entity.Operation{
			{ID: "op-1", Type: entity.OperationTypeCredit, Amount: decimal.NewFromInt(100), Description: "salário", CreatedAt: at},
			{ID: "op-2", Type: entity.OperationTypeDebit, Amount: decimal.RequireFromString("30.5"), CreatedAt: at.Add(time.Hour)},
		},
		Balance:     decimal.RequireFromString("69.5"),
		Day:         day,
		GeneratedAt: at.Add(2 * time.Hour),
	}
}

func parse(t *testing.T, body []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body), "el OFX debe ser XML bien formado")
	return doc
}

func TestExportStatementOFX_Estructura(t *testing.T) {
	exp := ofx.NewStatementExporter(ofx.Config{BankID: "0001"})
	body, err := exp.ExportStatementOFX(context.Background(), sampleDocument(nil))
	require.NoError(t, err)

	doc := parse(t, body)
	stmt := doc.FindElement("/OFX/BANKMSGSRSV1/STMTTRNRS/STMTRS")
	require.NotNil(t, stmt)

	assert.Equal(t, "BRL", stmt.FindElement("CURDEF").Text(), "moneda por defecto")
	assert.Equal(t, "0001", stmt.FindElement("BANKACCTFROM/BANKID").Text())
	assert.Equal(t, "c0ffee00-0000-0000-0000-000000000001", stmt.FindElement("BANKACCTFROM/ACCTID").Text())
	assert.Equal(t, "69.50", stmt.FindElement("LEDGERBAL/BALAMT").Text())

	trns := stmt.FindElements("BANKTRANLIST/STMTTRN")
	require.Len(t, trns, 2)

	assert.Equal(t, "CREDIT", trns[0].FindElement("TRNTYPE").Text())
	assert.Equal(t, "100.00", trns[0].FindElement("TRNAMT").Text())
	assert.Equal(t, "op-1", trns[0].FindElement("FITID").Text())
	assert.Equal(t, "salário", trns[0].FindElement("MEMO").Text())

	assert.Equal(t, "DEBIT", trns[1].FindElement("TRNTYPE").Text())
	assert.Equal(t, "-30.50", trns[1].FindElement("TRNAMT").Text(), "los débitos salen con signo negativo")
	assert.Equal(t, "20240502103000[0:UTC]", trns[1].FindElement("DTPOSTED").Text())
}

func TestExportStatementOFX_PeriodoDelDia(t *testing.T) {
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	exp := ofx.NewStatementExporter(ofx.Config{BankID: "0001", Currency: "USD"})
	body, err := exp.ExportStatementOFX(context.Background(), sampleDocument(&day))
	require.NoError(t, err)

	doc := parse(t, body)
	list := doc.FindElement("//BANKTRANLIST")
	require.NotNil(t, list)
	assert.Equal(t, "20240502000000[0:UTC]", list.FindElement("DTSTART").Text())
	assert.Equal(t, "20240502235959[0:UTC]", list.FindElement("DTEND").Text())
	assert.Equal(t, "USD", doc.FindElement("//CURDEF").Text())
}

func TestExportStatementOFX_SinCliente(t *testing.T) {
	exp := ofx.NewStatementExporter(ofx.Config{})
	_, err := exp.ExportStatementOFX(context.Background(), &account.StatementDocument{})
	assert.Error(t, err)
}
