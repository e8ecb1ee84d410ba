package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/dto"
	"github.com/jhoicas/finapi/internal/domain"
)

// stubRenderer captura el documento recibido y devuelve bytes fijos.
type stubRenderer struct {
	got *account.StatementDocument
	err error
}

func (s *stubRenderer) GenerateStatementPDF(_ context.Context, doc *account.StatementDocument) ([]byte, error) {
	s.got = doc
	return []byte("%PDF-stub"), s.err
}

func (s *stubRenderer) ExportStatementOFX(_ context.Context, doc *account.StatementDocument) ([]byte, error) {
	s.got = doc
	return []byte("<OFX/>"), s.err
}

func TestDownloadStatementPDF_Completo(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}
	uc, repo := newUseCase(account.WithClock(clock.Now))
	ctx := context.Background()
	opened := openAccount(t, uc)
	_, err := uc.Deposit(ctx, testCPF, dto.DepositRequest{Amount: amount("100")})
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)
	_, err = uc.Withdraw(ctx, testCPF, dto.WithdrawRequest{Amount: amount("40")})
	require.NoError(t, err)

	stub := &stubRenderer{}
	export := account.NewExportUseCase(repo, stub, stub)

	body, name, err := export.DownloadStatementPDF(ctx, testCPF, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(body))
	assert.Equal(t, "extrato_"+opened.ID[:8]+".pdf", name)

	require.NotNil(t, stub.got)
	assert.Len(t, stub.got.Operations, 2)
	assert.True(t, stub.got.Balance.Equal(amount("60")))
	assert.Nil(t, stub.got.Day)
	assert.Equal(t, "Maria Silva", stub.got.Customer.Name)
}

func TestDownloadStatementOFX_PorDia(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}
	uc, repo := newUseCase(account.WithClock(clock.Now))
	ctx := context.Background()
	openAccount(t, uc)
	_, err := uc.Deposit(ctx, testCPF, dto.DepositRequest{Amount: amount("100")})
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)
	_, err = uc.Withdraw(ctx, testCPF, dto.WithdrawRequest{Amount: amount("40")})
	require.NoError(t, err)

	stub := &stubRenderer{}
	export := account.NewExportUseCase(repo, stub, stub)

	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	_, name, err := export.DownloadStatementOFX(ctx, testCPF, &day)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_2024-05-03.ofx"), name)

	require.Len(t, stub.got.Operations, 1, "solo las operaciones del día")
	// El saldo informado es el saldo actual, no el del día.
	assert.True(t, stub.got.Balance.Equal(amount("60")))
}

func TestDownloadStatement_Errores(t *testing.T) {
	uc, repo := newUseCase()
	openAccount(t, uc)

	stub := &stubRenderer{err: errors.New("render falló")}
	export := account.NewExportUseCase(repo, stub, stub)

	_, _, err := export.DownloadStatementPDF(context.Background(), "000", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = export.DownloadStatementPDF(context.Background(), testCPF, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render falló")

	_, _, err = export.DownloadStatementOFX(context.Background(), testCPF, nil)
	require.Error(t, err)
}
