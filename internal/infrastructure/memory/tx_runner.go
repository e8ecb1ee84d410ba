package memory

import (
	"context"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/domain"
	"github.com/jhoicas/finapi/internal/domain/entity"
)

// Ensure TxRunner implements account.TxRunner.
var _ account.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el bloqueo exclusivo de una cuenta del registro.
type TxRunner struct {
	repo *CustomerRepository
}

// NewTxRunner construye el runner sobre el registro.
func NewTxRunner(repo *CustomerRepository) *TxRunner {
	return &TxRunner{repo: repo}
}

// Run bloquea la cuenta, ejecuta fn sobre el registro vivo y libera el bloqueo.
// Si fn falla, el extracto se restaura a su longitud previa (fn solo agrega al final).
func (t *TxRunner) Run(ctx context.Context, cpf string, fn func(customer *entity.Customer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := t.repo.lookup(cpf)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrNotFound
	}

	prevLen := len(s.customer.Statement)
	prevName, prevUpdated := s.customer.Name, s.customer.UpdatedAt
	if err := fn(s.customer); err != nil {
		s.customer.Statement = s.customer.Statement[:prevLen]
		s.customer.Name, s.customer.UpdatedAt = prevName, prevUpdated
		return err
	}
	return nil
}
