package auth

import (
	"context"

	"github.com/jhoicas/finapi/internal/domain"
	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/domain/repository"
)

// Authenticator resuelve la identidad de quien hace la petición.
// Es el único punto de autorización: reemplazarlo no toca la lógica del libro mayor.
type Authenticator interface {
	Authenticate(ctx context.Context, cpf string) (*entity.Customer, error)
}

// CPFAuthenticator considera autorizado a quien presenta un CPF registrado.
type CPFAuthenticator struct {
	repo repository.CustomerRepository
}

// NewCPFAuthenticator construye el autenticador sobre el registro de clientes.
func NewCPFAuthenticator(repo repository.CustomerRepository) *CPFAuthenticator {
	return &CPFAuthenticator{repo: repo}
}

// Authenticate devuelve el cliente del CPF o domain.ErrNotFound. CPF vacío → domain.ErrInvalidInput.
func (a *CPFAuthenticator) Authenticate(_ context.Context, cpf string) (*entity.Customer, error) {
	if cpf == "" {
		return nil, domain.ErrInvalidInput
	}
	return a.repo.GetByCPF(cpf)
}

var _ Authenticator = (*CPFAuthenticator)(nil)
