package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finapi/internal/application/dto"
	"github.com/jhoicas/finapi/internal/domain"
	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/domain/ledger"
	"github.com/jhoicas/finapi/internal/domain/repository"
)

// AccountUseCase casos de uso de la cuenta: apertura, consulta, renombre, cierre,
// depósitos, retiros, extracto y saldo.
type AccountUseCase struct {
	repo     repository.CustomerRepository
	txRunner TxRunner
	now      func() time.Time
}

// Option configura el caso de uso.
type Option func(*AccountUseCase)

// WithClock reemplaza el reloj del servidor (usado para sellar CreatedAt).
func WithClock(now func() time.Time) Option {
	return func(uc *AccountUseCase) { uc.now = now }
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.CustomerRepository, txRunner TxRunner, opts ...Option) *AccountUseCase {
	uc := &AccountUseCase{repo: repo, txRunner: txRunner, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Open abre una cuenta nueva con extracto vacío. Retorna domain.ErrDuplicateCustomer si el CPF ya existe.
func (uc *AccountUseCase) Open(_ context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.CPF == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.repo.Exists(in.CPF) {
		return nil, domain.ErrDuplicateCustomer
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CPF:       in.CPF,
		Name:      in.Name,
		Statement: entity.Statement{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	// El repositorio vuelve a verificar el CPF de forma atómica (alta concurrente).
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toAccountResponse(customer, decimal.Zero), nil
}

// Get devuelve la cuenta completa con saldo y extracto.
func (uc *AccountUseCase) Get(_ context.Context, cpf string) (*dto.AccountResponse, error) {
	customer, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.Balance(customer.Statement)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(customer, balance), nil
}

// Rename cambia el nombre del titular. El CPF no es editable.
func (uc *AccountUseCase) Rename(ctx context.Context, cpf string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateName(cpf, in.Name); err != nil {
		return nil, err
	}
	return uc.Get(ctx, cpf)
}

// Close elimina la cuenta y todo su historial. Una nueva apertura con el mismo CPF genera otro ID.
func (uc *AccountUseCase) Close(_ context.Context, cpf string) error {
	return uc.repo.Delete(cpf)
}

// Deposit agrega un crédito al extracto.
func (uc *AccountUseCase) Deposit(ctx context.Context, cpf string, in dto.DepositRequest) (*dto.OperationResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var op entity.Operation
	err := uc.txRunner.Run(ctx, cpf, func(customer *entity.Customer) error {
		now := uc.now()
		op = entity.Operation{
			ID:          uuid.New().String(),
			Type:        entity.OperationTypeCredit,
			Amount:      in.Amount,
			Description: in.Description,
			CreatedAt:   now,
		}
		if err := customer.Statement.Append(op); err != nil {
			return err
		}
		customer.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOperationResponse(op), nil
}

// Withdraw agrega un débito si el saldo alcanza. La verificación de saldo y el asiento
// se hacen bajo el mismo bloqueo de cuenta, así dos retiros concurrentes no sobregiran.
func (uc *AccountUseCase) Withdraw(ctx context.Context, cpf string, in dto.WithdrawRequest) (*dto.OperationResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var op entity.Operation
	err := uc.txRunner.Run(ctx, cpf, func(customer *entity.Customer) error {
		balance, err := ledger.Balance(customer.Statement)
		if err != nil {
			return err
		}
		if balance.LessThan(in.Amount) {
			return domain.ErrInsufficientFunds
		}
		now := uc.now()
		op = entity.Operation{
			ID:        uuid.New().String(),
			Type:      entity.OperationTypeDebit,
			Amount:    in.Amount,
			CreatedAt: now,
		}
		if err := customer.Statement.Append(op); err != nil {
			return err
		}
		customer.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOperationResponse(op), nil
}

// Statement devuelve el extracto completo en orden de inserción.
func (uc *AccountUseCase) Statement(_ context.Context, cpf string) ([]dto.OperationResponse, error) {
	customer, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	return toOperationResponses(customer.Statement.All()), nil
}

// StatementByDate devuelve las operaciones del día calendario de day (zona horaria de day).
func (uc *AccountUseCase) StatementByDate(_ context.Context, cpf string, day time.Time) ([]dto.OperationResponse, error) {
	customer, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	return toOperationResponses(customer.Statement.FilterByDate(day)), nil
}

// Balance devuelve el saldo actual.
func (uc *AccountUseCase) Balance(_ context.Context, cpf string) (*dto.BalanceResponse, error) {
	customer, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.Balance(customer.Statement)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{Balance: balance}, nil
}

// OpenAccounts cantidad de cuentas activas.
func (uc *AccountUseCase) OpenAccounts() int {
	return uc.repo.Count()
}

func toAccountResponse(c *entity.Customer, balance decimal.Decimal) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        c.ID,
		CPF:       c.CPF,
		Name:      c.Name,
		Balance:   balance,
		Statement: toOperationResponses(c.Statement.All()),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toOperationResponse(op entity.Operation) *dto.OperationResponse {
	return &dto.OperationResponse{
		ID:          op.ID,
		Type:        op.Type,
		Amount:      op.Amount,
		Description: op.Description,
		CreatedAt:   op.CreatedAt,
	}
}

func toOperationResponses(ops []entity.Operation) []dto.OperationResponse {
	out := make([]dto.OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, *toOperationResponse(op))
	}
	return out
}
