package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest body para POST /api/account.
type CreateAccountRequest struct {
	CPF  string `json:"cpf" validate:"required"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateAccountRequest body para PUT /api/account (solo el nombre es editable).
type UpdateAccountRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// DepositRequest body para POST /api/deposit.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// WithdrawRequest body para POST /api/withdraw.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// OperationResponse asiento del extracto.
type OperationResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // credit | debit
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AccountResponse cuenta completa: datos del titular, saldo y extracto.
type AccountResponse struct {
	ID        string              `json:"id"`
	CPF       string              `json:"cpf"`
	Name      string              `json:"name"`
	Balance   decimal.Decimal     `json:"balance"`
	Statement []OperationResponse `json:"statement"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// BalanceResponse respuesta de GET /api/balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
