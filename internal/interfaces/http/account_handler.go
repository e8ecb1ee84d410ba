package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/dto"
	"github.com/jhoicas/finapi/internal/domain/entity"
)

// AccountHandler maneja apertura, consulta, renombre y cierre de cuentas, y los movimientos.
type AccountHandler struct {
	uc      *account.AccountUseCase
	metrics *Metrics
}

// NewAccountHandler construye el handler. metrics puede ser nil.
func NewAccountHandler(uc *account.AccountUseCase, metrics *Metrics) *AccountHandler {
	return &AccountHandler{uc: uc, metrics: metrics}
}

// Create godoc
// @Summary      Abrir cuenta
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "cpf y name"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/account [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Consultar cuenta
// @Tags         account
// @Produce      json
// @Param        cpf  header  string  true  "CPF del titular"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCPF(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar nombre del titular
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        cpf   header  string                    true  "CPF del titular"
// @Param        body  body    dto.UpdateAccountRequest  true  "name"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/account [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Rename(c.UserContext(), GetCPF(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Cerrar cuenta (irreversible)
// @Tags         account
// @Param        cpf  header  string  true  "CPF del titular"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Close(c.UserContext(), GetCPF(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deposit godoc
// @Summary      Depositar
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        cpf   header  string              true  "CPF del titular"
// @Param        body  body    dto.DepositRequest  true  "amount (> 0) y description opcional"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deposit [post]
func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	var in dto.DepositRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Deposit(c.UserContext(), GetCPF(c), in)
	h.metrics.RecordLedgerOperation(entity.OperationTypeCredit, ledgerResult(err))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Withdraw godoc
// @Summary      Retirar
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        cpf   header  string               true  "CPF del titular"
// @Param        body  body    dto.WithdrawRequest  true  "amount (> 0)"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdraw [post]
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Withdraw(c.UserContext(), GetCPF(c), in)
	h.metrics.RecordLedgerOperation(entity.OperationTypeDebit, ledgerResult(err))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Balance godoc
// @Summary      Saldo actual
// @Tags         ledger
// @Produce      json
// @Param        cpf  header  string  true  "CPF del titular"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/balance [get]
func (h *AccountHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), GetCPF(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
