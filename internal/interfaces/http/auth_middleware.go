package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finapi/internal/application/auth"
	"github.com/jhoicas/finapi/internal/application/dto"
	"github.com/jhoicas/finapi/internal/domain"
)

// HeaderCPF header con el identificador del titular.
const HeaderCPF = "cpf"

// Locals keys para el titular autenticado.
const (
	LocalCPF        = "cpf"
	LocalCustomerID = "customer_id"
)

// CustomerAuthMiddleware lee el CPF del header, lo valida contra el Authenticator
// y deja CPF e ID de la cuenta en c.Locals.
func CustomerAuthMiddleware(authn auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cpf := c.Get(HeaderCPF)
		if cpf == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CPF", Message: "header cpf requerido"})
		}
		customer, err := authn.Authenticate(c.UserContext(), cpf)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
			}
			return respondError(c, err)
		}
		c.Locals(LocalCPF, customer.CPF)
		c.Locals(LocalCustomerID, customer.ID)
		return c.Next()
	}
}

// GetCPF devuelve el CPF autenticado (después del middleware).
func GetCPF(c *fiber.Ctx) string {
	v := c.Locals(LocalCPF)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCustomerID devuelve el ID de la cuenta autenticada (después del middleware).
func GetCustomerID(c *fiber.Ctx) string {
	v := c.Locals(LocalCustomerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
