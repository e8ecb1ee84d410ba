package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/dto"
)

// dateLayout formato del query param ?date= (día calendario).
const dateLayout = "2006-01-02"

// StatementHandler maneja las consultas y descargas del extracto.
type StatementHandler struct {
	uc     *account.AccountUseCase
	export *account.ExportUseCase
	loc    *time.Location
}

// NewStatementHandler construye el handler. loc define el calendario con que se interpreta ?date=.
func NewStatementHandler(uc *account.AccountUseCase, export *account.ExportUseCase, loc *time.Location) *StatementHandler {
	if loc == nil {
		loc = time.Local
	}
	return &StatementHandler{uc: uc, export: export, loc: loc}
}

// List godoc
// @Summary      Extracto completo
// @Tags         statement
// @Produce      json
// @Param        cpf  header  string  true  "CPF del titular"
// @Success      200  {array}   dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statement [get]
func (h *StatementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Statement(c.UserContext(), GetCPF(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByDate godoc
// @Summary      Extracto de un día
// @Tags         statement
// @Produce      json
// @Param        cpf   header  string  true  "CPF del titular"
// @Param        date  query   string  true  "Día (YYYY-MM-DD)"
// @Success      200   {array}   dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/statement/date [get]
func (h *StatementHandler) ByDate(c *fiber.Ctx) error {
	raw := c.Query("date")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_DATE", Message: "date es requerido (YYYY-MM-DD)"})
	}
	day, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato: YYYY-MM-DD"})
	}
	out, err := h.uc.StatementByDate(c.UserContext(), GetCPF(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar extracto en PDF
// @Tags         statement
// @Produce      application/pdf
// @Param        cpf   header  string  true   "CPF del titular"
// @Param        date  query   string  false  "Día (YYYY-MM-DD). Vacío = extracto completo."
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statement/pdf [get]
func (h *StatementHandler) DownloadPDF(c *fiber.Ctx) error {
	day, ok := h.optionalDay(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato: YYYY-MM-DD"})
	}
	body, name, err := h.export.DownloadStatementPDF(c.UserContext(), GetCPF(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", name, body)
}

// DownloadOFX godoc
// @Summary      Descargar extracto en OFX
// @Tags         statement
// @Produce      application/x-ofx
// @Param        cpf   header  string  true   "CPF del titular"
// @Param        date  query   string  false  "Día (YYYY-MM-DD). Vacío = extracto completo."
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statement/ofx [get]
func (h *StatementHandler) DownloadOFX(c *fiber.Ctx) error {
	day, ok := h.optionalDay(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato: YYYY-MM-DD"})
	}
	body, name, err := h.export.DownloadStatementOFX(c.UserContext(), GetCPF(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/x-ofx", name, body)
}

// optionalDay: sin ?date= → (nil, true); fecha inválida → (nil, false).
func (h *StatementHandler) optionalDay(c *fiber.Ctx) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	day, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		return nil, false
	}
	return &day, true
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(body)
}
