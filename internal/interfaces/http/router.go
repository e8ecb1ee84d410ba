package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/finapi/docs" // registra la especificación OpenAPI en swag
	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/auth"
	"github.com/jhoicas/finapi/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	AccountUC     *account.AccountUseCase
	ExportUC      *account.ExportUseCase
	Authenticator auth.Authenticator
	Location      *time.Location
	Metrics       *Metrics // nil = sin /metrics
	DocsEnabled   bool
	DocsFilePath  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	if deps.DocsEnabled {
		app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
		// Swagger UI: http://localhost:<port>/docs (solo si el archivo existe; swagger.New falla sin él)
		if _, err := os.Stat(deps.DocsFilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.DocsFilePath,
				Path:     "docs",
				Title:    deps.AppName + " API",
			}))
		}
	}

	api := app.Group("/api")
	accountHandler := NewAccountHandler(deps.AccountUC, deps.Metrics)
	statementHandler := NewStatementHandler(deps.AccountUC, deps.ExportUC, deps.Location)

	// Apertura (público)
	api.Post("/account", accountHandler.Create)

	// Rutas que requieren header cpf de una cuenta activa
	requireCustomer := CustomerAuthMiddleware(deps.Authenticator)

	api.Get("/account", requireCustomer, accountHandler.Get)
	api.Put("/account", requireCustomer, accountHandler.Update)
	api.Delete("/account", requireCustomer, accountHandler.Delete)

	api.Post("/deposit", requireCustomer, accountHandler.Deposit)
	api.Post("/withdraw", requireCustomer, accountHandler.Withdraw)
	api.Get("/balance", requireCustomer, accountHandler.Balance)

	statement := api.Group("/statement")
	statement.Get("/", requireCustomer, statementHandler.List)
	statement.Get("/date", requireCustomer, statementHandler.ByDate)
	statement.Get("/pdf", requireCustomer, statementHandler.DownloadPDF)
	statement.Get("/ofx", requireCustomer, statementHandler.DownloadOFX)
}
