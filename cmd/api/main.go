// @title        FinAPI
// @version      1.0
// @description  Cuentas corrientes en memoria: apertura, depósitos, retiros, saldo y extracto (JSON, PDF, OFX).
// @host         localhost:3333
// @BasePath     /
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/auth"
	"github.com/jhoicas/finapi/internal/application/dto"
	"github.com/jhoicas/finapi/internal/infrastructure/memory"
	infraofx "github.com/jhoicas/finapi/internal/infrastructure/ofx"
	infrapdf "github.com/jhoicas/finapi/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/finapi/internal/interfaces/http"
	"github.com/jhoicas/finapi/pkg/config"
	"github.com/jhoicas/finapi/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	// Registro en memoria: el estado vive mientras viva el proceso.
	customerRepo := memory.NewCustomerRepository()
	txRunner := memory.NewTxRunner(customerRepo)

	accountUC := account.NewAccountUseCase(customerRepo, txRunner)
	authenticator := auth.NewCPFAuthenticator(customerRepo)

	// Extracto descargable: PDF (maroto) y OFX 2.x (etree)
	pdfGenerator := infrapdf.NewMarotoStatementGenerator(cfg.App.Name)
	ofxExporter := infraofx.NewStatementExporter(infraofx.Config{
		BankID:   cfg.Ledger.BankID,
		Currency: cfg.Ledger.Currency,
	})
	exportUC := account.NewExportUseCase(customerRepo, pdfGenerator, ofxExporter)

	var metrics *httpRouter.Metrics
	if cfg.Metrics.Enabled {
		metrics = httpRouter.NewMetrics(accountUC.OpenAccounts)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, cpf",
	}))
	app.Use(httpRouter.RequestLogger(log))
	if metrics != nil {
		app.Use(metrics.Middleware())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		AccountUC:     accountUC,
		ExportUC:      exportUC,
		Authenticator: authenticator,
		Location:      loc,
		Metrics:       metrics,
		DocsEnabled:   cfg.Docs.Enabled,
		DocsFilePath:  cfg.Docs.FilePath,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().
		Int("open_accounts", accountUC.OpenAccounts()).
		Msg("aplicación detenida")
}
