package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/application/auth"
	"github.com/jhoicas/finapi/internal/infrastructure/memory"
	infraofx "github.com/jhoicas/finapi/internal/infrastructure/ofx"
	infrapdf "github.com/jhoicas/finapi/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/finapi/internal/interfaces/http"
	"github.com/jhoicas/finapi/pkg/logger"
)

const cpf = "12345678900"

// buildApp arma la API completa sobre un registro en memoria, como en cmd/api.
func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := memory.NewCustomerRepository()
	accountUC := account.NewAccountUseCase(repo, memory.NewTxRunner(repo))
	exportUC := account.NewExportUseCase(repo,
		infrapdf.NewMarotoStatementGenerator("finapi"),
		infraofx.NewStatementExporter(infraofx.Config{BankID: "0001"}),
	)
	metrics := apphttp.NewMetrics(accountUC.OpenAccounts)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Use(metrics.Middleware())
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:       "finapi",
		AccountUC:     accountUC,
		ExportUC:      exportUC,
		Authenticator: auth.NewCPFAuthenticator(repo),
		Location:      time.UTC,
		Metrics:       metrics,
		DocsEnabled:   true,
		DocsFilePath:  "./no-existe/swagger.json",
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, cpfHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cpfHeader != "" {
		req.Header.Set(apphttp.HeaderCPF, cpfHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAccount(t *testing.T, app *fiber.App) map[string]any {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/account", "", map[string]string{"cpf": cpf, "name": "Maria Silva"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[map[string]any](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearCuenta(t *testing.T) {
	app := buildApp(t)
	body := createAccount(t, app)

	assert.NotEmpty(t, body["id"])
	assert.Equal(t, cpf, body["cpf"])
	assert.Equal(t, "0", body["balance"])
	assert.Empty(t, body["statement"])

	resp := call(t, app, http.MethodPost, "/api/account", "", map[string]string{"cpf": cpf, "name": "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/account", "", map[string]string{"cpf": "", "name": "Otra"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ConsultarRenombrarCerrar(t *testing.T) {
	app := buildApp(t)
	created := createAccount(t, app)

	resp := call(t, app, http.MethodGet, "/api/account", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, created["id"], got["id"])

	resp = call(t, app, http.MethodPut, "/api/account", cpf, map[string]string{"name": "Maria Costa"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	renamed := decode[map[string]any](t, resp)
	assert.Equal(t, "Maria Costa", renamed["name"])
	assert.Equal(t, cpf, renamed["cpf"])

	resp = call(t, app, http.MethodDelete, "/api/account", cpf, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/account", cpf, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_RutasProtegidasSinCPF(t *testing.T) {
	app := buildApp(t)
	for _, path := range []string{"/api/account", "/api/balance", "/api/statement", "/api/statement/pdf"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_DepositoRetiroSaldo(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)

	resp := call(t, app, http.MethodPost, "/api/deposit", cpf, map[string]any{"amount": "100", "description": "salário"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dep := decode[map[string]any](t, resp)
	assert.Equal(t, "credit", dep["type"])
	assert.Equal(t, "100", dep["amount"])

	resp = call(t, app, http.MethodPost, "/api/withdraw", cpf, map[string]any{"amount": 30})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	wd := decode[map[string]any](t, resp)
	assert.Equal(t, "debit", wd["type"])

	resp = call(t, app, http.MethodGet, "/api/balance", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[map[string]any](t, resp)
	assert.Equal(t, "70", bal["balance"])

	resp = call(t, app, http.MethodGet, "/api/statement", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stmt := decode[[]map[string]any](t, resp)
	require.Len(t, stmt, 2)
	assert.Equal(t, "credit", stmt[0]["type"])
	assert.Equal(t, "debit", stmt[1]["type"])
}

func TestAPI_RetiroSinSaldo(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)

	resp := call(t, app, http.MethodPost, "/api/withdraw", cpf, map[string]any{"amount": "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "INSUFFICIENT_FUNDS")

	resp = call(t, app, http.MethodGet, "/api/statement", cpf, nil)
	assert.Empty(t, decode[[]map[string]any](t, resp))
}

func TestAPI_MontoInvalido(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)

	resp := call(t, app, http.MethodPost, "/api/deposit", cpf, map[string]any{"amount": "-10"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "INVALID_AMOUNT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Extracto
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ExtractoPorFecha(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)
	resp := call(t, app, http.MethodPost, "/api/deposit", cpf, map[string]any{"amount": "10"})
	resp.Body.Close()

	today := time.Now().UTC().Format("2006-01-02")
	resp = call(t, app, http.MethodGet, "/api/statement/date?date="+today, cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = call(t, app, http.MethodGet, "/api/statement/date?date=1999-01-01", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = call(t, app, http.MethodGet, "/api/statement/date?date=ayer", cpf, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/statement/date", cpf, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_DescargasPDFyOFX(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)
	resp := call(t, app, http.MethodPost, "/api/deposit", cpf, map[string]any{"amount": "10"})
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/statement/pdf", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".pdf")
	pdfBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdfBody, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/statement/ofx", cpf, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-ofx", resp.Header.Get(fiber.HeaderContentType))
	ofxBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, 1, strings.Count(string(ofxBody), "<STMTTRN>"))

	resp = call(t, app, http.MethodGet, "/api/statement/ofx?date=2024-13-40", cpf, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud, métricas y documentación
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_HealthMetricsDocs(t *testing.T) {
	app := buildApp(t)
	createAccount(t, app)
	resp := call(t, app, http.MethodPost, "/api/deposit", cpf, map[string]any{"amount": "10"})
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", health["status"])

	resp = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	metrics := string(raw)
	assert.Contains(t, metrics, "finapi_accounts_open 1")
	assert.Contains(t, metrics, `finapi_ledger_operations_total{result="ok",type="credit"} 1`)
	assert.Contains(t, metrics, "finapi_http_requests_total")

	resp = call(t, app, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decode[map[string]any](t, resp)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/deposit")
}
