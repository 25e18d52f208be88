package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/sipac-estoque/internal/application/analytics"
	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
	"github.com/jhoicas/sipac-estoque/internal/application/simulator"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/sipac-estoque/internal/interfaces/http"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeRenderer evita generar documentos reales en los tests de rutas.
type fakeRenderer struct{}

func (fakeRenderer) Render(_ context.Context, r *dto.ReportDTO) ([]byte, error) {
	return []byte("linhas=" + string(rune('0'+len(r.Linhas)))), nil
}
func (fakeRenderer) ContentType() string { return "text/plain" }
func (fakeRenderer) Extension() string   { return "txt" }

type testEnv struct {
	app *fiber.App
	uc  *inventory.MutationUseCase
	sim *simulator.Simulator
}

// buildTestApp arma la API completa sobre el adaptador en memoria.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	db := memory.NewDB().WithClock(func() time.Time { return testNow })
	store := inventory.NewStore()
	uc := inventory.NewMutationUseCase(memory.NewTxRunner(db), db.Items(), db.Movements(), store, logger.Nop()).
		WithClock(func() time.Time { return testNow })
	dash := appanalytics.NewDashboardUseCase(store, db.Movements(), appanalytics.FilterDefaults{
		Years:      []int{2023, 2024},
		Categories: []string{"Camisetas", "Calças", "Bonés"},
		PriceMax:   decimal.NewFromInt(1200),
	})
	rep := report.NewUseCase(db.Items(), "SIPAC").WithClock(func() time.Time { return testNow })
	sim := simulator.New(uc, store, time.Hour, logger.Nop())
	t.Cleanup(sim.Stop)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Mutations:   uc,
		DashboardUC: dash,
		ReportUC:    rep,
		PDF:         fakeRenderer{},
		XLSX:        fakeRenderer{},
		Simulator:   sim,
	})
	return &testEnv{app: app, uc: uc, sim: sim}
}

func (e *testEnv) seed(t *testing.T, tag, nome, categoria, preco string, qty int) dto.ItemResponse {
	t.Helper()
	out, err := e.uc.CreateItem(context.Background(), dto.ItemRequest{
		Tag: tag, Nome: nome, Categoria: categoria, Preco: decimal.RequireFromString(preco), Quantidade: qty, Arara: "A1",
	})
	require.NoError(t, err)
	return *out
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
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

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CrearYDuplicado(t *testing.T) {
	env := buildTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/itens", map[string]any{
		"tag": "001", "nome": "Camiseta Básica", "categoria": "Camisetas", "preco": 49.9, "quantidade": 22, "arara": "A1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 22, created.Entrada, "la cantidad de apertura cuenta como entrada")
	assert.True(t, created.Movimentacao)

	resp = doJSON(t, env.app, http.MethodPost, "/api/itens", map[string]any{"tag": "001", "nome": "Otra"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, env.app, http.MethodPost, "/api/itens", map[string]any{"tag": "009"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_ListarPorCategoria(t *testing.T) {
	env := buildTestApp(t)
	env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 3)
	env.seed(t, "002", "Calça Jeans", "Calças", "129.90", 5)

	resp := doJSON(t, env.app, http.MethodGet, "/api/itens", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 2)

	resp = doJSON(t, env.app, http.MethodGet, "/api/itens?categoria=Cal%C3%A7as", nil)
	list := decode[[]dto.ItemResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "002", list[0].Tag)
}

func TestItems_ReemplazarReconcilia(t *testing.T) {
	env := buildTestApp(t)
	it := env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 10)

	resp := doJSON(t, env.app, http.MethodPut, "/api/itens/"+it.ID, map[string]any{
		"tag": "001", "nome": "Camiseta Premium", "categoria": "Camisetas", "preco": "59.90", "quantidade": 7, "arara": "B2",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 7, out.Quantidade)
	assert.Equal(t, 10, out.Entrada)
	assert.Equal(t, 3, out.Saida)
	assert.Equal(t, "Camiseta Premium", out.Nome)

	resp = doJSON(t, env.app, http.MethodPut, "/api/itens/"+it.ID, map[string]any{"tag": "999", "nome": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "el tag es inmutable")

	resp = doJSON(t, env.app, http.MethodPut, "/api/itens/no-existe", map[string]any{"tag": "001", "nome": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestItems_VentaYEliminar(t *testing.T) {
	env := buildTestApp(t)
	it := env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 2)

	resp := doJSON(t, env.app, http.MethodPut, "/api/itens/"+it.ID+"/saida", map[string]any{"qtd": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.SaleResponse{Success: true, NovaQtd: 1}, decode[dto.SaleResponse](t, resp))

	resp = doJSON(t, env.app, http.MethodDelete, "/api/itens/"+it.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SuccessResponse](t, resp).Success)

	resp = doJSON(t, env.app, http.MethodDelete, "/api/itens/"+it.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	// El ledger sobrevive al borrado del item.
	resp = doJSON(t, env.app, http.MethodGet, "/api/movimentos?tag=001", nil)
	assert.Equal(t, 2, decode[dto.MovementListResponse](t, resp).Total)
}

func TestItems_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/itens", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimentos_SaidaYErrores(t *testing.T) {
	env := buildTestApp(t)
	env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 1)

	resp := doJSON(t, env.app, http.MethodPost, "/api/movimentos", dto.MovementRequest{Tag: "001", Tipo: "saida", Qtd: 5})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 0, out.Quantidade, "la cantidad se recorta a cero")
	assert.False(t, out.Movimentacao)

	resp = doJSON(t, env.app, http.MethodPost, "/api/movimentos", dto.MovementRequest{Tag: "001", Tipo: "saida", Qtd: 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_OPERATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, env.app, http.MethodPost, "/api/movimentos", dto.MovementRequest{Tag: "404", Tipo: "entrada", Qtd: 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/movimentos", dto.MovementRequest{Tag: "001", Tipo: "troca", Qtd: 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/movimentos?anos=2024", nil)
	list := decode[dto.MovementListResponse](t, resp)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "entrada", list.Items[0].Tipo)
	assert.Equal(t, "saida", list.Items[1].Tipo)
	assert.Equal(t, 1, list.Items[1].Qtd, "el ledger registra las unidades efectivamente movidas")

	resp = doJSON(t, env.app, http.MethodGet, "/api/movimentos?anos=2023", nil)
	assert.Equal(t, 0, decode[dto.MovementListResponse](t, resp).Total)

	resp = doJSON(t, env.app, http.MethodGet, "/api/movimentos?anos=dos-mil", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_FiltroPorQuery(t *testing.T) {
	env := buildTestApp(t)
	env.seed(t, "001", "Camiseta Básica", "Camisetas", "49.90", 10)
	env.seed(t, "002", "Calça Jeans", "Calças", "129.90", 4)
	env.seed(t, "003", "Camiseta Estampada", "Camisetas", "59.90", 2)

	resp := doJSON(t, env.app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	all := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 16, all.KPIs.TotalPecas)
	assert.Equal(t, 2, all.KPIs.EstoqueBaixo)
	assert.Equal(t, "-valor", all.Filtro.Sort)
	assert.Equal(t, 16, all.Fluxo.Entradas[2], "aperturas de marzo de 2024")

	resp = doJSON(t, env.app, http.MethodGet, "/api/dashboard?categorias=Camisetas&sort=quantidade", nil)
	cam := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 12, cam.KPIs.TotalPecas)
	assert.True(t, cam.KPIs.ValorTotal.Equal(decimal.RequireFromString("618.80")))
	require.Len(t, cam.Tabela, 2)
	assert.Equal(t, "003", cam.Tabela[0].Tag)

	resp = doJSON(t, env.app, http.MethodGet, "/api/dashboard?busca=JEANS", nil)
	assert.Len(t, decode[dto.DashboardDTO](t, resp).Tabela, 1)

	resp = doJSON(t, env.app, http.MethodGet, "/api/dashboard?anos=", nil)
	none := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, make([]int, 12), none.Fluxo.Entradas)

	resp = doJSON(t, env.app, http.MethodGet, "/api/dashboard?precoMax=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/dashboard?sort=-id", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuditoria_SinDivergencias(t *testing.T) {
	env := buildTestApp(t)
	env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 3)
	_, err := env.uc.ApplyDelta(context.Background(), "001", "saida", 1)
	require.NoError(t, err)

	resp := doJSON(t, env.app, http.MethodGet, "/api/auditoria", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.AuditDTO](t, resp)
	assert.Equal(t, 1, out.ItensVerificados)
	assert.Empty(t, out.Divergencias)
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatorio y simulador
// ──────────────────────────────────────────────────────────────────────────────

func TestRelatorio_JSONYExportacion(t *testing.T) {
	env := buildTestApp(t)
	env.seed(t, "001", "Camiseta", "Camisetas", "49.90", 3)
	env.seed(t, "002", "Calça", "Calças", "100", 0)

	resp := doJSON(t, env.app, http.MethodGet, "/api/relatorio", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rep := decode[dto.ReportDTO](t, resp)
	require.Len(t, rep.Linhas, 2)
	assert.Equal(t, 3, rep.Totais.TotalSaldo)
	assert.Equal(t, 0, rep.Linhas[1].Saldo)

	resp = doJSON(t, env.app, http.MethodGet, "/api/relatorio/xlsx?categoria=Camisetas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "relatorio-estoque-2024-03-10_12-00-00.txt")
	assert.Equal(t, "text/plain", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "linhas=1", string(body))
}

func TestSimulador_IniciarYParar(t *testing.T) {
	env := buildTestApp(t)

	resp := doJSON(t, env.app, http.MethodGet, "/api/simulador", nil)
	assert.False(t, decode[dto.SimulatorStatusDTO](t, resp).Ativo)

	resp = doJSON(t, env.app, http.MethodPost, "/api/simulador/iniciar", nil)
	st := decode[dto.SimulatorStatusDTO](t, resp)
	assert.True(t, st.Ativo)
	assert.Equal(t, int64(time.Hour/time.Millisecond), st.IntervaloMs)

	resp = doJSON(t, env.app, http.MethodPost, "/api/simulador/iniciar", nil)
	assert.True(t, decode[dto.SimulatorStatusDTO](t, resp).Ativo, "iniciar dos veces no falla")

	resp = doJSON(t, env.app, http.MethodPost, "/api/simulador/parar", nil)
	assert.False(t, decode[dto.SimulatorStatusDTO](t, resp).Ativo)
}
