package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	apphttp "github.com/gestorventas/deposito-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de los use cases
// ──────────────────────────────────────────────────────────────────────────────

type stubAuth struct{ resetErr error }

func (s *stubAuth) Login(context.Context, dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, domain.ErrUnauthorized
}
func (s *stubAuth) Refresh(context.Context, dto.RefreshRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r"}, nil
}
func (s *stubAuth) ForgotPassword(context.Context, dto.ForgotPasswordRequest) error { return nil }
func (s *stubAuth) ResetPassword(context.Context, dto.ResetPasswordRequest) error {
	return s.resetErr
}

type stubVendors struct {
	existing map[string]bool
	checkErr error
}

func (s *stubVendors) Get(_ context.Context, id string) (*dto.VendorResponse, error) {
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	if !s.existing[id] {
		return nil, nil
	}
	return &dto.VendorResponse{ID: id, Name: "Vendedor " + id}, nil
}
func (s *stubVendors) Create(_ context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	return &dto.VendorResponse{ID: "nuevo", Name: in.Name, Email: in.Email}, nil
}
func (s *stubVendors) List(context.Context) ([]dto.VendorResponse, error) {
	return []dto.VendorResponse{}, nil
}
func (s *stubVendors) Update(_ context.Context, id string, _ dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	return &dto.VendorResponse{ID: id}, nil
}
func (s *stubVendors) Delete(context.Context, string) error { return nil }

type stubClients struct{ last repository.Scope }

func (s *stubClients) Create(_ context.Context, vendorID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	s.last = repository.Scope{VendorID: vendorID}
	return &dto.ClientResponse{ID: "c1", Name: in.Name, VendorID: vendorID}, nil
}
func (s *stubClients) Get(_ context.Context, scope repository.Scope) (*dto.ClientResponse, error) {
	s.last = scope
	if scope.ClientID == "fantasma" {
		return nil, nil
	}
	return &dto.ClientResponse{ID: scope.ClientID, VendorID: scope.VendorID}, nil
}
func (s *stubClients) List(_ context.Context, scope repository.Scope) ([]dto.ClientResponse, error) {
	s.last = scope
	return []dto.ClientResponse{}, nil
}
func (s *stubClients) Update(_ context.Context, scope repository.Scope, _ dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	s.last = scope
	return &dto.ClientResponse{ID: scope.ClientID}, nil
}
func (s *stubClients) Delete(_ context.Context, scope repository.Scope) error {
	s.last = scope
	return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, scope.ClientID)
}

type stubProducts struct{ listErr error }

func (s *stubProducts) Create(_ context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return &dto.ProductResponse{ID: "p1", Description: in.Description, Price: in.Price, Category: "OTROS"}, nil
}
func (s *stubProducts) Get(context.Context, string) (*dto.ProductResponse, error) { return nil, nil }
func (s *stubProducts) List(context.Context, string) ([]dto.ProductResponse, error) {
	return []dto.ProductResponse{}, s.listErr
}
func (s *stubProducts) Update(context.Context, string, dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	return nil, nil
}
func (s *stubProducts) Delete(context.Context, string) error {
	return fmt.Errorf("%w: producto referenciado por líneas", domain.ErrConflict)
}

type stubOrders struct {
	last     repository.Scope
	closeErr error
	pdf      []byte
}

func (s *stubOrders) Create(_ context.Context, vendorID, clientID string) (*dto.OrderResponse, error) {
	s.last = repository.Scope{VendorID: vendorID, ClientID: clientID}
	return &dto.OrderResponse{ID: "o1", ClientID: clientID, VendorID: vendorID, LineIDs: []string{}}, nil
}
func (s *stubOrders) Get(_ context.Context, scope repository.Scope) (*dto.OrderResponse, error) {
	s.last = scope
	return nil, nil
}
func (s *stubOrders) List(_ context.Context, scope repository.Scope) ([]dto.OrderResponse, error) {
	s.last = scope
	return []dto.OrderResponse{}, nil
}
func (s *stubOrders) Update(_ context.Context, scope repository.Scope, _ dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	s.last = scope
	return nil, domain.ErrOrderFinalized
}
func (s *stubOrders) Delete(_ context.Context, scope repository.Scope) error {
	s.last = scope
	return nil
}
func (s *stubOrders) Close(_ context.Context, scope repository.Scope) (*dto.OrderResponse, error) {
	s.last = scope
	if s.closeErr != nil {
		return nil, s.closeErr
	}
	return &dto.OrderResponse{ID: scope.OrderID, Finalized: true, LineIDs: []string{}}, nil
}
func (s *stubOrders) Report(_ context.Context, scope repository.Scope) ([]byte, string, error) {
	s.last = scope
	if s.pdf == nil {
		return nil, "", domain.ErrOrderNotFinalized
	}
	return s.pdf, "pedido_" + scope.OrderID + ".pdf", nil
}

type stubLines struct {
	last  repository.Scope
	added dto.AddOrderLineRequest
}

func (s *stubLines) Add(_ context.Context, scope repository.Scope, in dto.AddOrderLineRequest) (*dto.OrderLineResponse, error) {
	s.last, s.added = scope, in
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	price := decimal.NewFromInt(20).Mul(decimal.NewFromInt(int64(in.Quantity)))
	if in.Price != nil {
		price = *in.Price
	}
	return &dto.OrderLineResponse{ID: "l1", OrderID: scope.OrderID, ProductID: in.ProductID, Quantity: in.Quantity, Price: price}, nil
}
func (s *stubLines) Get(_ context.Context, scope repository.Scope) (*dto.OrderLineResponse, error) {
	s.last = scope
	return nil, nil
}
func (s *stubLines) List(_ context.Context, scope repository.Scope) ([]dto.OrderLineResponse, error) {
	s.last = scope
	return []dto.OrderLineResponse{}, nil
}
func (s *stubLines) Update(_ context.Context, scope repository.Scope, _ dto.UpdateOrderLineRequest) (*dto.OrderLineResponse, error) {
	s.last = scope
	return &dto.OrderLineResponse{ID: scope.LineID}, nil
}
func (s *stubLines) Delete(_ context.Context, scope repository.Scope) error {
	s.last = scope
	return nil
}

type stubStats struct{}

func (stubStats) Global(context.Context) (dto.YearlyStats, error) {
	return dto.YearlyStats{{Year: "2024", Total: 10}, {Year: "2025", Total: 60}}, nil
}
func (stubStats) ByVendor(_ context.Context, vendorID string) (dto.YearlyStats, error) {
	if vendorID == "fantasma" {
		return nil, nil
	}
	return dto.YearlyStats{}, nil
}
func (stubStats) ByClient(_ context.Context, scope repository.Scope) (dto.YearlyStats, error) {
	return dto.YearlyStats{{Year: "2025", Total: 60}}, nil
}
func (stubStats) ClientTotals(context.Context, string) ([]dto.ClientTotalResponse, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID = "admin-1"
	userID  = "user-1"
)

type testAPI struct {
	app     *fiber.App
	vendors *stubVendors
	clients *stubClients
	orders  *stubOrders
	lines   *stubLines
	auth    *stubAuth
}

func newTestAPI() *testAPI {
	api := &testAPI{
		vendors: &stubVendors{existing: map[string]bool{adminID: true, userID: true}},
		clients: &stubClients{},
		orders:  &stubOrders{},
		lines:   &stubLines{},
		auth:    &stubAuth{},
	}
	api.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(api.app, apphttp.RouterDeps{
		AuthUC:    api.auth,
		VendorUC:  api.vendors,
		ClientUC:  api.clients,
		ProductUC: &stubProducts{},
		OrderUC:   api.orders,
		LineUC:    api.lines,
		StatsUC:   stubStats{},
		JWTSecret: testJWTSecret,
	})
	return api
}

func (a *testAPI) do(t *testing.T, method, path, auth, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_AuthPublico(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodPost, "/api/auth/refresh", "", `{"refreshToken":"x"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := api.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.c","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "UNAUTHORIZED")

	resp, _ = api.do(t, http.MethodPost, "/api/auth/forgot-password", "", `{"email":"nadie@b.c"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ResetConCodigoInvalido(t *testing.T) {
	api := newTestAPI()
	api.auth.resetErr = domain.ErrInvalidResetCode

	resp, body := api.do(t, http.MethodPost, "/api/auth/reset-password", "", `{"email":"a@b.c","code":"000000","newPassword":"nueva"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "INVALID_CODE")
}

func TestRouter_BodyInvalido(t *testing.T) {
	api := newTestAPI()
	resp, body := api.do(t, http.MethodPost, "/api/auth/login", "", `{no es json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "INVALID_BODY")
}

func TestRouter_UserNoPuedeCrearVendedores(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodPost, "/api/vendedor", tokenFor(t, userID, "USER"), `{"nombre":"x","email":"x@y.z","password":"p"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/vendedor", tokenFor(t, adminID, "ADMIN", "USER"), `{"nombre":"x","email":"x@y.z","password":"p"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_VendedorBorradoPierdeAcceso(t *testing.T) {
	api := newTestAPI()
	resp, body := api.do(t, http.MethodGet, "/api/vendedor/me", tokenFor(t, "borrado", "USER"), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "UNAUTHORIZED")
}

func TestRouter_FalloAlVerificarVendedor_Retorna503(t *testing.T) {
	api := newTestAPI()
	api.vendors.checkErr = fmt.Errorf("conexión rechazada")
	resp, _ := api.do(t, http.MethodGet, "/api/vendedor/me", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_VendedorMeYOtros(t *testing.T) {
	api := newTestAPI()

	resp, body := api.do(t, http.MethodGet, "/api/vendedor/me", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, userID)

	resp, _ = api.do(t, http.MethodGet, "/api/vendedor/"+adminID, tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un USER no ve a otros vendedores")

	resp, _ = api.do(t, http.MethodGet, "/api/vendedor/"+userID, tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_StatsGlobalOrdenadoPorAño(t *testing.T) {
	api := newTestAPI()
	resp, body := api.do(t, http.MethodGet, "/api/vendedor/stats", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"2024":10,"2025":60}`, body)
	assert.Less(t, strings.Index(body, "2024"), strings.Index(body, "2025"))
}

func TestRouter_StatsVendedorInexistente_404(t *testing.T) {
	api := newTestAPI()
	resp, _ := api.do(t, http.MethodGet, "/api/vendedor/fantasma/stats", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_MisTotalesPorClienteVacio(t *testing.T) {
	api := newTestAPI()
	resp, body := api.do(t, http.MethodGet, "/api/vendedor/me/stats/clientes", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)
}

func TestRouter_RutasPropiasUsanVendedorDelToken(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodGet, "/api/cliente/c1", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, repository.Scope{VendorID: userID, ClientID: "c1"}, api.clients.last)

	resp, _ = api.do(t, http.MethodPost, "/api/cliente", tokenFor(t, userID, "USER"), `{"nombre":"Luis"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, userID, api.clients.last.VendorID)
}

func TestRouter_RutasAnidadasAdminUsanVendedorDeLaRuta(t *testing.T) {
	api := newTestAPI()

	path := "/api/vendedor/v9/cliente/c1/pedido/o1/linea/l1"
	resp, _ := api.do(t, http.MethodPut, path, tokenFor(t, adminID, "ADMIN"), `{"cantidad":2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, repository.Scope{VendorID: "v9", ClientID: "c1", OrderID: "o1", LineID: "l1"}, api.lines.last)

	resp, _ = api.do(t, http.MethodPut, path, tokenFor(t, userID, "USER"), `{"cantidad":2}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_AdminPlanoNoConfundeAdminConIdCliente(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodGet, "/api/cliente/admin/c7", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, repository.Scope{ClientID: "c7"}, api.clients.last)

	resp, _ = api.do(t, http.MethodGet, "/api/cliente/admin/c7", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_ListadosAdminConFiltros(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodGet, "/api/pedido/admin?vendedor=v1&cliente=c1", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, repository.Scope{VendorID: "v1", ClientID: "c1"}, api.orders.last)

	resp, _ = api.do(t, http.MethodGet, "/api/linea/admin?pedido=o3", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, repository.Scope{OrderID: "o3"}, api.lines.last)
}

func TestRouter_LecturaAusente_404(t *testing.T) {
	api := newTestAPI()

	resp, body := api.do(t, http.MethodGet, "/api/cliente/c1/pedido/o1", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")

	resp, _ = api.do(t, http.MethodGet, "/api/cliente/fantasma", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BorradoSinAncla_404(t *testing.T) {
	api := newTestAPI()
	resp, body := api.do(t, http.MethodDelete, "/api/cliente/c1", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "cliente c1")
}

func TestRouter_CerrarDosVeces_409(t *testing.T) {
	api := newTestAPI()

	resp, body := api.do(t, http.MethodPost, "/api/cliente/c1/pedido/o1/cerrar", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.OrderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.True(t, out.Finalized)

	api.orders.closeErr = domain.ErrOrderFinalized
	resp, body = api.do(t, http.MethodPost, "/api/cliente/c1/pedido/o1/cerrar", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "ORDER_FINALIZED")
}

func TestRouter_ModificarPedidoFinalizado_409(t *testing.T) {
	api := newTestAPI()
	fecha := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	resp, _ := api.do(t, http.MethodPut, "/api/cliente/c1/pedido/o1", tokenFor(t, userID, "USER"), `{"fecha":"`+fecha+`"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_InformePDF(t *testing.T) {
	api := newTestAPI()

	resp, body := api.do(t, http.MethodGet, "/api/cliente/c1/pedido/o1/informe", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "ORDER_NOT_FINALIZED")

	api.orders.pdf = []byte("%PDF-1.4 prueba")
	resp, body = api.do(t, http.MethodGet, "/api/cliente/c1/pedido/o1/informe", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="pedido_o1.pdf"`)
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestRouter_AñadirLinea(t *testing.T) {
	api := newTestAPI()

	resp, body := api.do(t, http.MethodPost, "/api/cliente/c1/pedido/o1/linea", tokenFor(t, userID, "USER"), `{"id_producto":"p1","cantidad":3}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.OrderLineResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.True(t, out.Price.Equal(decimal.NewFromInt(60)))
	assert.Nil(t, api.lines.added.Price)
	assert.Equal(t, repository.Scope{VendorID: userID, ClientID: "c1", OrderID: "o1"}, api.lines.last)

	resp, _ = api.do(t, http.MethodPost, "/api/cliente/c1/pedido/o1/linea", tokenFor(t, userID, "USER"), `{"id_producto":"p1","cantidad":2,"precio":15.5}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, api.lines.added.Price)
	assert.True(t, api.lines.added.Price.Equal(decimal.RequireFromString("15.5")))

	resp, body = api.do(t, http.MethodPost, "/api/cliente/c1/pedido/o1/linea", tokenFor(t, userID, "USER"), `{"id_producto":"p1","cantidad":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "VALIDATION")
}

func TestRouter_Productos(t *testing.T) {
	api := newTestAPI()

	resp, _ := api.do(t, http.MethodGet, "/api/producto?categoria=BEBIDAS", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/producto/nada", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/producto", tokenFor(t, userID, "USER"), `{"descripcion":"Agua","precio":1}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := api.do(t, http.MethodDelete, "/api/producto/p1", tokenFor(t, adminID, "ADMIN"), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "CONFLICT")
}

func TestRouter_ErrorInternoNoFiltraDetalle(t *testing.T) {
	api := newTestAPI()
	api.app = fiber.New()
	apphttp.Router(api.app, apphttp.RouterDeps{
		VendorUC:  api.vendors,
		ProductUC: &stubProducts{listErr: fmt.Errorf("pq: relation \"products\" does not exist")},
		StatsUC:   stubStats{},
		JWTSecret: testJWTSecret,
	})

	resp, body := api.do(t, http.MethodGet, "/api/producto", tokenFor(t, userID, "USER"), "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "relation")
}
