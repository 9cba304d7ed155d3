package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/gestorventas/deposito-api/internal/interfaces/http"
	"github.com/gestorventas/deposito-api/pkg/logger"
)

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{method, route, status})
}

func TestRequestLogger_UsaPatronDeRuta(t *testing.T) {
	var buf bytes.Buffer
	obs := &recordingObserver{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWriter(&buf, "info"), obs))
	app.Get("/api/cliente/:idCliente", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cliente/c42", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, obs.obs, 1)
	assert.Equal(t, observation{http.MethodGet, "/api/cliente/:idCliente", fiber.StatusTeapot}, obs.obs[0])
	assert.Contains(t, buf.String(), `"path":"/api/cliente/c42"`)
	assert.Contains(t, buf.String(), `"status":418`)
}

func TestRequestLogger_ErrorDeFiberUsaSuCodigo(t *testing.T) {
	obs := &recordingObserver{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop(), obs))
	app.Get("/x", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, obs.obs, 1)
	assert.Equal(t, fiber.StatusBadGateway, obs.obs[0].status)
}
