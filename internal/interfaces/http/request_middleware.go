package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/pkg/logger"
)

// httpObserver recibe la duración de cada petición. Lo implementa *metrics.Collectors.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// RequestLogger registra cada petición con zerolog y, si hay observer, alimenta
// el histograma de latencias. Usa el patrón de ruta para no disparar la cardinalidad.
func RequestLogger(log *logger.Logger, obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("vendor_id", GetVendorID(c)).
			Msg("http")

		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, status, elapsed)
		}
		return err
	}
}
