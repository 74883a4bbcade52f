package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/pkg/logger"
)

// RequestLogger registra con campos estructurados las peticiones que terminan
// en error. Las respuestas exitosas no generan ruido: el kardex asienta miles
// de movimientos al día y el log es para diagnóstico, no para auditoría (esa
// es el propio kardex).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			log.Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("petición fallida")
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusBadRequest {
			ev := log.Warn()
			if status >= fiber.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("petición rechazada")
		}
		return nil
	}
}
