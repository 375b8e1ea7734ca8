package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured log line per request after the
// handler chain finishes.  4xx/5xx responses log at error level so
// rejected admissions and store failures stand out in aggregation.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry := logrus.WithFields(logrus.Fields{
				"method":    c.Request().Method,
				"path":      c.Request().URL.Path,
				"status":    c.Response().Status,
				"duration":  time.Since(start),
				"client_ip": c.RealIP(),
			})
			if c.Response().Status >= 400 {
				entry.Error("request failed")
			} else {
				entry.Info("request processed")
			}
			return nil
		}
	}
}
