package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups everything mounted under /api.
type Handlers struct {
	Records       *RecordHandler
	Files         *FileHandler
	Links         *LinkHandler
	Audit         *AuditHandler
	BusinessAreas *BusinessAreaHandler
	Auth          *AuthHandler
}

// RegisterRoutes installs the request validator and mounts the API. The
// auth routes are public; everything else runs behind protect.
func RegisterRoutes(e *echo.Echo, h Handlers, protect ...echo.MiddlewareFunc) {
	e.Validator = NewRequestValidator()

	h.Auth.Register(e.Group("/api/auth"))

	api := e.Group("/api", protect...)
	h.BusinessAreas.Register(api)
	h.Files.Register(api)
	h.Links.Register(api)
	h.Audit.Register(api)
	h.Records.Register(api)
}
