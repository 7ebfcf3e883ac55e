package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/middleware/auth"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success    bool                   `json:"success"`
	Data       interface{}            `json:"data,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Pagination *entity.PaginationMeta `json:"pagination,omitempty"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func respondPage(c echo.Context, data interface{}, meta entity.PaginationMeta) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: &meta})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.InvalidArgument("Invalid "+name, err)
	}
	return uint(id), nil
}

func principal(c echo.Context) (*entity.Principal, error) {
	return auth.GetPrincipal(c)
}

func pagination(c echo.Context) (entity.PaginationParams, error) {
	var p entity.PaginationParams
	err := echo.QueryParamsBinder(c).
		Int("page", &p.Page).
		Int("limit", &p.Limit).
		BindError()
	if err != nil {
		return p, apperrors.InvalidArgument("page and limit must be integers", err)
	}
	return p, nil
}
