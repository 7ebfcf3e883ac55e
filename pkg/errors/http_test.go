package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", NotFound("Risk not found"), http.StatusNotFound, "Risk not found"},
		{"invalid", InvalidArgument("Invalid id", fmt.Errorf("strconv")), http.StatusBadRequest, "Invalid id"},
		{"forbidden", Forbidden("no access"), http.StatusForbidden, "no access"},
		{"unauthenticated", Unauthenticated("Not authenticated"), http.StatusUnauthorized, "Not authenticated"},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("Document not found")), http.StatusNotFound, "Document not found"},
		{"internal hides cause", Internal("failed to query", fmt.Errorf("pq: password leaked")), http.StatusInternalServerError, "Internal Server Error"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal Server Error"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := ToHTTPError(tt.err)
			assert.Equal(t, tt.status, he.Code)
			assert.Equal(t, tt.message, he.Message)
		})
	}

	assert.Nil(t, ToHTTPError(nil))
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(NotFound("Process not found"), "lookup failed")
	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.Equal(t, ErrInternal, CodeOf(Wrap(fmt.Errorf("io"), "read")))
	assert.Nil(t, Wrap(nil, "x"))
}

func TestGetCodeMapping(t *testing.T) {
	status, grpcCode := GetCodeMapping(ErrConflict)
	assert.Equal(t, 409, status)
	assert.Equal(t, 6, grpcCode)

	status, grpcCode = GetCodeMapping("SOMETHING_ELSE")
	assert.Equal(t, 500, status)
	assert.Equal(t, 13, grpcCode)
}
