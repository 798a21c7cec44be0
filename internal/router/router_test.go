package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/noorjahan04/City-Backend/internal/config"
	"github.com/noorjahan04/City-Backend/internal/handler"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{JWTSecret: "test-secret"}
	Register(e, cfg,
		handler.NewAuthHandler(nil),
		handler.NewProfileHandler(nil),
		handler.NewCategoryHandler(nil),
		handler.NewComplaintHandler(nil),
		handler.NewEmployeeHandler(nil),
		handler.NewAdminHandler(nil, nil),
		handler.NewTicketHandler(nil),
		handler.NewReviewHandler(nil),
		handler.NewChatHandler(nil),
	)
	return e
}

func TestRegister_Healthz(t *testing.T) {
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRegister_RequestID(t *testing.T) {
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// One request ID per response, assigned by the router's middleware chain.
	ids := rec.Header().Values(echo.HeaderXRequestID)
	assert.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
}

func TestRegister_SecuredRoutesRejectAnonymous(t *testing.T) {
	e := newTestEcho()

	for _, path := range []string{"/api/profile", "/api/complaints", "/api/tickets"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
