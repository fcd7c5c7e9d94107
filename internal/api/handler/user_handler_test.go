package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

type stubUserService struct {
	profile *ports.Profile
	err     error
	lastRUN string
}

func (s *stubUserService) GetCurrentProfile(_ context.Context, run string) (*ports.Profile, error) {
	s.lastRUN = run
	return s.profile, s.err
}

func (s *stubUserService) GetProfile(_ context.Context, run string) (*ports.Profile, error) {
	s.lastRUN = run
	return s.profile, s.err
}

func testProfile() *ports.Profile {
	return &ports.Profile{
		RUN:              "12345678K",
		Name:             "Alice",
		Surname:          "Rojas",
		Email:            "alice@duoc.cl",
		Role:             domain.RoleCustomer,
		Region:           "Metropolitana",
		Commune:          "Santiago",
		LifetimeDiscount: true,
	}
}

func TestUserHandler_Me_OK(t *testing.T) {
	svc := &stubUserService{profile: testProfile()}
	h := NewUserHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("run", "12345678K")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastRUN != "12345678K" {
		t.Fatalf("run not taken from context: %q", svc.lastRUN)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["run"] != "12345678K" || resp["correo"] != "alice@duoc.cl" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if resp["descuentoVitalicio"] != true {
		t.Fatalf("descuentoVitalicio missing or false: %s", rec.Body.String())
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("credential material leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_Get_PassesPathParam(t *testing.T) {
	svc := &stubUserService{profile: testProfile()}
	h := NewUserHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/12.345.678-k", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("run")
	c.SetParamValues("12.345.678-k")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastRUN != "12.345.678-k" {
		t.Fatalf("raw path param not passed to service: %q", svc.lastRUN)
	}
}

func TestUserHandler_Get_NotFoundPropagates(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/99999999K", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("run")
	c.SetParamValues("99999999K")

	if err := h.Get(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}
