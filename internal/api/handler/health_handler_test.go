package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func testServices() map[string]ServiceInfo {
	return map[string]ServiceInfo{
		"auth": {URL: "http://auth-service:3001", Name: "Auth Service", Description: "Authentication and Authorization"},
	}
}

func doGet(t *testing.T, h echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(testServices())

	rec := doGet(t, h.Health, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "api-gateway" {
		t.Fatalf("unexpected body: %v", body)
	}
	for _, key := range []string{"timestamp", "version", "services"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %q in health payload: %v", key, body)
		}
	}
}

func TestHealthHandler_Services(t *testing.T) {
	h := NewHealthHandler(testServices())

	rec := doGet(t, h.Services, "/services")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if _, ok := body["gateway"]; !ok {
		t.Fatalf("registry missing gateway entry: %v", body)
	}
	if _, ok := body["auth"]; !ok {
		t.Fatalf("registry missing auth entry: %v", body)
	}
}
