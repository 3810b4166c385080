package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"listings-aggregator-api/api/middleware"
	"listings-aggregator-api/core/interfaces"
)

func TestNewAPI(t *testing.T) {
	api, router := NewAPI()

	if api == nil {
		t.Error("NewAPI returned nil API")
	}
	if router == nil {
		t.Error("NewAPI returned nil router")
	}
}

func TestNewAPI_HasCorrectInfo(t *testing.T) {
	api, _ := NewAPI()

	info := api.OpenAPI().Info
	if info.Title != "Listings Aggregator API" {
		t.Errorf("API title = %s, want %s", info.Title, "Listings Aggregator API")
	}
	if info.Version != "1.0.0" {
		t.Errorf("API version = %s, want %s", info.Version, "1.0.0")
	}
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("OpenAPI endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "application/vnd.oai.openapi+json" {
		t.Errorf("OpenAPI content-type = %s, want application/vnd.oai.openapi+json", contentType)
	}
}

type pingOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func registerPing(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.OK = true
		return out, nil
	})
}

func TestAPI_ResponsesHaveNoSchemaLink(t *testing.T) {
	api, router := NewAPI()
	registerPing(api)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); strings.Contains(got, "$schema") || !strings.Contains(got, `"ok":true`) {
		t.Errorf("body = %q, want plain ok object", got)
	}
}

func TestAPIWithMiddleware_RequestIDAndRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	api, router := NewAPIWithMiddleware(APIConfig{
		Logger:      interfaces.NopLogger{},
		RateLimiter: limiter,
	})
	registerPing(api)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(first, req)

	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want %d", first.Code, http.StatusOK)
	}
	if first.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a request ID header")
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(second, req)

	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
}

func TestAPI_ValidationErrorShape(t *testing.T) {
	api, router := NewAPI()
	huma.Register(api, huma.Operation{
		OperationID: "echo",
		Method:      http.MethodPost,
		Path:        "/echo",
	}, func(ctx context.Context, in *struct {
		Body struct {
			N int `json:"n" minimum:"1"`
		}
	}) (*pingOutput, error) {
		return &pingOutput{}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"n":0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
	if body := w.Body.String(); !strings.Contains(body, `"ok":false`) || !strings.Contains(body, `"error":`) {
		t.Errorf("body = %s, want ok:false error shape", body)
	}
}
