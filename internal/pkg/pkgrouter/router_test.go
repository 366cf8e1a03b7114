package pkgrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
)

type staticGenerator struct {
	value string
	calls int
}

func (g *staticGenerator) Generate() string {
	g.calls++
	return g.value
}

type pagedResponse struct {
	Items []string `json:"items"`
}

func (pagedResponse) StatusCode() int { return http.StatusAccepted }

func (pagedResponse) Message() string { return "accepted" }

func (pagedResponse) Meta() map[string]any { return map[string]any{"total": 2} }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestChainOrder(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("mw1"), mw("mw2"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "http://example.com", nil))

	if !reflect.DeepEqual(order, []string{"mw1", "mw2", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestNormalizeRequestID(t *testing.T) {
	if got := normalizeRequestID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeRequestID("a\nb"); got != "" {
		t.Fatalf("expected empty for header injection, got %q", got)
	}
	if got := normalizeRequestID(strings.Repeat("a", 200)); len(got) != maxRequestIDLen {
		t.Fatalf("expected length %d, got %d", maxRequestIDLen, len(got))
	}
}

func TestMiddlewareRequestID(t *testing.T) {
	gen := &staticGenerator{value: "generated"}
	var seen string
	h := middlewareRequestID(gen)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pkglog.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "from-proxy")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "from-proxy" || rec.Header().Get(HeaderRequestID) != "from-proxy" {
		t.Fatalf("expected incoming id to be kept, got %q", seen)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called when the header is present")
	}

	rec = serve(t, h, http.MethodGet, "/")
	if seen != "generated" || rec.Header().Get(HeaderRequestID) != "generated" {
		t.Fatalf("expected generated id, got %q", seen)
	}
}

func TestRouterEnvelope(t *testing.T) {
	r := NewRouter(&staticGenerator{value: "id"}, quietLogger())
	r.GET("/paged", func(ctx context.Context, _ *http.Request) (any, error) {
		return pagedResponse{Items: []string{"a", "b"}}, nil
	})

	rec := serve(t, r, http.MethodGet, "/paged")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var body struct {
		Message string         `json:"message"`
		Data    pagedResponse  `json:"data"`
		Meta    map[string]any `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "accepted" || len(body.Data.Items) != 2 || body.Meta["total"] != float64(2) {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestRouterErrorMapping(t *testing.T) {
	r := NewRouter(nil, quietLogger())
	r.POST("/busy", func(context.Context, *http.Request) (any, error) {
		return nil, pkgerror.NewBusiness("ingestion run already in progress", pkgerror.CodeConflict)
	})
	r.GET("/plain", func(context.Context, *http.Request) (any, error) {
		return nil, errors.New("secret detail")
	})

	rec := serve(t, r, http.MethodPost, "/busy")
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var errBody errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errBody.Message != "ingestion run already in progress" || errBody.Error["code"] != "ERROR_CODE_CONFLICT" {
		t.Fatalf("unexpected error body: %+v", errBody)
	}

	rec = serve(t, r, http.MethodGet, "/plain")
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "secret detail") {
		t.Fatalf("unclassified errors must be opaque, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouterRecoversPanics(t *testing.T) {
	var logs bytes.Buffer
	r := NewRouter(nil, slog.New(slog.NewTextHandler(&logs, nil)))
	r.GET("/boom", func(context.Context, *http.Request) (any, error) {
		panic("boom")
	})

	rec := serve(t, r, http.MethodGet, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "panic on the server") {
		t.Fatalf("expected panic to be logged: %s", logs.String())
	}
}

func TestRouterBuiltins(t *testing.T) {
	r := NewRouter(nil, quietLogger())

	if rec := serve(t, r, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("unexpected health status: %d", rec.Code)
	}
	if rec := serve(t, r, http.MethodGet, "/"); !strings.Contains(rec.Body.String(), pkglog.ServiceName) {
		t.Fatalf("unexpected root body: %s", rec.Body.String())
	}
	if rec := serve(t, r, http.MethodGet, "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected not found status: %d", rec.Code)
	}
	if rec := serve(t, r, http.MethodDelete, "/health"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected method status: %d", rec.Code)
	}
}

func TestInternalFrames(t *testing.T) {
	stack := "goroutine 1 [running]:\n" +
		"main.main()\n" +
		"\t/src/app/internal/ingest/usecase/usecase.go:42 +0x1d\n" +
		"\t/usr/local/go/src/runtime/proc.go:250 +0x1\n"

	got := internalFrames(stack)
	if !reflect.DeepEqual(got, []string{"internal/ingest/usecase/usecase.go:42"}) {
		t.Fatalf("unexpected frames: %#v", got)
	}
}
