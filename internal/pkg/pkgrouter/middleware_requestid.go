package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
)

// Generator generates a unique string (used for request IDs).
type Generator interface {
	Generate() string
}

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

func normalizeRequestID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if len(v) > maxRequestIDLen {
		v = v[:maxRequestIDLen]
	}
	return v
}

func middlewareRequestID(ids Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := normalizeRequestID(r.Header.Get(HeaderRequestID))
			if id == "" && ids != nil {
				id = ids.Generate()
			}

			if id != "" {
				w.Header().Set(HeaderRequestID, id)
				r = r.WithContext(pkglog.SetRequestID(r.Context(), id))
			}

			next.ServeHTTP(w, r)
		})
	}
}
