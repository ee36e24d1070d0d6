package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eskrenkovic/matchday/internal/modules/core"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"
)

type baseCtxKey struct{}

func Test_Router_Keeps_Url_Params_Under_Base_Context(t *testing.T) {
	// Arrange
	baseCtx := context.WithValue(context.Background(), baseCtxKey{}, "base")

	r := router{
		mux: chi.NewRouter(),
		middleware: []httpMiddleware{
			baseContextMiddleware(baseCtx),
			requestIDMiddleware,
			core.CorrelationIDHTTPMiddleware,
		},
	}

	var id, base string
	r.register("GET /game-sessions/{id}", func(w http.ResponseWriter, req *http.Request) {
		id = chi.URLParam(req, "id")
		base, _ = req.Context().Value(baseCtxKey{}).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()

	// Act
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/game-sessions/abc", nil))

	// Assert
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "abc", id)
	require.Equal(t, "base", base)
	require.NotEmpty(t, rec.Header().Get(core.CorrelationIDHeader))
}

func Test_Router_Applies_Route_Middleware(t *testing.T) {
	// Arrange
	r := router{mux: chi.NewRouter()}
	r.register("PUT /game-sessions/{id}/actions/start", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, core.PlayerIdentityMiddleware)

	rec := httptest.NewRecorder()

	// Act
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/game-sessions/abc/actions/start", nil))

	// Assert
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Router_Rejects_Malformed_Pattern(t *testing.T) {
	// Arrange
	r := router{mux: chi.NewRouter()}

	// Assert
	require.Panics(t, func() {
		r.register("/game-sessions", func(http.ResponseWriter, *http.Request) {})
	})
}
