package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddlewareSetsTraceID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flashcard_sets", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, seen, shared.TraceIDLength*2)

	first := seen
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/flashcard_sets", nil))
	assert.NotEqual(t, first, seen, "each request gets its own trace ID")
}
