package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, headerID string) (*httptest.ResponseRecorder, string) {
		t.Helper()
		var ctxID string
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = requestid.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if headerID != "" {
			req.Header.Set(requestid.Header, headerID)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec, ctxID
	}

	t.Run("generates id when absent", func(t *testing.T) {
		t.Parallel()
		rec, ctxID := serve(t, "")
		assert.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid client id", func(t *testing.T) {
		t.Parallel()
		rec, ctxID := serve(t, "req-123_abc")
		assert.Equal(t, "req-123_abc", ctxID)
		assert.Equal(t, "req-123_abc", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid client id", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{
			"has spaces",
			"slash/id",
			"<script>alert(1)</script>",
		} {
			rec, ctxID := serve(t, bad)
			assert.NotEqual(t, bad, ctxID)
			assert.NotEqual(t, bad, rec.Header().Get(requestid.Header))
		}
	})
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithContext(context.Background(), "test-id")
	assert.Equal(t, "test-id", requestid.FromContext(ctx))
	assert.Empty(t, requestid.FromContext(context.Background()))
}
