package feature_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestGate(t *testing.T) {
	t.Parallel()

	storage := feature.NewMemoryStorage()
	storage.SetFlag(feature.FlagDefinition{FlagKey: "new_dashboard", DefaultEnabled: false})
	storage.SetOverride(feature.TenantOverride{TenantID: "tenant-1", FlagKey: "new_dashboard", Enabled: true})

	evaluator, err := feature.NewEvaluator("development", storage)
	require.NoError(t, err)

	resolve := func(r *http.Request) feature.EvaluationContext {
		return feature.EvaluationContext{
			TenantID:    r.Header.Get("X-Tenant-ID"),
			Environment: "development",
		}
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := feature.Gate(evaluator, "new_dashboard", resolve)(next)

	t.Run("EnabledTenantPassesThrough", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("X-Tenant-ID", "tenant-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DisabledTenantGets404", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("X-Tenant-ID", "tenant-2")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingTenantGets401", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
