package feature

import (
	"errors"
	"net/http"
)

// ContextResolver extracts the evaluation context from an incoming request,
// typically from authenticated session data or headers.
type ContextResolver func(r *http.Request) EvaluationContext

// Gate returns HTTP middleware that serves the wrapped handler only when the
// flag is enabled for the caller. Disabled flags respond 404 so gated routes
// are indistinguishable from absent ones; precondition failures (bad
// resolver output) respond 500.
func Gate(evaluator *Evaluator, flagKey string, resolve ContextResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			enabled, err := evaluator.Evaluate(r.Context(), resolve(r), flagKey)
			if err != nil {
				if errors.Is(err, ErrMissingTenantID) {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !enabled {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
