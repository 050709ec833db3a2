package middleware

import (
	"net/http"

	"github.com/malwarebo/balancegate/providers"
	"github.com/malwarebo/balancegate/utils"
)

// HandlerFunc is an http handler that reports failure instead of writing it.
// A handler returning an error must not have written to w.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// TranslateProviderErrors turns a *providers.ProviderError from next into a
// 400 {"error": message} response. Every provider error category maps to
// 400. Any other error is returned as is.
func TranslateProviderErrors(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		err := next(w, r)
		if err == nil {
			return nil
		}

		providerErr, ok := providers.AsProviderError(err)
		if !ok {
			return err
		}

		utils.WriteError(w, http.StatusBadRequest, providerErr.Message)
		return nil
	}
}

// Handle adapts h to http.Handler. Errors that reach it are unexpected
// faults: they are logged and answered with a 500.
func Handle(logger *utils.Logger, h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			utils.LogError(r.Context(), logger, err, "unhandled request error", map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
	})
}
