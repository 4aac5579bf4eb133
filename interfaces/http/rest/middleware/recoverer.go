package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"inventory-backend/pkg/common"

	"go.uber.org/zap"
)

// Recoverer turns a handler panic into the JSON 500 envelope
func Recoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Recovered from panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)

				if err := common.RespondError(w, http.StatusInternalServerError, fmt.Sprint(rec)); err != nil {
					logger.Error("Failed to encode response", zap.Error(err))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
