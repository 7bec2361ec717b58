package httpapi

import (
	"net/http"

	"storefront-be/internal/metrics"
	"storefront-be/internal/utils"
)

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// metricsHandler exposes the counter snapshot to internal callers and admins.
func metricsHandler(reg *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsInternalRequest(r.Context()) && !utils.IsAdmin(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden", "internal access required", nil)
			return
		}
		writeJSON(w, http.StatusOK, reg.Snapshot())
	}
}
