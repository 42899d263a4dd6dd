package api

import (
	"net/http"

	"github.com/careerscope/careerscope/internal/dataset"
)

// health is the liveness probe: 200 whenever the process is up.
func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness reports 200 once the dataset is loaded.
func readiness(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if store == nil || store.Len() == 0 {
			http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}
