package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifeos/lifeos-sync/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResult reports a mutation outcome. Failures are already absorbed by
// the store (rollback + log), so every outcome is a 200 with the tri-state
// result; the dashboard infers a failed write from the reverted snapshot on
// its next read.
func writeResult(w http.ResponseWriter, r store.Result) {
	writeJSON(w, http.StatusOK, map[string]string{"result": r.String()})
}

// listResponse pairs a collection snapshot with its lifecycle state so the
// dashboard can render a waiting view while the initial fetch is in flight.
type listResponse struct {
	State string      `json:"state"`
	Items interface{} `json:"items"`
}
