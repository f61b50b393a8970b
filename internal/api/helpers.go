package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

func (api *Api) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError writes the error envelope. The underlying error is logged
// server-side; it reaches the client only in development.
func (api *Api) writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	body := map[string]interface{}{"error": message}
	if err != nil && api.Config.IsDevelopment() {
		body["details"] = err.Error()
	}
	api.writeJSON(w, status, body)
}

// idParam parses the {id} route parameter. A non-numeric id is treated as
// a missing record rather than a bad request.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// listParams reads page, limit and search from the query string. Invalid
// numbers fall through as zero and get normalized to the entity defaults.
func listParams(r *http.Request) store.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return store.ListParams{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
	}
}

// listEnvelope wraps a page of records with its pagination metadata.
// Params must already be normalized by the store.
func listEnvelope(data interface{}, total int, params store.ListParams) map[string]interface{} {
	return map[string]interface{}{
		"success":    true,
		"data":       data,
		"pagination": store.NewPagination(total, params),
	}
}
