package api

import (
	"net/http"
)

// DashboardHandler returns the fleet-wide counters shown on the admin
// landing page.
func (api *Api) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	totalCompanies, err := api.store.CountActiveCompanies(r.Context())
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to load dashboard", err)
		return
	}

	totalDrivers, err := api.store.CountActiveDrivers(r.Context())
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to load dashboard", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalCompanies": totalCompanies,
		"totalDrivers":   totalDrivers,
	})
}
