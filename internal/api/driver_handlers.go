package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetdesk-io/fleetdesk/internal/auth"
	"github.com/fleetdesk-io/fleetdesk/internal/models"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

func (api *Api) CreateDriverHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var input models.DriverInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// The company assignment comes from the caller's token, never from
	// the request body.
	driver, err := api.store.CreateDriver(r.Context(), identity.ID, identity.CompanyID, &input)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to create driver", err)
		return
	}

	api.writeJSON(w, http.StatusCreated, driver)
}

func (api *Api) ListDriversHandler(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	drivers, total, err := api.store.ListDrivers(r.Context(), &params)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to list drivers", err)
		return
	}

	api.writeJSON(w, http.StatusOK, listEnvelope(drivers, total, params))
}

func (api *Api) GetDriverHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}

	driver, err := api.store.GetDriverByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to fetch driver", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    driver,
	})
}

func (api *Api) UpdateDriverHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}

	var input models.DriverInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	driver, err := api.store.UpdateDriver(r.Context(), id, &input)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to update driver", err)
		return
	}

	api.writeJSON(w, http.StatusOK, driver)
}

func (api *Api) DeleteDriverHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}

	err = api.store.SoftDeleteDriver(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Driver not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to delete driver", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Driver deleted successfully",
	})
}
