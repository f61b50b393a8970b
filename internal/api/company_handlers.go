package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetdesk-io/fleetdesk/internal/auth"
	"github.com/fleetdesk-io/fleetdesk/internal/models"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

func (api *Api) CreateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var input models.CompanyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	company, err := api.store.CreateCompany(r.Context(), identity.ID, &input)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to create company", err)
		return
	}

	api.writeJSON(w, http.StatusCreated, company)
}

func (api *Api) ListCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	companies, total, err := api.store.ListCompanies(r.Context(), &params)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to list companies", err)
		return
	}

	api.writeJSON(w, http.StatusOK, listEnvelope(companies, total, params))
}

func (api *Api) GetCompanyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}

	company, err := api.store.GetCompanyByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to fetch company", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    company,
	})
}

func (api *Api) UpdateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}

	var input models.CompanyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// The store folds an ownership mismatch into ErrNotFound.
	company, err := api.store.UpdateCompany(r.Context(), id, identity.ID, &input)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to update company", err)
		return
	}

	api.writeJSON(w, http.StatusOK, company)
}

func (api *Api) DeleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}

	err = api.store.SoftDeleteCompany(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		api.writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Failed to delete company", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Company deleted successfully",
	})
}
