package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetdesk-io/fleetdesk/internal/auth"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

type registerRequest struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	RoleID   int64   `json:"role_id"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	user, err := api.store.CreateUser(r.Context(), req.Name, req.Email, hash, req.RoleID)
	if errors.Is(err, store.ErrEmailTaken) {
		api.writeError(w, http.StatusBadRequest, "Email already registered", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	token, err := api.tokens.Generate(user.ID, user.RoleID, nil)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	api.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user": map[string]interface{}{
			"id":         user.ID,
			"email":      user.Email,
			"role_id":    user.RoleID,
			"created_at": user.CreatedAt,
		},
		"token": token,
	})
}

func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		api.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Unknown email and wrong password produce the same response.
	user, err := api.store.GetUserByEmail(r.Context(), creds.Email)
	if errors.Is(err, auth.ErrUserNotFound) {
		api.writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	if !auth.CheckPassword(creds.Password, user.PasswordHash) {
		api.writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := api.tokens.Generate(user.ID, user.RoleID, nil)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":      user.ID,
			"email":   user.Email,
			"role_id": user.RoleID,
			"name":    user.Name,
		},
		"token": token,
	})
}
