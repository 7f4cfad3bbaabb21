package handler

import (
	"net/http"

	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
)

type UserModalitiesRequest struct {
	Modalities []string `json:"modalities"`
}

func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			writeServiceError(w, r, "users", err)
			return
		}

		writeJSON(w, r, http.StatusOK, users)
	}
}

// CreateUser cria um novo usuário. A senha chega em texto no campo password.
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user domain.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), &user)
		if err != nil {
			writeServiceError(w, r, "users", err)
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	}
}

func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		if err := service.UpdateUser(r.Context(), &req); err != nil {
			writeServiceError(w, r, "users", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SetUserModalities substitui as modalidades vinculadas ao usuário
func SetUserModalities(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(w, r, "id")
		if !ok {
			return
		}

		var req UserModalitiesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		modalities, err := service.SetUserModalities(r.Context(), id, req.Modalities)
		if err != nil {
			writeServiceError(w, r, "users", err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"user_id": id, "modalities": modalities})
	}
}
