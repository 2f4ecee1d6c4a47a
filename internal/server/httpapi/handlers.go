package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/common"
	"fintrack/internal/models"
	"fintrack/internal/server/services"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// writeServiceError maps the sentinel errors the services return to HTTP
// statuses. Anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, common.ErrorHasID),
		errors.Is(err, common.ErrorNoUserID),
		errors.Is(err, common.ErrorEmptyDescription),
		errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	if _, err := s.users.Register(r.Context(), creds.Username, creds.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	session, err := s.users.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: session.Token, UserID: session.UserID})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	recs, err := s.records.ListByUser(r.Context(), callerID(r.Context()), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []models.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft models.Record
	if !decodeBody(w, r, &draft) {
		return
	}

	created, err := s.records.Create(r.Context(), callerID(r.Context()), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var rec models.Record
	if !decodeBody(w, r, &rec) {
		return
	}

	updated, err := s.records.Update(r.Context(), callerID(r.Context()), r.PathValue("id"), rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.records.Delete(r.Context(), callerID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
