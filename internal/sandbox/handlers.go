package sandbox

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/internal/json"
)

// handlePing handles GET /api/v1/test/ping
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleLogin handles POST /api/v1/account/login. Credentials come either
// as login/password query parameters or as a JSON body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds := client.Credentials{
		Login:    r.URL.Query().Get("login"),
		Password: r.URL.Query().Get("password"),
	}
	if creds.Login == "" {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
		if err != nil || len(body) == 0 || json.Unmarshal(body, &creds) != nil {
			writeError(w, http.StatusBadRequest, "credentials required")
			return
		}
	}
	if creds.Login != s.cfg.Login || creds.Password != s.cfg.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := s.openSession(creds.Login)
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: token, Path: "/", HttpOnly: true})
	log.Debug().Str("login", creds.Login).Msg("sandbox session opened")
	w.WriteHeader(http.StatusOK)
}

// handleDictionaries handles GET /api/v1/tender/create
func (s *Server) handleDictionaries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, client.Dictionaries{
		Corporates:  s.cfg.Corporates,
		Contractors: s.cfg.Contractors,
	})
}

// handleCreate handles POST /api/v1/tender/create
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req client.CreateTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender payload")
		return
	}
	id, err := s.addTender(req, "", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// handleAssign handles POST /api/v1/tender/assign
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req client.AssignTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender payload")
		return
	}
	if req.ContractorID == "" {
		writeError(w, http.StatusBadRequest, "ContractorId required")
		return
	}
	id, err := s.addTender(req.CreateTenderRequest, req.ContractorID, req.Cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// handleGetTender handles GET /api/v1/tender/{id}
func (s *Server) handleGetTender(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tender(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}
