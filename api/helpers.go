package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/smartcollege/registrar/internal/db"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

func (s *Server) writeJSON(res http.ResponseWriter, status int, payload any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	err := json.NewEncoder(res).Encode(payload)
	if err != nil {
		s.log.Errorw("json.Encode error", "error", err)
	}
}

func (s *Server) writeMsg(res http.ResponseWriter, status int, msg string) {
	s.writeJSON(res, status, &msgResponse{Msg: msg})
}

func readJSON(req *http.Request, dst any) error {
	err := json.NewDecoder(req.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("%w: malformed request body", db.ErrorInvalidRequest)
	}
	return nil
}

// writeError maps a registrar outcome to a transport status: NotFound to 404,
// Conflict and Invalid to 400, anything else is a transient store failure and
// maps to 500 with the detail logged rather than leaked.
func (s *Server) writeError(res http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrorNotFound):
		s.writeMsg(res, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrorConflict), errors.Is(err, db.ErrorInvalidRequest):
		s.writeMsg(res, http.StatusBadRequest, err.Error())
	default:
		s.log.Errorw("server error", "error", err)
		s.writeMsg(res, http.StatusInternalServerError, "internal server error")
	}
}
