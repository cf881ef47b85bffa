package api

import (
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartcollege/registrar/internal/auth"
	"github.com/smartcollege/registrar/internal/db"
)

type loginResponse struct {
	Token string `json:"token"`
}

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerAdmin creates a new admin account.
func (s *Server) registerAdmin(res http.ResponseWriter, req *http.Request) {
	var body adminCredentials
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	_, err := s.admins.CreateAccount(body.Username, body.Password)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "admin account created successfully")
}

// adminLogin exchanges admin credentials for an auth token.
func (s *Server) adminLogin(res http.ResponseWriter, req *http.Request) {
	var body adminCredentials
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	adminID, err := s.admins.LoginAccount(body.Username, body.Password)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.issueToken(res, adminID, auth.RoleAdmin)
}

type emailCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// teacherLogin exchanges teacher credentials for an auth token.
func (s *Server) teacherLogin(res http.ResponseWriter, req *http.Request) {
	var body emailCredentials
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	t, err := s.teachers.TeacherByEmail(body.Email)
	if err != nil {
		s.writeLoginError(res, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(t.HashedPassword), []byte(body.Password))
	if err != nil {
		s.writeLoginError(res, db.ErrorInvalidRequest)
		return
	}

	s.issueToken(res, t.ID, auth.RoleTeacher)
}

// studentLogin exchanges student credentials for an auth token.
func (s *Server) studentLogin(res http.ResponseWriter, req *http.Request) {
	var body emailCredentials
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	st, err := s.students.StudentByEmail(body.Email)
	if err != nil {
		s.writeLoginError(res, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(st.HashedPassword), []byte(body.Password))
	if err != nil {
		s.writeLoginError(res, db.ErrorInvalidRequest)
		return
	}

	s.issueToken(res, st.ID, auth.RoleStudent)
}

func (s *Server) issueToken(res http.ResponseWriter, uniqueID string, role auth.Role) {
	token, err := s.auth.GenerateToken(uniqueID, role)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeJSON(res, http.StatusOK, &loginResponse{Token: token})
}

// writeLoginError collapses every user-facing login failure into the same
// response so credentials cannot be probed.
func (s *Server) writeLoginError(res http.ResponseWriter, err error) {
	if db.IsUserError(err) {
		s.writeError(res, fmt.Errorf("%w: email or password is incorrect", db.ErrorInvalidRequest))
		return
	}
	s.writeError(res, err)
}
