package api

import (
	"net/http"

	"github.com/go-chi/chi"
)

func (s *Server) studentProfile(res http.ResponseWriter, req *http.Request) {
	st, err := s.reg.StudentByID(actorID(req.Context()))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, st)
}

// studentHome returns the caller's course set.
func (s *Server) studentHome(res http.ResponseWriter, req *http.Request) {
	courses, err := s.reg.StudentCourses(actorID(req.Context()))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, courses)
}

// viewMyGrades returns the caller's own ledger records in the course.
func (s *Server) viewMyGrades(res http.ResponseWriter, req *http.Request) {
	grades, err := s.reg.StudentGradesInCourse(actorID(req.Context()), chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, grades)
}
