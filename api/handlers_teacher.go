package api

import (
	"net/http"

	"github.com/go-chi/chi"
)

func (s *Server) teacherProfile(res http.ResponseWriter, req *http.Request) {
	t, err := s.reg.TeacherByID(actorID(req.Context()))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, t)
}

// teacherHome returns the caller's course set.
func (s *Server) teacherHome(res http.ResponseWriter, req *http.Request) {
	courses, err := s.reg.TeacherCourses(actorID(req.Context()))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, courses)
}

func (s *Server) viewCourseGradeSummary(res http.ResponseWriter, req *http.Request) {
	summary, err := s.reg.GradeSummaryOfCourse(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, summary)
}

type taskRequest struct {
	CourseCode string `json:"courseCode"`
	TaskType   string `json:"taskType"`
	TaskPath   string `json:"taskPath"`
}

func (s *Server) addTask(res http.ResponseWriter, req *http.Request) {
	var body taskRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	err := s.reg.AddTask(body.CourseCode, body.TaskType, body.TaskPath)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "task added successfully")
}

func (s *Server) deleteTask(res http.ResponseWriter, req *http.Request) {
	err := s.reg.RemoveTask(chi.URLParam(req, "courseCode"), chi.URLParam(req, "taskType"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "task deleted successfully")
}

func (s *Server) viewCourseTasks(res http.ResponseWriter, req *http.Request) {
	tasks, err := s.reg.CourseTasks(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, tasks)
}
