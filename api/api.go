// Package api exposes the registrar over REST. It owns request parsing,
// credential hashing and the mapping from registrar outcomes to HTTP status
// codes; all consistency rules live in the registrar itself.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/smartcollege/registrar/internal/admin"
	"github.com/smartcollege/registrar/internal/auth"
	"github.com/smartcollege/registrar/internal/registrar"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// Server holds the transport-level collaborators of the registrar.
type Server struct {
	log      *zap.SugaredLogger
	reg      *registrar.Registrar
	auth     *auth.Manager
	admins   admin.Repository
	students student.Repository
	teachers teacher.Repository
}

// NewServer creates a new instance of *Server.
func NewServer(log *zap.SugaredLogger, reg *registrar.Registrar, admins admin.Repository, students student.Repository, teachers teacher.Repository) (*Server, error) {
	authManager, err := auth.NewManager()
	if err != nil {
		return nil, err
	}

	return &Server{
		log:      log,
		reg:      reg,
		auth:     authManager,
		admins:   admins,
		students: students,
		teachers: teachers,
	}, nil
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(s.requestLogger)
	mux.Use(s.authenticate)

	// Login and bootstrap endpoints are open but rate limited per IP.
	mux.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/admin/register", s.registerAdmin)
		r.Post("/admin/login", s.adminLogin)
		r.Post("/teacher/login", s.teacherLogin)
		r.Post("/student/login", s.studentLogin)
	})

	mux.Route("/admin", func(r chi.Router) {
		r.Use(s.requireRole(auth.RoleAdmin))

		r.Get("/view/students", s.viewStudents)
		r.Get("/view/student/{id}", s.viewStudentByID)
		r.Get("/view/studentbyname", s.viewStudentByName)
		r.Post("/addstudent", s.addStudent)
		r.Put("/updatestudent/{id}", s.updateStudent)
		r.Delete("/deletestudent/{id}", s.deleteStudent)
		r.Delete("/student/{id}/course/{courseCode}", s.removeStudentCourse)
		r.Get("/view/student/{id}/courses", s.viewStudentCourses)

		r.Get("/view/teachers", s.viewTeachers)
		r.Get("/view/teacher/{id}", s.viewTeacherByID)
		r.Get("/view/teacherbyname", s.viewTeacherByName)
		r.Post("/addteacher", s.addTeacher)
		r.Put("/updateteacher/{id}", s.updateTeacher)
		r.Delete("/deleteteacher/{id}", s.deleteTeacher)
		r.Delete("/teacher/{id}/course/{courseCode}", s.removeTeacherCourse)
		r.Get("/view/teacher/{id}/courses", s.viewTeacherCourses)

		r.Get("/view/courses", s.viewCourses)
		r.Get("/view/course/{courseCode}", s.viewCourseByCode)
		r.Get("/view/coursebyname", s.viewCourseByName)
		r.Post("/addcourse", s.addCourse)
		r.Put("/updatecourse/{courseCode}", s.updateCourse)
		r.Delete("/deletecourse/{courseCode}", s.deleteCourse)
		r.Get("/view/course/{courseCode}/students", s.viewCourseRoster)
		r.Get("/view/course/{courseCode}/teachers", s.viewCourseStaff)

		r.Post("/addgrade", s.addGrade)
		r.Put("/update/grade", s.updateGrade)
		r.Get("/view/course/{courseCode}/grades", s.viewCourseGrades)
	})

	mux.Route("/teacher", func(r chi.Router) {
		r.Use(s.requireRole(auth.RoleTeacher))

		r.Get("/profile", s.teacherProfile)
		r.Get("/home", s.teacherHome)
		r.Post("/addgrade", s.addGrade)
		r.Get("/view/course/{courseCode}/grades", s.viewCourseGradeSummary)
		r.Get("/view/course/{courseCode}/students/grades", s.viewCourseGrades)
		r.Get("/view/course/{courseCode}/students", s.viewCourseRoster)
		r.Post("/addtask", s.addTask)
		r.Delete("/deletetask/{courseCode}/{taskType}", s.deleteTask)
		r.Get("/view/course/{courseCode}/tasks", s.viewCourseTasks)
	})

	mux.Route("/student", func(r chi.Router) {
		r.Use(s.requireRole(auth.RoleStudent))

		r.Get("/profile", s.studentProfile)
		r.Get("/home", s.studentHome)
		r.Get("/view/course/{courseCode}/grades", s.viewCourseGradeSummary)
		r.Get("/view/course/{courseCode}/teachers", s.viewCourseStaff)
		r.Get("/view/course/{courseCode}/mygrade", s.viewMyGrades)
		r.Get("/view/course/{courseCode}/tasks", s.viewCourseTasks)
	})

	return mux
}
