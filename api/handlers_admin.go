package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/grade"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

type newEntityRequest struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Courses  []string `json:"courses"`
}

type entityPatchRequest struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	Courses  *[]string `json:"courses"`
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: missing password", db.ErrorInvalidRequest)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword error: %w", err)
	}

	return string(passwordHash), nil
}

func (s *Server) viewStudents(res http.ResponseWriter, req *http.Request) {
	students, err := s.reg.Students()
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, students)
}

func (s *Server) viewStudentByID(res http.ResponseWriter, req *http.Request) {
	st, err := s.reg.StudentByID(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, st)
}

func (s *Server) viewStudentByName(res http.ResponseWriter, req *http.Request) {
	st, err := s.reg.StudentByName(req.URL.Query().Get("name"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, st)
}

func (s *Server) addStudent(res http.ResponseWriter, req *http.Request) {
	var body newEntityRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	passwordHash, err := hashPassword(body.Password)
	if err != nil {
		s.writeError(res, err)
		return
	}

	err = s.reg.AddStudent(&student.Student{
		ID:             body.ID,
		Name:           body.Name,
		Email:          body.Email,
		HashedPassword: passwordHash,
		Courses:        body.Courses,
	})
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "student added successfully")
}

func (s *Server) updateStudent(res http.ResponseWriter, req *http.Request) {
	var body entityPatchRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	patch := &student.Patch{Name: body.Name, Email: body.Email, Courses: body.Courses}
	if body.Password != nil {
		passwordHash, err := hashPassword(*body.Password)
		if err != nil {
			s.writeError(res, err)
			return
		}
		patch.HashedPassword = &passwordHash
	}

	err := s.reg.UpdateStudent(chi.URLParam(req, "id"), patch)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusOK, "student information updated successfully")
}

func (s *Server) deleteStudent(res http.ResponseWriter, req *http.Request) {
	_, err := s.reg.DeleteStudent(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "student deleted successfully")
}

func (s *Server) removeStudentCourse(res http.ResponseWriter, req *http.Request) {
	err := s.reg.RemoveCourseFromStudent(chi.URLParam(req, "id"), chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "course removed from this student successfully")
}

func (s *Server) viewStudentCourses(res http.ResponseWriter, req *http.Request) {
	courses, err := s.reg.StudentCourses(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, courses)
}

func (s *Server) viewTeachers(res http.ResponseWriter, req *http.Request) {
	teachers, err := s.reg.Teachers()
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, teachers)
}

func (s *Server) viewTeacherByID(res http.ResponseWriter, req *http.Request) {
	t, err := s.reg.TeacherByID(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, t)
}

func (s *Server) viewTeacherByName(res http.ResponseWriter, req *http.Request) {
	t, err := s.reg.TeacherByName(req.URL.Query().Get("name"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, t)
}

func (s *Server) addTeacher(res http.ResponseWriter, req *http.Request) {
	var body newEntityRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	passwordHash, err := hashPassword(body.Password)
	if err != nil {
		s.writeError(res, err)
		return
	}

	err = s.reg.AddTeacher(&teacher.Teacher{
		ID:             body.ID,
		Name:           body.Name,
		Email:          body.Email,
		HashedPassword: passwordHash,
		Courses:        body.Courses,
	})
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "teacher added successfully")
}

func (s *Server) updateTeacher(res http.ResponseWriter, req *http.Request) {
	var body entityPatchRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	patch := &teacher.Patch{Name: body.Name, Email: body.Email, Courses: body.Courses}
	if body.Password != nil {
		passwordHash, err := hashPassword(*body.Password)
		if err != nil {
			s.writeError(res, err)
			return
		}
		patch.HashedPassword = &passwordHash
	}

	err := s.reg.UpdateTeacher(chi.URLParam(req, "id"), patch)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusOK, "teacher information updated successfully")
}

func (s *Server) deleteTeacher(res http.ResponseWriter, req *http.Request) {
	_, err := s.reg.DeleteTeacher(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "teacher deleted successfully")
}

func (s *Server) removeTeacherCourse(res http.ResponseWriter, req *http.Request) {
	err := s.reg.RemoveCourseFromTeacher(chi.URLParam(req, "id"), chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "course removed from this teacher successfully")
}

func (s *Server) viewTeacherCourses(res http.ResponseWriter, req *http.Request) {
	courses, err := s.reg.TeacherCourses(chi.URLParam(req, "id"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, courses)
}

type newCourseRequest struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Department string `json:"department"`
}

func (s *Server) viewCourses(res http.ResponseWriter, req *http.Request) {
	courses, err := s.reg.Courses()
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, courses)
}

func (s *Server) viewCourseByCode(res http.ResponseWriter, req *http.Request) {
	c, err := s.reg.CourseByCode(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, c)
}

func (s *Server) viewCourseByName(res http.ResponseWriter, req *http.Request) {
	c, err := s.reg.CourseByName(req.URL.Query().Get("name"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, c)
}

func (s *Server) addCourse(res http.ResponseWriter, req *http.Request) {
	var body newCourseRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	err := s.reg.AddCourse(&course.Course{
		CourseCode: body.CourseCode,
		CourseName: body.CourseName,
		Department: body.Department,
	})
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "course added successfully")
}

func (s *Server) updateCourse(res http.ResponseWriter, req *http.Request) {
	var patch course.Patch
	if err := readJSON(req, &patch); err != nil {
		s.writeError(res, err)
		return
	}

	err := s.reg.UpdateCourse(chi.URLParam(req, "courseCode"), &patch)
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusOK, "course information updated successfully")
}

func (s *Server) deleteCourse(res http.ResponseWriter, req *http.Request) {
	_, err := s.reg.DeleteCourse(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeMsg(res, http.StatusOK, "course deleted successfully")
}

func (s *Server) viewCourseRoster(res http.ResponseWriter, req *http.Request) {
	roster, err := s.reg.RosterOfCourse(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, roster)
}

func (s *Server) viewCourseStaff(res http.ResponseWriter, req *http.Request) {
	staff, err := s.reg.TeachingStaffOfCourse(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, staff)
}

type gradeRequest struct {
	StudentID string  `json:"studentId"`
	CourseID  string  `json:"courseId"`
	GradeType string  `json:"gradeType"`
	Score     float64 `json:"score"`
}

func (s *Server) addGrade(res http.ResponseWriter, req *http.Request) {
	var body gradeRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	err := s.reg.AddGrade(&grade.Grade{
		StudentID: body.StudentID,
		CourseID:  body.CourseID,
		GradeType: body.GradeType,
		Score:     body.Score,
	})
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusCreated, "grade added successfully")
}

type gradePatchRequest struct {
	StudentID string   `json:"studentId"`
	CourseID  string   `json:"courseId"`
	GradeType string   `json:"gradeType"`
	Score     *float64 `json:"score"`
}

func (s *Server) updateGrade(res http.ResponseWriter, req *http.Request) {
	var body gradePatchRequest
	if err := readJSON(req, &body); err != nil {
		s.writeError(res, err)
		return
	}

	key := grade.Key{StudentID: body.StudentID, CourseID: body.CourseID, GradeType: body.GradeType}
	err := s.reg.UpdateGrade(key, &grade.Patch{Score: body.Score})
	if err != nil {
		s.writeError(res, err)
		return
	}

	s.writeMsg(res, http.StatusOK, "grade updated successfully")
}

func (s *Server) viewCourseGrades(res http.ResponseWriter, req *http.Request) {
	grades, err := s.reg.CourseGrades(chi.URLParam(req, "courseCode"))
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.writeJSON(res, http.StatusOK, grades)
}
