package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// GradeSummary is the per-course grade projection exposed to course members:
// one entry per ledger record, narrowed to the grade type and score. It is
// derived from the grade ledger at read time; the ledger is the single source
// of truth.
type GradeSummary struct {
	Type  string  `json:"type"`
	Grade float64 `json:"grade"`
}

// RosterOfCourse returns the {id, name} projection of every student enrolled
// in the identified course. Returns db.ErrorNotFound if the course does not
// exist; a course with no enrolled students yields an empty sequence.
func (r *Registrar) RosterOfCourse(courseCode string) ([]*student.Summary, error) {
	err := r.courseMustExist(courseCode)
	if err != nil {
		return nil, err
	}

	return r.students.InCourse(courseCode)
}

// TeachingStaffOfCourse returns the {name} projection of every teacher
// teaching the identified course. Returns db.ErrorNotFound if the course does
// not exist.
func (r *Registrar) TeachingStaffOfCourse(courseCode string) ([]*teacher.Summary, error) {
	err := r.courseMustExist(courseCode)
	if err != nil {
		return nil, err
	}

	return r.teachers.InCourse(courseCode)
}

// GradeSummaryOfCourse returns the {type, grade} projection of the
// identified course's ledger records. Returns db.ErrorNotFound if the course
// does not exist.
func (r *Registrar) GradeSummaryOfCourse(courseCode string) ([]*GradeSummary, error) {
	grades, err := r.CourseGrades(courseCode)
	if err != nil {
		return nil, err
	}

	summary := make([]*GradeSummary, 0, len(grades))
	for _, g := range grades {
		summary = append(summary, &GradeSummary{Type: g.GradeType, Grade: g.Score})
	}

	return summary, nil
}

func (r *Registrar) courseMustExist(courseCode string) error {
	exists, err := r.check.CourseExists(courseCode)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	return nil
}

// Students returns all student records. An empty collection yields an empty
// sequence, not an error.
func (r *Registrar) Students() ([]*student.Student, error) {
	return r.students.Students()
}

// Teachers returns all teacher records.
func (r *Registrar) Teachers() ([]*teacher.Teacher, error) {
	return r.teachers.Teachers()
}

// Courses returns all course records.
func (r *Registrar) Courses() ([]*course.Course, error) {
	return r.courses.Courses()
}

// StudentByID returns the identified student record.
func (r *Registrar) StudentByID(studentID string) (*student.Student, error) {
	return r.students.Student(studentID)
}

// StudentByName returns the first student record whose name matches name.
func (r *Registrar) StudentByName(name string) (*student.Student, error) {
	return r.students.StudentByName(name)
}

// TeacherByID returns the identified teacher record.
func (r *Registrar) TeacherByID(teacherID string) (*teacher.Teacher, error) {
	return r.teachers.Teacher(teacherID)
}

// TeacherByName returns the first teacher record whose name matches name.
func (r *Registrar) TeacherByName(name string) (*teacher.Teacher, error) {
	return r.teachers.TeacherByName(name)
}

// CourseByCode returns the identified course record.
func (r *Registrar) CourseByCode(courseCode string) (*course.Course, error) {
	return r.courses.Course(courseCode)
}

// CourseByName returns the course record whose name matches courseName.
func (r *Registrar) CourseByName(courseName string) (*course.Course, error) {
	return r.courses.CourseByName(courseName)
}
