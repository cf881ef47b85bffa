package registrar

import (
	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/grade"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// IntegrityChecker answers the existence and uniqueness questions used as
// write preconditions. It has no side effects; every method is a pure
// read-through to the store. A store failure propagates as an error and is
// never treated as "does not exist".
type IntegrityChecker struct {
	students student.Repository
	teachers teacher.Repository
	courses  course.Repository
	grades   grade.Repository
}

// NewIntegrityChecker creates a new instance of *IntegrityChecker.
func NewIntegrityChecker(students student.Repository, teachers teacher.Repository, courses course.Repository, grades grade.Repository) *IntegrityChecker {
	return &IntegrityChecker{
		students: students,
		teachers: teachers,
		courses:  courses,
		grades:   grades,
	}
}

// StudentExists checks that a student with studentID exists.
func (ic *IntegrityChecker) StudentExists(studentID string) (bool, error) {
	return ic.students.Exists(studentID)
}

// TeacherExists checks that a teacher with teacherID exists.
func (ic *IntegrityChecker) TeacherExists(teacherID string) (bool, error) {
	return ic.teachers.Exists(teacherID)
}

// CourseExists checks that a course with courseCode exists.
func (ic *IntegrityChecker) CourseExists(courseCode string) (bool, error) {
	return ic.courses.Exists(courseCode)
}

// StudentIDTaken checks that any student record holds studentID.
func (ic *IntegrityChecker) StudentIDTaken(studentID string) (bool, error) {
	return ic.students.Exists(studentID)
}

// StudentEmailTaken checks that any student record holds email.
func (ic *IntegrityChecker) StudentEmailTaken(email string) (bool, error) {
	return ic.students.EmailExists(email)
}

// TeacherIDTaken checks that any teacher record holds teacherID.
func (ic *IntegrityChecker) TeacherIDTaken(teacherID string) (bool, error) {
	return ic.teachers.Exists(teacherID)
}

// TeacherEmailTaken checks that any teacher record holds email.
func (ic *IntegrityChecker) TeacherEmailTaken(email string) (bool, error) {
	return ic.teachers.EmailExists(email)
}

// CourseCodeTaken checks that any course record holds courseCode.
func (ic *IntegrityChecker) CourseCodeTaken(courseCode string) (bool, error) {
	return ic.courses.Exists(courseCode)
}

// CourseNameTaken checks that any course record holds courseName.
func (ic *IntegrityChecker) CourseNameTaken(courseName string) (bool, error) {
	return ic.courses.NameExists(courseName)
}

// StudentHasCourse checks that the student's course set contains courseCode.
func (ic *IntegrityChecker) StudentHasCourse(studentID string, courseCode string) (bool, error) {
	return ic.students.HasCourse(studentID, courseCode)
}

// TeacherHasCourse checks that the teacher's course set contains courseCode.
func (ic *IntegrityChecker) TeacherHasCourse(teacherID string, courseCode string) (bool, error) {
	return ic.teachers.HasCourse(teacherID, courseCode)
}

// CourseHasTask checks that the course's task list contains a task of
// taskType.
func (ic *IntegrityChecker) CourseHasTask(courseCode string, taskType string) (bool, error) {
	return ic.courses.HasTask(courseCode, taskType)
}

// GradeExists checks that a ledger record holds the full compound key.
func (ic *IntegrityChecker) GradeExists(key grade.Key) (bool, error) {
	return ic.grades.Exists(key)
}
