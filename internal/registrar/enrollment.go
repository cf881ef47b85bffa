package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// AddStudent creates a new student record. Returns db.ErrorConflict if the
// student ID or email is already taken, and db.ErrorNotFound if any course
// code the record carries does not resolve to an existing course. On
// precondition failure no write is performed.
func (r *Registrar) AddStudent(s *student.Student) error {
	if s == nil || s.ID == "" || s.Email == "" {
		return fmt.Errorf("%w: missing student ID or email", db.ErrorInvalidRequest)
	}

	idTaken, err := r.check.StudentIDTaken(s.ID)
	if err != nil {
		return err
	}
	if idTaken {
		return fmt.Errorf("%w: student with ID %s already exists", db.ErrorConflict, s.ID)
	}

	emailTaken, err := r.check.StudentEmailTaken(s.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return fmt.Errorf("%w: student with email %s already exists", db.ErrorConflict, s.Email)
	}

	s.Courses = dedupe(s.Courses)
	if err := r.coursesExist(s.Courses); err != nil {
		return err
	}

	return r.students.Insert(s)
}

// AddTeacher creates a new teacher record. Same precondition shape as
// AddStudent.
func (r *Registrar) AddTeacher(t *teacher.Teacher) error {
	if t == nil || t.ID == "" || t.Email == "" {
		return fmt.Errorf("%w: missing teacher ID or email", db.ErrorInvalidRequest)
	}

	idTaken, err := r.check.TeacherIDTaken(t.ID)
	if err != nil {
		return err
	}
	if idTaken {
		return fmt.Errorf("%w: teacher with ID %s already exists", db.ErrorConflict, t.ID)
	}

	emailTaken, err := r.check.TeacherEmailTaken(t.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return fmt.Errorf("%w: teacher with email %s already exists", db.ErrorConflict, t.Email)
	}

	t.Courses = dedupe(t.Courses)
	if err := r.coursesExist(t.Courses); err != nil {
		return err
	}

	return r.teachers.Insert(t)
}

func (r *Registrar) coursesExist(courseCodes []string) error {
	for _, code := range courseCodes {
		exists, err := r.check.CourseExists(code)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: course with code %s does not exist", db.ErrorNotFound, code)
		}
	}
	return nil
}

// UpdateStudent merge-patches the identified student record. Returns
// db.ErrorNotFound if the ID does not resolve. Email and course uniqueness
// are not re-validated on update.
func (r *Registrar) UpdateStudent(studentID string, patch *student.Patch) error {
	return r.students.Update(studentID, patch)
}

// UpdateTeacher merge-patches the identified teacher record. Returns
// db.ErrorNotFound if the ID does not resolve.
func (r *Registrar) UpdateTeacher(teacherID string, patch *teacher.Patch) error {
	return r.teachers.Update(teacherID, patch)
}

// DeleteStudent removes the identified student record and returns its ID.
// Returns db.ErrorNotFound if the ID does not resolve. Grade records
// referencing the student are not cleaned up.
func (r *Registrar) DeleteStudent(studentID string) (string, error) {
	err := r.students.Delete(studentID)
	if err != nil {
		return "", err
	}
	return studentID, nil
}

// DeleteTeacher removes the identified teacher record and returns its ID.
// Returns db.ErrorNotFound if the ID does not resolve.
func (r *Registrar) DeleteTeacher(teacherID string) (string, error) {
	err := r.teachers.Delete(teacherID)
	if err != nil {
		return "", err
	}
	return teacherID, nil
}

// RemoveCourseFromStudent removes courseCode from the student's course set,
// leaving all other fields untouched. Returns db.ErrorNotFound if the student
// does not exist or the student's course set does not currently contain
// courseCode.
func (r *Registrar) RemoveCourseFromStudent(studentID string, courseCode string) error {
	exists, err := r.check.StudentExists(studentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}

	has, err := r.check.StudentHasCourse(studentID, courseCode)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: course %s is not in this student's course set", db.ErrorNotFound, courseCode)
	}

	return r.students.RemoveCourse(studentID, courseCode)
}

// RemoveCourseFromTeacher removes courseCode from the teacher's course set.
// Same precondition shape as RemoveCourseFromStudent.
func (r *Registrar) RemoveCourseFromTeacher(teacherID string, courseCode string) error {
	exists, err := r.check.TeacherExists(teacherID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}

	has, err := r.check.TeacherHasCourse(teacherID, courseCode)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: course %s is not in this teacher's course set", db.ErrorNotFound, courseCode)
	}

	return r.teachers.RemoveCourse(teacherID, courseCode)
}

// StudentCourses returns the student's course set projected alone. Returns
// db.ErrorNotFound if the student does not exist.
func (r *Registrar) StudentCourses(studentID string) ([]string, error) {
	return r.students.Courses(studentID)
}

// TeacherCourses returns the teacher's course set projected alone. Returns
// db.ErrorNotFound if the teacher does not exist.
func (r *Registrar) TeacherCourses(teacherID string) ([]string, error) {
	return r.teachers.Courses(teacherID)
}
