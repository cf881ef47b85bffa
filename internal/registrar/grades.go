package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/grade"
)

// AddGrade creates a new ledger record. Returns db.ErrorConflict if a record
// already holds the full (studentId, courseId, gradeType) compound key. The
// check-then-insert sequence is not transactional; the compound unique index
// on the collection settles concurrent inserts of the same key.
func (r *Registrar) AddGrade(g *grade.Grade) error {
	if g == nil || g.StudentID == "" || g.CourseID == "" || g.GradeType == "" {
		return fmt.Errorf("%w: missing student ID, course ID or grade type", db.ErrorInvalidRequest)
	}

	key := grade.Key{StudentID: g.StudentID, CourseID: g.CourseID, GradeType: g.GradeType}
	exists, err := r.check.GradeExists(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: a grade already exists for student %s, course %s, type %s", db.ErrorConflict, g.StudentID, g.CourseID, g.GradeType)
	}

	return r.grades.Insert(g)
}

// UpdateGrade merge-patches the single ledger record that matches the full
// compound key. Returns db.ErrorNotFound if no record matches.
func (r *Registrar) UpdateGrade(key grade.Key, patch *grade.Patch) error {
	if key.StudentID == "" || key.CourseID == "" || key.GradeType == "" {
		return fmt.Errorf("%w: missing student ID, course ID or grade type", db.ErrorInvalidRequest)
	}

	return r.grades.Update(key, patch)
}

// CourseGrades returns every ledger record for the identified course. Returns
// db.ErrorNotFound if the course does not exist; a course with zero grade
// records yields an empty sequence instead.
func (r *Registrar) CourseGrades(courseCode string) ([]*grade.Grade, error) {
	exists, err := r.check.CourseExists(courseCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return r.grades.ForCourse(courseCode)
}

// StudentGradesInCourse returns the possibly empty sequence of a student's
// ledger records in the identified course. Returns db.ErrorNotFound if the
// course does not exist.
func (r *Registrar) StudentGradesInCourse(studentID string, courseCode string) ([]*grade.Grade, error) {
	exists, err := r.check.CourseExists(courseCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return r.grades.ForStudentInCourse(studentID, courseCode)
}
