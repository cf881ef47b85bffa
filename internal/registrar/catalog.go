package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
)

// AddCourse creates a new course record. Returns db.ErrorConflict if the
// course code or course name is already taken.
func (r *Registrar) AddCourse(c *course.Course) error {
	if c == nil || c.CourseCode == "" || c.CourseName == "" {
		return fmt.Errorf("%w: missing course code or course name", db.ErrorInvalidRequest)
	}

	codeTaken, err := r.check.CourseCodeTaken(c.CourseCode)
	if err != nil {
		return err
	}
	if codeTaken {
		return fmt.Errorf("%w: course with code %s already exists", db.ErrorConflict, c.CourseCode)
	}

	nameTaken, err := r.check.CourseNameTaken(c.CourseName)
	if err != nil {
		return err
	}
	if nameTaken {
		return fmt.Errorf("%w: course with name %s already exists", db.ErrorConflict, c.CourseName)
	}

	return r.courses.Insert(c)
}

// UpdateCourse merge-patches the identified course record. Returns
// db.ErrorNotFound if the course code does not resolve.
func (r *Registrar) UpdateCourse(courseCode string, patch *course.Patch) error {
	return r.courses.Update(courseCode, patch)
}

// DeleteCourse removes the identified course record and returns its code.
// Returns db.ErrorNotFound if the course code does not resolve. Course code
// references held by students and teachers, and grade records referencing the
// course, are left in place.
func (r *Registrar) DeleteCourse(courseCode string) (string, error) {
	err := r.courses.Delete(courseCode)
	if err != nil {
		return "", err
	}
	return courseCode, nil
}
