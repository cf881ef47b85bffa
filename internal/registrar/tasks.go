package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
)

// AddTask appends a task to the identified course's task list. Returns
// db.ErrorNotFound if the course does not exist and db.ErrorConflict if the
// course already has a task of taskType. The task list keeps insertion order.
func (r *Registrar) AddTask(courseCode string, taskType string, taskPath string) error {
	if courseCode == "" || taskType == "" {
		return fmt.Errorf("%w: missing course code or task type", db.ErrorInvalidRequest)
	}

	exists, err := r.check.CourseExists(courseCode)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	hasTask, err := r.check.CourseHasTask(courseCode, taskType)
	if err != nil {
		return err
	}
	if hasTask {
		return fmt.Errorf("%w: course %s already has a task of type %s", db.ErrorConflict, courseCode, taskType)
	}

	return r.courses.AppendTask(courseCode, &course.Task{Type: taskType, Path: taskPath})
}

// RemoveTask removes every task of taskType from the identified course's task
// list. Removing a type the course does not have is a no-op success, so the
// operation is idempotent. Returns db.ErrorNotFound if the course does not
// exist.
func (r *Registrar) RemoveTask(courseCode string, taskType string) error {
	if courseCode == "" || taskType == "" {
		return fmt.Errorf("%w: missing course code or task type", db.ErrorInvalidRequest)
	}

	exists, err := r.check.CourseExists(courseCode)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return r.courses.PullTask(courseCode, taskType)
}

// CourseTasks returns the identified course's task list projected alone.
// Returns db.ErrorNotFound if the course does not exist.
func (r *Registrar) CourseTasks(courseCode string) ([]*course.Task, error) {
	return r.courses.Tasks(courseCode)
}
