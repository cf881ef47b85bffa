package course

type Repository interface {
	// Insert adds a new course record. Returns db.ErrorConflict if the course
	// code or course name already exists.
	Insert(c *Course) error
	// Course returns the course record that matches courseCode.
	Course(courseCode string) (*Course, error)
	// CourseByName returns the course record that matches courseName.
	CourseByName(courseName string) (*Course, error)
	// Courses returns all course records.
	Courses() ([]*Course, error)
	// Exists checks if a course with courseCode exists.
	Exists(courseCode string) (bool, error)
	// NameExists checks if any course record holds courseName.
	NameExists(courseName string) (bool, error)
	// HasTask checks that the course's task list contains a task of taskType.
	HasTask(courseCode string, taskType string) (bool, error)
	// Update merge-patches the course record that matches courseCode.
	Update(courseCode string, patch *Patch) error
	// Delete removes the course record that matches courseCode.
	Delete(courseCode string) error
	// AppendTask appends t to the course's task list.
	AppendTask(courseCode string, t *Task) error
	// PullTask removes every task entry whose type equals taskType from the
	// course's task list.
	PullTask(courseCode string, taskType string) error
	// Tasks returns the course's task list projected alone.
	Tasks(courseCode string) ([]*Task, error)
}
