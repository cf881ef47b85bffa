package teacher

type Repository interface {
	// Insert adds a new teacher record. Returns db.ErrorConflict if the
	// teacher ID or email already exists.
	Insert(t *Teacher) error
	// Teacher returns the teacher record that matches teacherID.
	Teacher(teacherID string) (*Teacher, error)
	// TeacherByName returns the first teacher record whose name matches name.
	TeacherByName(name string) (*Teacher, error)
	// TeacherByEmail returns the teacher record that matches email.
	TeacherByEmail(email string) (*Teacher, error)
	// Teachers returns all teacher records.
	Teachers() ([]*Teacher, error)
	// Exists checks if a teacher with teacherID exists.
	Exists(teacherID string) (bool, error)
	// EmailExists checks if any teacher record holds email.
	EmailExists(email string) (bool, error)
	// HasCourse checks that the teacher's course set contains courseCode.
	HasCourse(teacherID string, courseCode string) (bool, error)
	// InCourse returns the name projection of every teacher whose course set
	// contains courseCode.
	InCourse(courseCode string) ([]*Summary, error)
	// Update merge-patches the teacher record that matches teacherID.
	Update(teacherID string, patch *Patch) error
	// Delete removes the teacher record that matches teacherID.
	Delete(teacherID string) error
	// RemoveCourse pulls courseCode from the teacher's course set.
	RemoveCourse(teacherID string, courseCode string) error
	// Courses returns the teacher's course set projected alone.
	Courses(teacherID string) ([]string, error)
}
