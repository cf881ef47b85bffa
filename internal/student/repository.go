package student

type Repository interface {
	// Insert adds a new student record. Returns db.ErrorConflict if the
	// student ID or email already exists.
	Insert(s *Student) error
	// Student returns the student record that matches studentID.
	Student(studentID string) (*Student, error)
	// StudentByName returns the first student record whose name matches name.
	StudentByName(name string) (*Student, error)
	// StudentByEmail returns the student record that matches email.
	StudentByEmail(email string) (*Student, error)
	// Students returns all student records.
	Students() ([]*Student, error)
	// Exists checks if a student with studentID exists.
	Exists(studentID string) (bool, error)
	// EmailExists checks if any student record holds email.
	EmailExists(email string) (bool, error)
	// HasCourse checks that the student's course set contains courseCode.
	HasCourse(studentID string, courseCode string) (bool, error)
	// InCourse returns the roster projection of every student whose course
	// set contains courseCode.
	InCourse(courseCode string) ([]*Summary, error)
	// Update merge-patches the student record that matches studentID.
	Update(studentID string, patch *Patch) error
	// Delete removes the student record that matches studentID.
	Delete(studentID string) error
	// RemoveCourse pulls courseCode from the student's course set.
	RemoveCourse(studentID string, courseCode string) error
	// Courses returns the student's course set projected alone.
	Courses(studentID string) ([]string, error)
}
