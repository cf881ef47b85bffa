package grade

type Repository interface {
	// Insert adds a new ledger record. Returns db.ErrorConflict if a record
	// already holds the same (studentId, courseId, gradeType) triple.
	Insert(g *Grade) error
	// Exists checks if a ledger record holds the full compound key.
	Exists(key Key) (bool, error)
	// Update merge-patches the single ledger record that matches the full
	// compound key.
	Update(key Key, patch *Patch) error
	// ForCourse returns every ledger record whose courseId matches courseID.
	ForCourse(courseID string) ([]*Grade, error)
	// ForStudentInCourse returns the possibly empty sequence of a student's
	// ledger records in a course.
	ForStudentInCourse(studentID string, courseID string) ([]*Grade, error)
}
