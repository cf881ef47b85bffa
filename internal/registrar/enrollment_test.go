package registrar

import (
	"errors"
	"testing"

	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
	"github.com/stretchr/testify/require"
)

func TestAddStudent(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addCourse("CS101", "Intro to Computer Science")

	err := reg.AddStudent(&student.Student{ID: "S1", Name: "Ada", Email: "ada@college.edu", Courses: []string{"CS101"}})
	require.NoError(t, err)
	require.Len(t, repos.students.records, 1)

	// Duplicate ID.
	err = reg.AddStudent(&student.Student{ID: "S1", Name: "Eve", Email: "eve@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)

	// Duplicate email.
	err = reg.AddStudent(&student.Student{ID: "S2", Name: "Eve", Email: "ada@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)

	// Unknown initial course.
	err = reg.AddStudent(&student.Student{ID: "S2", Name: "Eve", Email: "eve@college.edu", Courses: []string{"CS999"}})
	require.ErrorIs(t, err, db.ErrorNotFound)
	require.Len(t, repos.students.records, 1)

	// Missing required fields.
	err = reg.AddStudent(&student.Student{Name: "Eve"})
	require.ErrorIs(t, err, db.ErrorInvalidRequest)
}

func TestAddStudentDeduplicatesCourseList(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addCourse("CS101", "Intro to Computer Science")

	err := reg.AddStudent(&student.Student{ID: "S1", Name: "Ada", Email: "ada@college.edu", Courses: []string{"CS101", "CS101"}})
	require.NoError(t, err)
	require.Equal(t, []string{"CS101"}, repos.students.records["S1"].Courses)
}

func TestAddTeacher(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addCourse("CS101", "Intro to Computer Science")

	err := reg.AddTeacher(&teacher.Teacher{ID: "T1", Name: "Grace", Email: "grace@college.edu", Courses: []string{"CS101"}})
	require.NoError(t, err)

	err = reg.AddTeacher(&teacher.Teacher{ID: "T1", Name: "Alan", Email: "alan@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)

	err = reg.AddTeacher(&teacher.Teacher{ID: "T2", Name: "Alan", Email: "grace@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)

	err = reg.AddTeacher(&teacher.Teacher{ID: "T2", Name: "Alan", Email: "alan@college.edu", Courses: []string{"CS404"}})
	require.ErrorIs(t, err, db.ErrorNotFound)
}

func TestAddStudentStoreConflictIsAuthoritative(t *testing.T) {
	// A duplicate-key rejection on the insert itself must surface as a
	// conflict even when the earlier uniqueness checks passed. Simulate the
	// lost check-then-act race by inserting behind the registrar's back.
	reg, repos := newTestRegistrar()

	repos.addStudent("S1", "Ada", "ada@college.edu")
	err := repos.students.Insert(&student.Student{ID: "S1", Email: "other@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)

	err = reg.AddStudent(&student.Student{ID: "S2", Name: "Eve", Email: "ada@college.edu"})
	require.ErrorIs(t, err, db.ErrorConflict)
}

func TestAddStudentTransientStoreFailure(t *testing.T) {
	reg, repos := newTestRegistrar()
	storeDown := errors.New("server selection timeout")
	repos.students.err = storeDown

	err := reg.AddStudent(&student.Student{ID: "S1", Name: "Ada", Email: "ada@college.edu"})
	require.ErrorIs(t, err, storeDown)
	require.NotErrorIs(t, err, db.ErrorNotFound)
	require.NotErrorIs(t, err, db.ErrorConflict)
}

func TestUpdateStudent(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addStudent("S1", "Ada", "ada@college.edu")

	newName := "Ada Lovelace"
	err := reg.UpdateStudent("S1", &student.Patch{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, repos.students.records["S1"].Name)
	require.Equal(t, "ada@college.edu", repos.students.records["S1"].Email)

	err = reg.UpdateStudent("S2", &student.Patch{Name: &newName})
	require.ErrorIs(t, err, db.ErrorNotFound)
}

func TestDeleteStudent(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addStudent("S1", "Ada", "ada@college.edu")

	id, err := reg.DeleteStudent("S1")
	require.NoError(t, err)
	require.Equal(t, "S1", id)
	require.Empty(t, repos.students.records)

	_, err = reg.DeleteStudent("S1")
	require.ErrorIs(t, err, db.ErrorNotFound)
}

func TestDeleteTeacher(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addTeacher("T1", "Grace", "grace@college.edu")

	id, err := reg.DeleteTeacher("T1")
	require.NoError(t, err)
	require.Equal(t, "T1", id)

	_, err = reg.DeleteTeacher("T1")
	require.ErrorIs(t, err, db.ErrorNotFound)
}

func TestRemoveCourseFromStudent(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addStudent("S1", "Ada", "ada@college.edu", "CS101", "MA201")

	err := reg.RemoveCourseFromStudent("S1", "CS101")
	require.NoError(t, err)
	require.Equal(t, []string{"MA201"}, repos.students.records["S1"].Courses)

	// Removing a course the student does not have fails instead of silently
	// succeeding, even when the course itself does not exist anywhere.
	err = reg.RemoveCourseFromStudent("S1", "CS101")
	require.ErrorIs(t, err, db.ErrorNotFound)
	require.Equal(t, []string{"MA201"}, repos.students.records["S1"].Courses)

	err = reg.RemoveCourseFromStudent("S2", "MA201")
	require.ErrorIs(t, err, db.ErrorNotFound)
}

func TestRemoveCourseFromTeacher(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addTeacher("T1", "Grace", "grace@college.edu", "CS101")

	err := reg.RemoveCourseFromTeacher("T1", "CS999")
	require.ErrorIs(t, err, db.ErrorNotFound)

	err = reg.RemoveCourseFromTeacher("T1", "CS101")
	require.NoError(t, err)
	require.Empty(t, repos.teachers.records["T1"].Courses)
}

func TestEntityCourses(t *testing.T) {
	reg, repos := newTestRegistrar()
	repos.addStudent("S1", "Ada", "ada@college.edu", "CS101")
	repos.addTeacher("T1", "Grace", "grace@college.edu", "CS101", "MA201")

	courses, err := reg.StudentCourses("S1")
	require.NoError(t, err)
	require.Equal(t, []string{"CS101"}, courses)

	courses, err = reg.TeacherCourses("T1")
	require.NoError(t, err)
	require.Equal(t, []string{"CS101", "MA201"}, courses)

	_, err = reg.StudentCourses("S2")
	require.ErrorIs(t, err, db.ErrorNotFound)

	_, err = reg.TeacherCourses("T2")
	require.ErrorIs(t, err, db.ErrorNotFound)
}
