package registrar

import (
	"fmt"

	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/db"
	"github.com/smartcollege/registrar/internal/grade"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// The fakes below mirror the store semantics the mongo-backed repositories
// rely on: no foreign keys, duplicate-key rejection on insert, pull removes
// every matching element. Setting err makes every call fail with it, which
// stands in for an unreachable store.

type memStudents struct {
	err     error
	records map[string]*student.Student
}

func newMemStudents() *memStudents {
	return &memStudents{records: make(map[string]*student.Student)}
}

func (m *memStudents) Insert(s *student.Student) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[s.ID]; ok {
		return fmt.Errorf("%w: student with this ID or email already exists", db.ErrorConflict)
	}
	for _, rec := range m.records {
		if rec.Email == s.Email {
			return fmt.Errorf("%w: student with this ID or email already exists", db.ErrorConflict)
		}
	}
	m.records[s.ID] = s
	return nil
}

func (m *memStudents) Student(studentID string) (*student.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.records[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: no student record matches", db.ErrorNotFound)
	}
	return s, nil
}

func (m *memStudents) StudentByName(name string) (*student.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.records {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: no student record matches", db.ErrorNotFound)
}

func (m *memStudents) StudentByEmail(email string) (*student.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.records {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: no student record matches", db.ErrorNotFound)
}

func (m *memStudents) Students() ([]*student.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	var students []*student.Student
	for _, s := range m.records {
		students = append(students, s)
	}
	return students, nil
}

func (m *memStudents) Exists(studentID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.records[studentID]
	return ok, nil
}

func (m *memStudents) EmailExists(email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, s := range m.records {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStudents) HasCourse(studentID string, courseCode string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	s, ok := m.records[studentID]
	if !ok {
		return false, nil
	}
	for _, code := range s.Courses {
		if code == courseCode {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStudents) InCourse(courseCode string) ([]*student.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var roster []*student.Summary
	for _, s := range m.records {
		for _, code := range s.Courses {
			if code == courseCode {
				roster = append(roster, &student.Summary{ID: s.ID, Name: s.Name})
				break
			}
		}
	}
	return roster, nil
}

func (m *memStudents) Update(studentID string, patch *student.Patch) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.records[studentID]
	if !ok {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.HashedPassword != nil {
		s.HashedPassword = *patch.HashedPassword
	}
	if patch.Courses != nil {
		s.Courses = *patch.Courses
	}
	return nil
}

func (m *memStudents) Delete(studentID string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[studentID]; !ok {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}
	delete(m.records, studentID)
	return nil
}

func (m *memStudents) RemoveCourse(studentID string, courseCode string) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.records[studentID]
	if !ok {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}
	var kept []string
	for _, code := range s.Courses {
		if code != courseCode {
			kept = append(kept, code)
		}
	}
	s.Courses = kept
	return nil
}

func (m *memStudents) Courses(studentID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.records[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}
	return s.Courses, nil
}

type memTeachers struct {
	err     error
	records map[string]*teacher.Teacher
}

func newMemTeachers() *memTeachers {
	return &memTeachers{records: make(map[string]*teacher.Teacher)}
}

func (m *memTeachers) Insert(t *teacher.Teacher) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[t.ID]; ok {
		return fmt.Errorf("%w: teacher with this ID or email already exists", db.ErrorConflict)
	}
	for _, rec := range m.records {
		if rec.Email == t.Email {
			return fmt.Errorf("%w: teacher with this ID or email already exists", db.ErrorConflict)
		}
	}
	m.records[t.ID] = t
	return nil
}

func (m *memTeachers) Teacher(teacherID string) (*teacher.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.records[teacherID]
	if !ok {
		return nil, fmt.Errorf("%w: no teacher record matches", db.ErrorNotFound)
	}
	return t, nil
}

func (m *memTeachers) TeacherByName(name string) (*teacher.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.records {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no teacher record matches", db.ErrorNotFound)
}

func (m *memTeachers) TeacherByEmail(email string) (*teacher.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.records {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no teacher record matches", db.ErrorNotFound)
}

func (m *memTeachers) Teachers() ([]*teacher.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	var teachers []*teacher.Teacher
	for _, t := range m.records {
		teachers = append(teachers, t)
	}
	return teachers, nil
}

func (m *memTeachers) Exists(teacherID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.records[teacherID]
	return ok, nil
}

func (m *memTeachers) EmailExists(email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, t := range m.records {
		if t.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTeachers) HasCourse(teacherID string, courseCode string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	t, ok := m.records[teacherID]
	if !ok {
		return false, nil
	}
	for _, code := range t.Courses {
		if code == courseCode {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTeachers) InCourse(courseCode string) ([]*teacher.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var staff []*teacher.Summary
	for _, t := range m.records {
		for _, code := range t.Courses {
			if code == courseCode {
				staff = append(staff, &teacher.Summary{Name: t.Name})
				break
			}
		}
	}
	return staff, nil
}

func (m *memTeachers) Update(teacherID string, patch *teacher.Patch) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.records[teacherID]
	if !ok {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.HashedPassword != nil {
		t.HashedPassword = *patch.HashedPassword
	}
	if patch.Courses != nil {
		t.Courses = *patch.Courses
	}
	return nil
}

func (m *memTeachers) Delete(teacherID string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[teacherID]; !ok {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}
	delete(m.records, teacherID)
	return nil
}

func (m *memTeachers) RemoveCourse(teacherID string, courseCode string) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.records[teacherID]
	if !ok {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}
	var kept []string
	for _, code := range t.Courses {
		if code != courseCode {
			kept = append(kept, code)
		}
	}
	t.Courses = kept
	return nil
}

func (m *memTeachers) Courses(teacherID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.records[teacherID]
	if !ok {
		return nil, fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}
	return t.Courses, nil
}

type memCourses struct {
	err     error
	records map[string]*course.Course
}

func newMemCourses() *memCourses {
	return &memCourses{records: make(map[string]*course.Course)}
}

func (m *memCourses) Insert(c *course.Course) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[c.CourseCode]; ok {
		return fmt.Errorf("%w: course code or course name already exists", db.ErrorConflict)
	}
	for _, rec := range m.records {
		if rec.CourseName == c.CourseName {
			return fmt.Errorf("%w: course code or course name already exists", db.ErrorConflict)
		}
	}
	m.records[c.CourseCode] = c
	return nil
}

func (m *memCourses) Course(courseCode string) (*course.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return nil, fmt.Errorf("%w: no course record matches", db.ErrorNotFound)
	}
	return c, nil
}

func (m *memCourses) CourseByName(courseName string) (*course.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.records {
		if c.CourseName == courseName {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no course record matches", db.ErrorNotFound)
}

func (m *memCourses) Courses() ([]*course.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	var courses []*course.Course
	for _, c := range m.records {
		courses = append(courses, c)
	}
	return courses, nil
}

func (m *memCourses) Exists(courseCode string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.records[courseCode]
	return ok, nil
}

func (m *memCourses) NameExists(courseName string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, c := range m.records {
		if c.CourseName == courseName {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCourses) HasTask(courseCode string, taskType string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return false, nil
	}
	for _, t := range c.Tasks {
		if t.Type == taskType {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCourses) Update(courseCode string, patch *course.Patch) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	if patch.CourseName != nil {
		c.CourseName = *patch.CourseName
	}
	if patch.Department != nil {
		c.Department = *patch.Department
	}
	return nil
}

func (m *memCourses) Delete(courseCode string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[courseCode]; !ok {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	delete(m.records, courseCode)
	return nil
}

func (m *memCourses) AppendTask(courseCode string, t *course.Task) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	c.Tasks = append(c.Tasks, t)
	return nil
}

func (m *memCourses) PullTask(courseCode string, taskType string) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	var kept []*course.Task
	for _, t := range c.Tasks {
		if t.Type != taskType {
			kept = append(kept, t)
		}
	}
	c.Tasks = kept
	return nil
}

func (m *memCourses) Tasks(courseCode string) ([]*course.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.records[courseCode]
	if !ok {
		return nil, fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}
	return c.Tasks, nil
}

type memGrades struct {
	err     error
	records []*grade.Grade
}

func newMemGrades() *memGrades {
	return &memGrades{}
}

func (m *memGrades) Insert(g *grade.Grade) error {
	if m.err != nil {
		return m.err
	}
	for _, rec := range m.records {
		if rec.StudentID == g.StudentID && rec.CourseID == g.CourseID && rec.GradeType == g.GradeType {
			return fmt.Errorf("%w: a grade already exists for this student, course and grade type", db.ErrorConflict)
		}
	}
	m.records = append(m.records, g)
	return nil
}

func (m *memGrades) Exists(key grade.Key) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, rec := range m.records {
		if rec.StudentID == key.StudentID && rec.CourseID == key.CourseID && rec.GradeType == key.GradeType {
			return true, nil
		}
	}
	return false, nil
}

func (m *memGrades) Update(key grade.Key, patch *grade.Patch) error {
	if m.err != nil {
		return m.err
	}
	for _, rec := range m.records {
		if rec.StudentID == key.StudentID && rec.CourseID == key.CourseID && rec.GradeType == key.GradeType {
			if patch.Score != nil {
				rec.Score = *patch.Score
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no grade record matches student %s, course %s, type %s", db.ErrorNotFound, key.StudentID, key.CourseID, key.GradeType)
}

func (m *memGrades) ForCourse(courseID string) ([]*grade.Grade, error) {
	if m.err != nil {
		return nil, m.err
	}
	var grades []*grade.Grade
	for _, rec := range m.records {
		if rec.CourseID == courseID {
			grades = append(grades, rec)
		}
	}
	return grades, nil
}

func (m *memGrades) ForStudentInCourse(studentID string, courseID string) ([]*grade.Grade, error) {
	if m.err != nil {
		return nil, m.err
	}
	var grades []*grade.Grade
	for _, rec := range m.records {
		if rec.StudentID == studentID && rec.CourseID == courseID {
			grades = append(grades, rec)
		}
	}
	return grades, nil
}

type testRepos struct {
	students *memStudents
	teachers *memTeachers
	courses  *memCourses
	grades   *memGrades
}

func newTestRegistrar() (*Registrar, *testRepos) {
	repos := &testRepos{
		students: newMemStudents(),
		teachers: newMemTeachers(),
		courses:  newMemCourses(),
		grades:   newMemGrades(),
	}
	return New(repos.students, repos.teachers, repos.courses, repos.grades), repos
}

func (tr *testRepos) addCourse(courseCode, courseName string) *course.Course {
	c := &course.Course{ID: courseCode, CourseCode: courseCode, CourseName: courseName, Department: "CS"}
	tr.courses.records[courseCode] = c
	return c
}

func (tr *testRepos) addStudent(id, name, email string, courses ...string) *student.Student {
	s := &student.Student{ID: id, Name: name, Email: email, Courses: courses}
	tr.students.records[id] = s
	return s
}

func (tr *testRepos) addTeacher(id, name, email string, courses ...string) *teacher.Teacher {
	t := &teacher.Teacher{ID: id, Name: name, Email: email, Courses: courses}
	tr.teachers.records[id] = t
	return t
}
