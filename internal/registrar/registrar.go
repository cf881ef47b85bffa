// Package registrar is the cross-entity consistency and mutation layer of the
// college records system. The four entity collections are stored without any
// foreign-key or schema constraint, so every write here confirms its
// preconditions (existence, uniqueness, membership) before mutating, and
// treats a store-level duplicate-key rejection on write as the authoritative
// conflict, overriding an earlier check that looked fine.
package registrar

import (
	"github.com/smartcollege/registrar/internal/course"
	"github.com/smartcollege/registrar/internal/grade"
	"github.com/smartcollege/registrar/internal/student"
	"github.com/smartcollege/registrar/internal/teacher"
)

// Registrar coordinates writes and reads across the student, teacher, course
// and grade collections.
type Registrar struct {
	students student.Repository
	teachers teacher.Repository
	courses  course.Repository
	grades   grade.Repository
	check    *IntegrityChecker
}

// New creates a new instance of *Registrar.
func New(students student.Repository, teachers teacher.Repository, courses course.Repository, grades grade.Repository) *Registrar {
	return &Registrar{
		students: students,
		teachers: teachers,
		courses:  courses,
		grades:   grades,
		check:    NewIntegrityChecker(students, teachers, courses, grades),
	}
}

// Checker returns the referential integrity checker backed by the same
// repositories as the registrar.
func (r *Registrar) Checker() *IntegrityChecker {
	return r.check
}

// dedupe returns values with duplicates removed, keeping first-seen order.
// Course code lists are stored as plain lists, so set semantics are enforced
// here rather than by the store.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
