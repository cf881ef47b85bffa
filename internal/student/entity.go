package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcollege/registrar/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	idKey      = "_id"
	nameKey    = "name"
	emailKey   = "email"
	coursesKey = "courses"
)

// Student is a single student record. The ID is caller-assigned and immutable
// once created. Courses is stored as a plain list but treated as a set of
// course codes by the managers.
type Student struct {
	ID             string   `json:"_id" bson:"_id"`
	Name           string   `json:"name" bson:"name"`
	Email          string   `json:"email" bson:"email"`
	HashedPassword string   `json:"-" bson:"hashedPassword"`
	Courses        []string `json:"courses" bson:"courses"`
	CreatedAt      int64    `json:"createdAt" bson:"createdAt"`
}

// Summary is the roster projection of a student record.
type Summary struct {
	ID   string `json:"_id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// Patch is a merge patch for a student record. Nil fields are left untouched.
type Patch struct {
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	HashedPassword *string   `json:"-"`
	Courses        *[]string `json:"courses"`
}

func (p *Patch) setDoc() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set[nameKey] = *p.Name
	}
	if p.Email != nil {
		set[emailKey] = *p.Email
	}
	if p.HashedPassword != nil {
		set["hashedPassword"] = *p.HashedPassword
	}
	if p.Courses != nil {
		set[coursesKey] = *p.Courses
	}
	return set
}

// StudentRepository implements Repository.
type StudentRepository struct {
	ctx               context.Context
	studentCollection *mongo.Collection
}

// NewRepository creates a new instance of *StudentRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{
			Key:   emailKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	}

	// Create a unique index on the student collection.
	studentCollection := database.Collection("students")
	_, err := studentCollection.Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		return nil, err
	}

	return &StudentRepository{
		ctx:               ctx,
		studentCollection: studentCollection,
	}, nil
}

// Insert adds a new student record. Returns db.ErrorConflict if the student ID
// or email already exists.
// Implements Repository.
func (sr *StudentRepository) Insert(s *Student) error {
	if s.ID == "" || s.Email == "" {
		return fmt.Errorf("%w: missing student ID or email", db.ErrorInvalidRequest)
	}

	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().Unix()
	}

	_, err := sr.studentCollection.InsertOne(sr.ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: student with this ID or email already exists", db.ErrorConflict)
		}
		return fmt.Errorf("studentCollection.InsertOne error: %w", err)
	}

	return nil
}

// Student returns the student record that matches studentID.
// Implements Repository.
func (sr *StudentRepository) Student(studentID string) (*Student, error) {
	return sr.findOne(bson.M{idKey: studentID})
}

// StudentByName returns the first student record whose name matches name.
// Implements Repository.
func (sr *StudentRepository) StudentByName(name string) (*Student, error) {
	return sr.findOne(bson.M{nameKey: name})
}

// StudentByEmail returns the student record that matches email.
// Implements Repository.
func (sr *StudentRepository) StudentByEmail(email string) (*Student, error) {
	return sr.findOne(bson.M{emailKey: email})
}

func (sr *StudentRepository) findOne(filter bson.M) (*Student, error) {
	var s *Student
	err := sr.studentCollection.FindOne(sr.ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no student record matches", db.ErrorNotFound)
		}
		return nil, fmt.Errorf("studentCollection.FindOne error: %w", err)
	}
	return s, nil
}

// Students returns all student records.
// Implements Repository.
func (sr *StudentRepository) Students() ([]*Student, error) {
	cur, err := sr.studentCollection.Find(sr.ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Find error: %w", err)
	}

	var students []*Student
	return students, cur.All(sr.ctx, &students)
}

// Exists checks if a student with studentID exists.
// Implements Repository.
func (sr *StudentRepository) Exists(studentID string) (bool, error) {
	return sr.exists(bson.M{idKey: studentID})
}

// EmailExists checks if any student record holds email.
// Implements Repository.
func (sr *StudentRepository) EmailExists(email string) (bool, error) {
	return sr.exists(bson.M{emailKey: email})
}

// HasCourse checks that the student's course set contains courseCode, by
// membership query rather than by re-reading the full record.
// Implements Repository.
func (sr *StudentRepository) HasCourse(studentID string, courseCode string) (bool, error) {
	return sr.exists(bson.M{idKey: studentID, coursesKey: courseCode})
}

func (sr *StudentRepository) exists(filter bson.M) (bool, error) {
	n, err := sr.studentCollection.CountDocuments(sr.ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("studentCollection.CountDocuments error: %w", err)
	}
	return n > 0, nil
}

// InCourse returns the roster projection of every student whose course set
// contains courseCode.
// Implements Repository.
func (sr *StudentRepository) InCourse(courseCode string) ([]*Summary, error) {
	filter := bson.M{coursesKey: bson.M{"$in": []string{courseCode}}}
	projection := bson.M{idKey: 1, nameKey: 1}
	cur, err := sr.studentCollection.Find(sr.ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Find error: %w", err)
	}

	var roster []*Summary
	return roster, cur.All(sr.ctx, &roster)
}

// Update merge-patches the student record that matches studentID. Returns
// db.ErrorNotFound if no record matches.
// Implements Repository.
func (sr *StudentRepository) Update(studentID string, patch *Patch) error {
	set := patch.setDoc()
	if len(set) == 0 {
		return fmt.Errorf("%w: empty patch", db.ErrorInvalidRequest)
	}

	res, err := sr.studentCollection.UpdateOne(sr.ctx, bson.M{idKey: studentID}, bson.M{"$set": set}, options.Update().SetUpsert(false))
	if err != nil {
		return fmt.Errorf("studentCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}

	return nil
}

// Delete removes the student record that matches studentID. Returns
// db.ErrorNotFound if no record matches.
// Implements Repository.
func (sr *StudentRepository) Delete(studentID string) error {
	res, err := sr.studentCollection.DeleteOne(sr.ctx, bson.M{idKey: studentID})
	if err != nil {
		return fmt.Errorf("studentCollection.DeleteOne error: %w", err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}

	return nil
}

// RemoveCourse pulls courseCode from the student's course set, leaving all
// other fields untouched. Returns db.ErrorNotFound if no record matches.
// Implements Repository.
func (sr *StudentRepository) RemoveCourse(studentID string, courseCode string) error {
	update := bson.M{"$pull": bson.M{coursesKey: courseCode}}
	res, err := sr.studentCollection.UpdateOne(sr.ctx, bson.M{idKey: studentID}, update)
	if err != nil {
		return fmt.Errorf("studentCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
	}

	return nil
}

// Courses returns the student's course set projected alone. Returns
// db.ErrorNotFound if the student does not exist.
// Implements Repository.
func (sr *StudentRepository) Courses(studentID string) ([]string, error) {
	projection := bson.M{coursesKey: 1, idKey: 0}
	opts := options.FindOne().SetProjection(projection)

	var s *Student
	err := sr.studentCollection.FindOne(sr.ctx, bson.M{idKey: studentID}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no record found for student with ID %s", db.ErrorNotFound, studentID)
		}
		return nil, fmt.Errorf("studentCollection.FindOne error: %w", err)
	}

	return s.Courses, nil
}
