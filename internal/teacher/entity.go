package teacher

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

// Teacher is a single teacher record. The ID is caller-assigned and immutable
// once created. Courses holds the codes of the courses this teacher teaches.
type Teacher struct {
	ID             string   `json:"_id" bson:"_id"`
	Name           string   `json:"name" bson:"name"`
	Email          string   `json:"email" bson:"email"`
	HashedPassword string   `json:"-" bson:"hashedPassword"`
	Courses        []string `json:"courses" bson:"courses"`
	CreatedAt      int64    `json:"createdAt" bson:"createdAt"`
}

// Summary is the teaching staff projection of a teacher record.
type Summary struct {
	Name string `json:"name" bson:"name"`
}

// Patch is a merge patch for a teacher record. Nil fields are left untouched.
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

// TeacherRepository implements Repository.
type TeacherRepository struct {
	ctx               context.Context
	teacherCollection *mongo.Collection
}

// NewRepository creates a new instance of *TeacherRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{
			Key:   emailKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	}

	// Create a unique index on the teacher collection.
	teacherCollection := database.Collection("teachers")
	_, err := teacherCollection.Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		return nil, err
	}

	return &TeacherRepository{
		ctx:               ctx,
		teacherCollection: teacherCollection,
	}, nil
}

// Insert adds a new teacher record. Returns db.ErrorConflict if the teacher ID
// or email already exists.
// Implements Repository.
func (tr *TeacherRepository) Insert(t *Teacher) error {
	if t.ID == "" || t.Email == "" {
		return fmt.Errorf("%w: missing teacher ID or email", db.ErrorInvalidRequest)
	}

	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	_, err := tr.teacherCollection.InsertOne(tr.ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: teacher with this ID or email already exists", db.ErrorConflict)
		}
		return fmt.Errorf("teacherCollection.InsertOne error: %w", err)
	}

	return nil
}

// Teacher returns the teacher record that matches teacherID.
// Implements Repository.
func (tr *TeacherRepository) Teacher(teacherID string) (*Teacher, error) {
	return tr.findOne(bson.M{idKey: teacherID})
}

// TeacherByName returns the first teacher record whose name matches name.
// Implements Repository.
func (tr *TeacherRepository) TeacherByName(name string) (*Teacher, error) {
	return tr.findOne(bson.M{nameKey: name})
}

// TeacherByEmail returns the teacher record that matches email.
// Implements Repository.
func (tr *TeacherRepository) TeacherByEmail(email string) (*Teacher, error) {
	return tr.findOne(bson.M{emailKey: email})
}

func (tr *TeacherRepository) findOne(filter bson.M) (*Teacher, error) {
	var t *Teacher
	err := tr.teacherCollection.FindOne(tr.ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no teacher record matches", db.ErrorNotFound)
		}
		return nil, fmt.Errorf("teacherCollection.FindOne error: %w", err)
	}
	return t, nil
}

// Teachers returns all teacher records.
// Implements Repository.
func (tr *TeacherRepository) Teachers() ([]*Teacher, error) {
	cur, err := tr.teacherCollection.Find(tr.ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("teacherCollection.Find error: %w", err)
	}

	var teachers []*Teacher
	return teachers, cur.All(tr.ctx, &teachers)
}

// Exists checks if a teacher with teacherID exists.
// Implements Repository.
func (tr *TeacherRepository) Exists(teacherID string) (bool, error) {
	return tr.exists(bson.M{idKey: teacherID})
}

// EmailExists checks if any teacher record holds email.
// Implements Repository.
func (tr *TeacherRepository) EmailExists(email string) (bool, error) {
	return tr.exists(bson.M{emailKey: email})
}

// HasCourse checks that the teacher's course set contains courseCode.
// Implements Repository.
func (tr *TeacherRepository) HasCourse(teacherID string, courseCode string) (bool, error) {
	return tr.exists(bson.M{idKey: teacherID, coursesKey: courseCode})
}

func (tr *TeacherRepository) exists(filter bson.M) (bool, error) {
	n, err := tr.teacherCollection.CountDocuments(tr.ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("teacherCollection.CountDocuments error: %w", err)
	}
	return n > 0, nil
}

// InCourse returns the name projection of every teacher whose course set
// contains courseCode.
// Implements Repository.
func (tr *TeacherRepository) InCourse(courseCode string) ([]*Summary, error) {
	filter := bson.M{coursesKey: bson.M{"$in": []string{courseCode}}}
	projection := bson.M{idKey: 0, nameKey: 1}
	cur, err := tr.teacherCollection.Find(tr.ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("teacherCollection.Find error: %w", err)
	}

	var staff []*Summary
	return staff, cur.All(tr.ctx, &staff)
}

// Update merge-patches the teacher record that matches teacherID. Returns
// db.ErrorNotFound if no record matches.
// Implements Repository.
func (tr *TeacherRepository) Update(teacherID string, patch *Patch) error {
	set := patch.setDoc()
	if len(set) == 0 {
		return fmt.Errorf("%w: empty patch", db.ErrorInvalidRequest)
	}

	res, err := tr.teacherCollection.UpdateOne(tr.ctx, bson.M{idKey: teacherID}, bson.M{"$set": set}, options.Update().SetUpsert(false))
	if err != nil {
		return fmt.Errorf("teacherCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}

	return nil
}

// Delete removes the teacher record that matches teacherID. Returns
// db.ErrorNotFound if no record matches.
// Implements Repository.
func (tr *TeacherRepository) Delete(teacherID string) error {
	res, err := tr.teacherCollection.DeleteOne(tr.ctx, bson.M{idKey: teacherID})
	if err != nil {
		return fmt.Errorf("teacherCollection.DeleteOne error: %w", err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}

	return nil
}

// RemoveCourse pulls courseCode from the teacher's course set, leaving all
// other fields untouched. Returns db.ErrorNotFound if no record matches.
// Implements Repository.
func (tr *TeacherRepository) RemoveCourse(teacherID string, courseCode string) error {
	update := bson.M{"$pull": bson.M{coursesKey: courseCode}}
	res, err := tr.teacherCollection.UpdateOne(tr.ctx, bson.M{idKey: teacherID}, update)
	if err != nil {
		return fmt.Errorf("teacherCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
	}

	return nil
}

// Courses returns the teacher's course set projected alone. Returns
// db.ErrorNotFound if the teacher does not exist.
// Implements Repository.
func (tr *TeacherRepository) Courses(teacherID string) ([]string, error) {
	projection := bson.M{coursesKey: 1, idKey: 0}
	opts := options.FindOne().SetProjection(projection)

	var t *Teacher
	err := tr.teacherCollection.FindOne(tr.ctx, bson.M{idKey: teacherID}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no record found for teacher with ID %s", db.ErrorNotFound, teacherID)
		}
		return nil, fmt.Errorf("teacherCollection.FindOne error: %w", err)
	}

	return t.Courses, nil
}
