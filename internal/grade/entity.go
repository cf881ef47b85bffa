package grade

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcollege/registrar/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	idKey        = "_id"
	studentIDKey = "studentId"
	courseIDKey  = "courseId"
	gradeTypeKey = "gradeType"
	scoreKey     = "score"
)

// Grade is a single ledger record. At most one record may exist for a given
// (studentId, courseId, gradeType) triple; the compound unique index on the
// collection is the authoritative backstop for that rule.
type Grade struct {
	ID        string  `json:"_id" bson:"_id"`
	StudentID string  `json:"studentId" bson:"studentId"`
	CourseID  string  `json:"courseId" bson:"courseId"`
	GradeType string  `json:"gradeType" bson:"gradeType"`
	Score     float64 `json:"score" bson:"score"`
	CreatedAt int64   `json:"createdAt" bson:"createdAt"`
}

// Key is the compound identity of a ledger record.
type Key struct {
	StudentID string
	CourseID  string
	GradeType string
}

func (k Key) filter() bson.M {
	return bson.M{studentIDKey: k.StudentID, courseIDKey: k.CourseID, gradeTypeKey: k.GradeType}
}

// Patch is a merge patch for a ledger record. Nil fields are left untouched.
type Patch struct {
	Score *float64 `json:"score"`
}

// GradeRepository implements Repository.
type GradeRepository struct {
	ctx             context.Context
	gradeCollection *mongo.Collection
}

// NewRepository creates a new instance of *GradeRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	compoundKeyIndex := mongo.IndexModel{
		Keys: bson.D{{
			Key:   studentIDKey,
			Value: 1,
		}, {
			Key:   courseIDKey,
			Value: 1,
		}, {
			Key:   gradeTypeKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	}

	// Create a unique compound index on the grade collection.
	gradeCollection := database.Collection("grades")
	_, err := gradeCollection.Indexes().CreateOne(ctx, compoundKeyIndex)
	if err != nil {
		return nil, err
	}

	return &GradeRepository{
		ctx:             ctx,
		gradeCollection: gradeCollection,
	}, nil
}

// Insert adds a new ledger record. Returns db.ErrorConflict if a record
// already holds the same (studentId, courseId, gradeType) triple.
// Implements Repository.
func (gr *GradeRepository) Insert(g *Grade) error {
	if g.StudentID == "" || g.CourseID == "" || g.GradeType == "" {
		return fmt.Errorf("%w: missing student ID, course ID or grade type", db.ErrorInvalidRequest)
	}

	if g.ID == "" {
		g.ID = primitive.NewObjectID().Hex()
	}
	if g.CreatedAt == 0 {
		g.CreatedAt = time.Now().Unix()
	}

	_, err := gr.gradeCollection.InsertOne(gr.ctx, g)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: a grade already exists for this student, course and grade type", db.ErrorConflict)
		}
		return fmt.Errorf("gradeCollection.InsertOne error: %w", err)
	}

	return nil
}

// Exists checks if a ledger record holds the full compound key.
// Implements Repository.
func (gr *GradeRepository) Exists(key Key) (bool, error) {
	n, err := gr.gradeCollection.CountDocuments(gr.ctx, key.filter(), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("gradeCollection.CountDocuments error: %w", err)
	}
	return n > 0, nil
}

// Update merge-patches the single ledger record that matches the full
// compound key. Returns db.ErrorNotFound if no record matches.
// Implements Repository.
func (gr *GradeRepository) Update(key Key, patch *Patch) error {
	if patch.Score == nil {
		return fmt.Errorf("%w: empty patch", db.ErrorInvalidRequest)
	}

	update := bson.M{"$set": bson.M{scoreKey: *patch.Score}}
	res, err := gr.gradeCollection.UpdateOne(gr.ctx, key.filter(), update, options.Update().SetUpsert(false))
	if err != nil {
		return fmt.Errorf("gradeCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no grade record matches student %s, course %s, type %s", db.ErrorNotFound, key.StudentID, key.CourseID, key.GradeType)
	}

	return nil
}

// ForCourse returns every ledger record whose courseId matches courseID. An
// empty sequence is not an error.
// Implements Repository.
func (gr *GradeRepository) ForCourse(courseID string) ([]*Grade, error) {
	return gr.find(bson.M{courseIDKey: courseID})
}

// ForStudentInCourse returns the possibly empty sequence of a student's
// ledger records in a course.
// Implements Repository.
func (gr *GradeRepository) ForStudentInCourse(studentID string, courseID string) ([]*Grade, error) {
	return gr.find(bson.M{studentIDKey: studentID, courseIDKey: courseID})
}

func (gr *GradeRepository) find(filter bson.M) ([]*Grade, error) {
	cur, err := gr.gradeCollection.Find(gr.ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gradeCollection.Find error: %w", err)
	}

	var grades []*Grade
	return grades, cur.All(gr.ctx, &grades)
}
