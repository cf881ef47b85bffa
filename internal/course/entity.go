package course

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcollege/registrar/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	idKey            = "_id"
	codeKey          = "courseCode"
	nameKey          = "courseName"
	departmentKey    = "department"
	tasksKey         = "tasks"
	taskTypeKey      = "tasks.type"
	lastUpdatedAtKey = "lastUpdatedAt"
)

// Course is a single course record. The course code is the primary business
// key; both the code and the course name are globally unique.
type Course struct {
	ID            string  `json:"_id" bson:"_id"`
	CourseCode    string  `json:"courseCode" bson:"courseCode"`
	CourseName    string  `json:"courseName" bson:"courseName"`
	Department    string  `json:"department" bson:"department"`
	Tasks         []*Task `json:"tasks" bson:"tasks"`
	CreatedAt     int64   `json:"createdAt" bson:"createdAt"`
	LastUpdatedAt int64   `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
}

// Task is a course assignment entry. Type is unique within the owning
// course's task list; the list keeps insertion order.
type Task struct {
	Type string `json:"type" bson:"type"`
	Path string `json:"path" bson:"path"`
}

// Patch is a merge patch for a course record. Nil fields are left untouched.
type Patch struct {
	CourseName *string `json:"courseName"`
	Department *string `json:"department"`
}

func (p *Patch) setDoc() bson.M {
	set := bson.M{}
	if p.CourseName != nil {
		set[nameKey] = *p.CourseName
	}
	if p.Department != nil {
		set[departmentKey] = *p.Department
	}
	return set
}

// CourseRepository implements Repository.
type CourseRepository struct {
	ctx              context.Context
	courseCollection *mongo.Collection
}

// NewRepository creates a new instance of *CourseRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	courseIndexes := []mongo.IndexModel{{
		Keys: bson.D{{
			Key:   codeKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys: bson.D{{
			Key:   nameKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	}}

	// Create unique indexes on the course collection.
	courseCollection := database.Collection("courses")
	_, err := courseCollection.Indexes().CreateMany(ctx, courseIndexes)
	if err != nil {
		return nil, err
	}

	return &CourseRepository{
		ctx:              ctx,
		courseCollection: courseCollection,
	}, nil
}

// Insert adds a new course record. Returns db.ErrorConflict if the course
// code or course name already exists.
// Implements Repository.
func (cr *CourseRepository) Insert(c *Course) error {
	if c.CourseCode == "" || c.CourseName == "" {
		return fmt.Errorf("%w: missing course code or course name", db.ErrorInvalidRequest)
	}

	nowUnix := time.Now().Unix()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = nowUnix
	}
	c.LastUpdatedAt = nowUnix

	_, err := cr.courseCollection.InsertOne(cr.ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: course code or course name already exists", db.ErrorConflict)
		}
		return fmt.Errorf("courseCollection.InsertOne error: %w", err)
	}

	return nil
}

// Course returns the course record that matches courseCode.
// Implements Repository.
func (cr *CourseRepository) Course(courseCode string) (*Course, error) {
	return cr.findOne(bson.M{codeKey: courseCode})
}

// CourseByName returns the course record that matches courseName.
// Implements Repository.
func (cr *CourseRepository) CourseByName(courseName string) (*Course, error) {
	return cr.findOne(bson.M{nameKey: courseName})
}

func (cr *CourseRepository) findOne(filter bson.M) (*Course, error) {
	var c *Course
	err := cr.courseCollection.FindOne(cr.ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no course record matches", db.ErrorNotFound)
		}
		return nil, fmt.Errorf("courseCollection.FindOne error: %w", err)
	}
	return c, nil
}

// Courses returns all course records.
// Implements Repository.
func (cr *CourseRepository) Courses() ([]*Course, error) {
	cur, err := cr.courseCollection.Find(cr.ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("courseCollection.Find error: %w", err)
	}

	var courses []*Course
	return courses, cur.All(cr.ctx, &courses)
}

// Exists checks if a course with courseCode exists.
// Implements Repository.
func (cr *CourseRepository) Exists(courseCode string) (bool, error) {
	return cr.exists(bson.M{codeKey: courseCode})
}

// NameExists checks if any course record holds courseName.
// Implements Repository.
func (cr *CourseRepository) NameExists(courseName string) (bool, error) {
	return cr.exists(bson.M{nameKey: courseName})
}

// HasTask checks that the course's task list contains a task of taskType.
// Implements Repository.
func (cr *CourseRepository) HasTask(courseCode string, taskType string) (bool, error) {
	return cr.exists(bson.M{codeKey: courseCode, taskTypeKey: bson.M{"$in": []string{taskType}}})
}

func (cr *CourseRepository) exists(filter bson.M) (bool, error) {
	n, err := cr.courseCollection.CountDocuments(cr.ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("courseCollection.CountDocuments error: %w", err)
	}
	return n > 0, nil
}

// Update merge-patches the course record that matches courseCode. Returns
// db.ErrorNotFound if no record matches.
// Implements Repository.
func (cr *CourseRepository) Update(courseCode string, patch *Patch) error {
	set := patch.setDoc()
	if len(set) == 0 {
		return fmt.Errorf("%w: empty patch", db.ErrorInvalidRequest)
	}
	set[lastUpdatedAtKey] = time.Now().Unix()

	res, err := cr.courseCollection.UpdateOne(cr.ctx, bson.M{codeKey: courseCode}, bson.M{"$set": set}, options.Update().SetUpsert(false))
	if err != nil {
		return fmt.Errorf("courseCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return nil
}

// Delete removes the course record that matches courseCode. Returns
// db.ErrorNotFound if no record matches. Course references held by students,
// teachers and grade records are not cleaned up.
// Implements Repository.
func (cr *CourseRepository) Delete(courseCode string) error {
	res, err := cr.courseCollection.DeleteOne(cr.ctx, bson.M{codeKey: courseCode})
	if err != nil {
		return fmt.Errorf("courseCollection.DeleteOne error: %w", err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return nil
}

// AppendTask appends t to the course's task list. Returns db.ErrorNotFound if
// no record matches courseCode.
// Implements Repository.
func (cr *CourseRepository) AppendTask(courseCode string, t *Task) error {
	update := bson.M{
		"$push": bson.M{tasksKey: t},
		"$set":  bson.M{lastUpdatedAtKey: time.Now().Unix()},
	}
	res, err := cr.courseCollection.UpdateOne(cr.ctx, bson.M{codeKey: courseCode}, update)
	if err != nil {
		return fmt.Errorf("courseCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return nil
}

// PullTask removes every task entry whose type equals taskType from the
// course's task list. Pulling a type the course does not have is a no-op.
// Returns db.ErrorNotFound if no record matches courseCode.
// Implements Repository.
func (cr *CourseRepository) PullTask(courseCode string, taskType string) error {
	update := bson.M{
		"$pull": bson.M{tasksKey: bson.M{"type": taskType}},
		"$set":  bson.M{lastUpdatedAtKey: time.Now().Unix()},
	}
	res, err := cr.courseCollection.UpdateOne(cr.ctx, bson.M{codeKey: courseCode}, update)
	if err != nil {
		return fmt.Errorf("courseCollection.UpdateOne error: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
	}

	return nil
}

// Tasks returns the course's task list projected alone. Returns
// db.ErrorNotFound if the course does not exist.
// Implements Repository.
func (cr *CourseRepository) Tasks(courseCode string) ([]*Task, error) {
	projection := bson.M{tasksKey: 1, idKey: 0}
	opts := options.FindOne().SetProjection(projection)

	var c *Course
	err := cr.courseCollection.FindOne(cr.ctx, bson.M{codeKey: courseCode}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no record found for course with code %s", db.ErrorNotFound, courseCode)
		}
		return nil, fmt.Errorf("courseCollection.FindOne error: %w", err)
	}

	return c.Tasks, nil
}
