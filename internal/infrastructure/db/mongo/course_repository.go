package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradebook/portal/internal/core/domain"
)

const courseCollection = "courses"

// CourseRepository implements ports.CourseRepository using MongoDB.
// Course ids are the document _id, stored as strings.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(courseCollection)}
}

type mongoCourse struct {
	ID       string   `bson:"_id"`
	Code     string   `bson:"code"`
	Title    string   `bson:"title"`
	Teacher  string   `bson:"teacher"`
	Students []string `bson:"students,omitempty"`
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCourse
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, domain.Course{
			ID:       d.ID,
			Code:     d.Code,
			Title:    d.Title,
			Teacher:  d.Teacher,
			Students: d.Students,
		})
	}
	return courses, nil
}
