package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const jobsCollection = "jobs"

const listCap = 100

// MongoStore is the MongoDB-backed posting store.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed job store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(jobsCollection)}
}

func (s *MongoStore) Get(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	err := s.col.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (s *MongoStore) Create(ctx context.Context, job *Job) error {
	if _, err := s.col.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, jobID string, draft Draft) error {
	update := bson.M{
		"title":               draft.Title,
		"description":         draft.Description,
		"company_name":        draft.CompanyName,
		"location":            draft.Location,
		"salary_min":          draft.SalaryMin,
		"salary_max":          draft.SalaryMax,
		"job_type":            draft.Type,
		"required_skills":     draft.RequiredSkills,
		"experience_required": draft.ExperienceRequired,
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"job_id": jobID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *MongoStore) SetStatus(ctx context.Context, jobID string, status JobStatus, approvedAt *time.Time) error {
	update := bson.M{"status": status}
	if approvedAt != nil {
		update["approved_at"] = *approvedAt
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"job_id": jobID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to set job status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, filter Filter) ([]Job, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.Type != "" {
		query["job_type"] = filter.Type
	}
	if len(filter.Skills) > 0 {
		query["required_skills"] = bson.M{"$in": filter.Skills}
	}
	if filter.SalaryMin > 0 {
		query["salary_min"] = bson.M{"$gte": filter.SalaryMin}
	}
	return s.find(ctx, query)
}

func (s *MongoStore) ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error) {
	return s.find(ctx, bson.M{"recruiter_id": recruiterID})
}

func (s *MongoStore) CountByStatus(ctx context.Context, status JobStatus) (int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	count, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (s *MongoStore) find(ctx context.Context, query bson.M) ([]Job, error) {
	opts := options.Find().
		SetSort(bson.M{"posted_at": -1}).
		SetLimit(listCap)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var result []Job
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return result, nil
}
