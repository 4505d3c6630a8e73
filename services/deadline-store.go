package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rajputritesh1907/taskbackend/models"
)

// DeadlineStore runs the deadline scanner's read-only queries.
type DeadlineStore struct {
	Projects *mongo.Collection
	Tasks    *mongo.Collection
	Users    *mongo.Collection
}

func NewDeadlineStore(projects, tasks, users *mongo.Collection) *DeadlineStore {
	return &DeadlineStore{Projects: projects, Tasks: tasks, Users: users}
}

// ActiveProjectsDueFilter matches active projects whose deadline falls
// in [from, to]. On-hold and completed projects never match.
func ActiveProjectsDueFilter(from, to time.Time) bson.M {
	return bson.M{
		"status":   models.ProjectActive,
		"deadline": bson.M{"$gte": from, "$lte": to},
	}
}

// UnfinishedTasksDueFilter matches tasks not yet done whose due date
// falls in [from, to].
func UnfinishedTasksDueFilter(from, to time.Time) bson.M {
	return bson.M{
		"status":  bson.M{"$ne": models.TaskDone},
		"dueDate": bson.M{"$gte": from, "$lte": to},
	}
}

// ActiveProjectsDueBetween finds active projects whose deadline falls in
// [from, to].
func (s *DeadlineStore) ActiveProjectsDueBetween(ctx context.Context, from, to time.Time) ([]models.Project, error) {
	cursor, err := s.Projects.Find(ctx, ActiveProjectsDueFilter(from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve due projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	for cursor.Next(ctx) {
		var p models.Project
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode project: %v", err)
		}
		projects = append(projects, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return projects, nil
}

// UnfinishedTasksDueBetween finds tasks not yet done whose due date
// falls in [from, to].
func (s *DeadlineStore) UnfinishedTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	cursor, err := s.Tasks.Find(ctx, UnfinishedTasksDueFilter(from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve due tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return tasks, nil
}

// UserSummary resolves a user id to its display fields.
func (s *DeadlineStore) UserSummary(ctx context.Context, id primitive.ObjectID) (*models.UserSummary, error) {
	var summary models.UserSummary
	err := s.Users.FindOne(ctx,
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"name": 1, "email": 1}),
	).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.NotFoundError{Message: "user not found"}
		}
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}
	return &summary, nil
}
