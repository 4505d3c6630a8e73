package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rajputritesh1907/taskbackend/models"
)

// populateProject expands a project's referenced user ids into name and
// email summaries with a single $in query, the document-store equivalent
// of a populate join.
func populateProject(ctx context.Context, users *mongo.Collection, p models.Project) (models.ProjectView, error) {
	ids := []primitive.ObjectID{p.Manager}
	if p.TeamLeader != nil {
		ids = append(ids, *p.TeamLeader)
	}
	ids = append(ids, p.Members...)

	cursor, err := users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1}),
	)
	if err != nil {
		return models.ProjectView{}, fmt.Errorf("failed to load referenced users: %v", err)
	}
	defer cursor.Close(ctx)

	summaries := make(map[primitive.ObjectID]models.UserSummary)
	for cursor.Next(ctx) {
		var s models.UserSummary
		if err := cursor.Decode(&s); err != nil {
			return models.ProjectView{}, fmt.Errorf("failed to decode user summary: %v", err)
		}
		summaries[s.ID] = s
	}
	if err := cursor.Err(); err != nil {
		return models.ProjectView{}, fmt.Errorf("cursor error: %v", err)
	}

	view := models.ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Deadline:    p.Deadline,
		Members:     []models.UserSummary{},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if s, ok := summaries[p.Manager]; ok {
		view.Manager = &s
	}
	if p.TeamLeader != nil {
		if s, ok := summaries[*p.TeamLeader]; ok {
			view.TeamLeader = &s
		}
	}
	for _, id := range p.Members {
		if s, ok := summaries[id]; ok {
			view.Members = append(view.Members, s)
		}
	}

	return view, nil
}

// WorkflowStore gives the workflow engine its narrow view of the
// database: listing a project's tasks and writing the auto-completion
// status.
type WorkflowStore struct {
	Projects *mongo.Collection
	Tasks    *mongo.Collection
}

func (s *WorkflowStore) SetProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error {
	_, err := s.Projects.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update project status: %v", err)
	}
	return nil
}

func (s *WorkflowStore) TasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cursor, err := s.Tasks.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project tasks: %v", err)
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
