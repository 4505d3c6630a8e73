package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rajputritesh1907/taskbackend/logging"
	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/policy"
	"github.com/rajputritesh1907/taskbackend/workflow"
)

type ProjectService struct {
	Projects   *mongo.Collection
	Users      *mongo.Collection
	Engine     *workflow.Engine
	Dispatcher workflow.Dispatcher
}

func NewProjectService(projects, users *mongo.Collection, engine *workflow.Engine, dispatcher workflow.Dispatcher) *ProjectService {
	return &ProjectService{
		Projects:   projects,
		Users:      users,
		Engine:     engine,
		Dispatcher: dispatcher,
	}
}

type CreateProjectInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	TeamLeaderID *primitive.ObjectID  `json:"teamLeaderId,omitempty"`
	Members      []primitive.ObjectID `json:"members"`
	Deadline     *time.Time           `json:"deadline,omitempty"`
}

type UpdateProjectInput struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Status       *models.ProjectStatus `json:"status,omitempty"`
	TeamLeaderID *primitive.ObjectID   `json:"teamLeaderId,omitempty"`
	Members      *[]primitive.ObjectID `json:"members,omitempty"`
	Deadline     *time.Time            `json:"deadline,omitempty"`
}

// ListProjects returns the projects the actor may see, scoped by role,
// with referenced users expanded.
func (s *ProjectService) ListProjects(ctx context.Context, actor models.User) ([]models.ProjectView, error) {
	cursor, err := s.Projects.Find(ctx, policy.ListProjectsFilter(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.ProjectView{}
	for cursor.Next(ctx) {
		var p models.Project
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode project: %v", err)
		}
		view, err := populateProject(ctx, s.Users, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

// CreateProject creates a project owned by the acting manager. An
// assigned team leader must resolve to an existing user with the
// team-leader or co-operator role, and gets an assignment email on
// success (best effort).
func (s *ProjectService) CreateProject(ctx context.Context, actor models.User, input CreateProjectInput) (*models.ProjectView, error) {
	if err := policy.CanCreateProject(actor); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, &models.ValidationError{Message: "please add a title"}
	}

	if input.TeamLeaderID != nil {
		var leader models.User
		err := s.Users.FindOne(ctx, bson.M{"_id": *input.TeamLeaderID}).Decode(&leader)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, &models.ValidationError{Message: "invalid team leader"}
			}
			return nil, fmt.Errorf("failed to resolve team leader: %v", err)
		}
		if err := policy.EligibleTeamLeader(leader); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	members := input.Members
	if members == nil {
		members = []primitive.ObjectID{}
	}
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Manager:     actor.ID,
		TeamLeader:  input.TeamLeaderID,
		Members:     members,
		Status:      models.ProjectActive,
		Deadline:    input.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.Projects.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	view, err := populateProject(ctx, s.Users, project)
	if err != nil {
		return nil, err
	}

	s.Dispatcher.Dispatch(workflow.ProjectAssigned(view))

	return &view, nil
}

// UpdateProject applies a partial update and runs the status-change
// cascade afterwards. The permission is a role gate: any manager or team
// leader, ownership of this particular project is not checked.
func (s *ProjectService) UpdateProject(ctx context.Context, actor models.User, id primitive.ObjectID, input UpdateProjectInput) (*models.ProjectView, error) {
	var existing models.Project
	if err := s.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.NotFoundError{Message: "project not found"}
		}
		return nil, fmt.Errorf("failed to retrieve project: %v", err)
	}

	if err := policy.CanUpdateProject(actor); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.TeamLeaderID != nil {
		set["teamLeader"] = *input.TeamLeaderID
	}
	if input.Members != nil {
		set["members"] = *input.Members
	}
	if input.Deadline != nil {
		set["deadline"] = *input.Deadline
	}

	if _, err := s.Projects.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	var updated models.Project
	if err := s.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated project: %v", err)
	}

	view, err := populateProject(ctx, s.Users, updated)
	if err != nil {
		return nil, err
	}

	s.Engine.ProjectStatusChanged(existing.Status, view, actor)

	return &view, nil
}

// DeleteProject notifies the team leader and every member, then removes
// the project. Deletion proceeds regardless of delivery outcome, and
// tasks referencing the project are left in place.
func (s *ProjectService) DeleteProject(ctx context.Context, actor models.User, id primitive.ObjectID) error {
	var existing models.Project
	if err := s.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.NotFoundError{Message: "project not found"}
		}
		return fmt.Errorf("failed to retrieve project: %v", err)
	}

	if err := policy.CanDeleteProject(actor); err != nil {
		return err
	}

	view, err := populateProject(ctx, s.Users, existing)
	if err != nil {
		// The delete must not be blocked by a failed recipient lookup.
		logging.Logger.Warnf("Event ID: PROJECT_DELETE_NOTIFY_SKIPPED, Description: Could not resolve recipients for project %s: %v", id.Hex(), err)
	} else {
		s.Engine.ProjectDeleted(view)
	}

	if _, err := s.Projects.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	return nil
}
