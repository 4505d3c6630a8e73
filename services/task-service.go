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

type TaskService struct {
	Tasks      *mongo.Collection
	Projects   *mongo.Collection
	Users      *mongo.Collection
	Engine     *workflow.Engine
	Dispatcher workflow.Dispatcher
}

func NewTaskService(tasks, projects, users *mongo.Collection, engine *workflow.Engine, dispatcher workflow.Dispatcher) *TaskService {
	return &TaskService{
		Tasks:      tasks,
		Projects:   projects,
		Users:      users,
		Engine:     engine,
		Dispatcher: dispatcher,
	}
}

type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Category    string              `json:"category"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	Tags        []string            `json:"tags"`
	ProjectID   *primitive.ObjectID `json:"projectId,omitempty"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo,omitempty"`
}

type UpdateTaskInput struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	Category    *string              `json:"category,omitempty"`
	DueDate     *time.Time           `json:"dueDate,omitempty"`
	Tags        *[]string            `json:"tags,omitempty"`
}

// ListTasks returns only the tasks assigned to the actor.
func (s *TaskService) ListTasks(ctx context.Context, actor models.User) ([]models.Task, error) {
	cursor, err := s.Tasks.Find(ctx, bson.M{"user": actor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
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

// CreateTask creates a task assigned to the creator by default. A
// team leader (by role, or as leader of the referenced project) may
// assign it to someone else, who then gets an assignment email.
func (s *TaskService) CreateTask(ctx context.Context, actor models.User, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, &models.ValidationError{Message: "please add a title"}
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, &models.ValidationError{Message: "invalid task status"}
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, &models.ValidationError{Message: "invalid task priority"}
	}

	var project *models.Project
	if input.ProjectID != nil {
		var p models.Project
		err := s.Projects.FindOne(ctx, bson.M{"_id": *input.ProjectID}).Decode(&p)
		if err == nil {
			project = &p
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to retrieve project: %v", err)
		}
	}

	assignee := actor.ID
	if input.AssignedTo != nil && policy.CanAssignTask(actor, project) {
		assignee = *input.AssignedTo
	}

	status := input.Status
	if status == "" {
		status = models.TaskTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	category := input.Category
	if category == "" {
		category = models.DefaultTaskCategory
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		User:        assignee,
		Project:     input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Category:    category,
		DueDate:     input.DueDate,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.Tasks.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}

	if assignee != actor.ID {
		var assigned models.User
		if err := s.Users.FindOne(ctx, bson.M{"_id": assignee}).Decode(&assigned); err == nil {
			s.Dispatcher.Dispatch([]workflow.Notification{workflow.TaskAssigned(task, assigned.Summary())})
		}
	}

	return &task, nil
}

// UpdateTask applies a partial update for the assignee or the team
// leader of the task's project, then runs the completion cascade when
// the status moved to done.
func (s *TaskService) UpdateTask(ctx context.Context, actor models.User, id primitive.ObjectID, input UpdateTaskInput) (*models.Task, error) {
	var existing models.Task
	if err := s.Tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.NotFoundError{Message: "task not found"}
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}

	var project *models.Project
	if existing.Project != nil {
		var p models.Project
		err := s.Projects.FindOne(ctx, bson.M{"_id": *existing.Project}).Decode(&p)
		if err == nil {
			project = &p
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to retrieve project: %v", err)
		}
	}

	if err := policy.CanUpdateTask(actor, existing, project); err != nil {
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
	if input.Priority != nil {
		set["priority"] = *input.Priority
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.DueDate != nil {
		set["dueDate"] = *input.DueDate
	}
	if input.Tags != nil {
		set["tags"] = *input.Tags
	}

	if _, err := s.Tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	var updated models.Task
	if err := s.Tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %v", err)
	}

	if updated.Status == models.TaskDone && existing.Status != models.TaskDone && project != nil {
		view, err := populateProject(ctx, s.Users, *project)
		if err != nil {
			logging.Logger.Warnf("Event ID: TASK_CASCADE_SKIPPED, Description: Could not resolve project %s recipients: %v", project.ID.Hex(), err)
			return &updated, nil
		}
		// The mutation already succeeded; cascade trouble is logged, not
		// surfaced to the caller.
		if err := s.Engine.TaskStatusChanged(ctx, existing.Status, updated, view, actor); err != nil {
			logging.Logger.Warnf("Event ID: TASK_CASCADE_FAILED, Description: Completion cascade for task %s failed: %v", id.Hex(), err)
		}
	}

	return &updated, nil
}

// DeleteTask removes a task. Only the assignee may delete it.
func (s *TaskService) DeleteTask(ctx context.Context, actor models.User, id primitive.ObjectID) error {
	var existing models.Task
	if err := s.Tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.NotFoundError{Message: "task not found"}
		}
		return fmt.Errorf("failed to retrieve task: %v", err)
	}

	if err := policy.CanDeleteTask(actor, existing); err != nil {
		return err
	}

	if _, err := s.Tasks.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}

	return nil
}
