package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/services"
)

// Input validation runs before any database access, so these cases are
// exercised against a zero-value service.

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc := &services.TaskService{}
	actor := models.User{ID: primitive.NewObjectID(), Role: models.RoleCoOperator}

	_, err := svc.CreateTask(context.Background(), actor, services.CreateTaskInput{})

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	svc := &services.TaskService{}
	actor := models.User{ID: primitive.NewObjectID(), Role: models.RoleCoOperator}

	// Status values outside the closed set are rejected; the enum is
	// case-sensitive.
	for _, status := range []models.TaskStatus{"finished", "Done", "pending"} {
		_, err := svc.CreateTask(context.Background(), actor, services.CreateTaskInput{
			Title:  "Design",
			Status: status,
		})

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr, "status %q", status)
	}
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	svc := &services.TaskService{}
	actor := models.User{ID: primitive.NewObjectID(), Role: models.RoleCoOperator}

	for _, priority := range []models.TaskPriority{"critical", "Urgent", "none"} {
		_, err := svc.CreateTask(context.Background(), actor, services.CreateTaskInput{
			Title:    "Design",
			Priority: priority,
		})

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr, "priority %q", priority)
	}
}

func TestTaskEnumSets(t *testing.T) {
	for _, s := range []models.TaskStatus{models.TaskTodo, models.TaskInProgress, models.TaskDone, models.TaskCancelled} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	for _, p := range []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent} {
		assert.True(t, p.Valid(), "priority %q", p)
	}
	assert.False(t, models.TaskStatus("").Valid())
	assert.False(t, models.TaskPriority("").Valid())
}
