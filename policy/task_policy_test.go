package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/policy"
)

func projectLedBy(leaderID primitive.ObjectID) *models.Project {
	return &models.Project{
		ID:         primitive.NewObjectID(),
		Title:      "Launch",
		Manager:    primitive.NewObjectID(),
		TeamLeader: &leaderID,
		Status:     models.ProjectActive,
	}
}

func TestCanAssignTaskByRole(t *testing.T) {
	leader := userWithRole(models.RoleTeamLeader)

	assert.True(t, policy.CanAssignTask(leader, nil))
	assert.True(t, policy.CanAssignTask(leader, projectLedBy(primitive.NewObjectID())))
}

func TestCanAssignTaskByProjectLeadership(t *testing.T) {
	coop := userWithRole(models.RoleCoOperator)

	assert.True(t, policy.CanAssignTask(coop, projectLedBy(coop.ID)))
}

func TestCannotAssignTaskWithoutLeadership(t *testing.T) {
	coop := userWithRole(models.RoleCoOperator)

	assert.False(t, policy.CanAssignTask(coop, nil))
	assert.False(t, policy.CanAssignTask(coop, projectLedBy(primitive.NewObjectID())))
	assert.False(t, policy.CanAssignTask(userWithRole(models.RoleManager), nil))
}

func TestCanUpdateTaskAsAssignee(t *testing.T) {
	actor := userWithRole(models.RoleCoOperator)
	task := models.Task{ID: primitive.NewObjectID(), User: actor.ID, Title: "Design"}

	assert.NoError(t, policy.CanUpdateTask(actor, task, nil))
}

func TestCanUpdateTaskAsProjectLeader(t *testing.T) {
	actor := userWithRole(models.RoleTeamLeader)
	project := projectLedBy(actor.ID)
	task := models.Task{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Project: &project.ID, Title: "Design"}

	assert.NoError(t, policy.CanUpdateTask(actor, task, project))
}

func TestCanUpdateTaskDeniedForOthers(t *testing.T) {
	actor := userWithRole(models.RoleTeamLeader)
	project := projectLedBy(primitive.NewObjectID())
	task := models.Task{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Project: &project.ID, Title: "Design"}

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanUpdateTask(actor, task, project), &authErr)
	assert.ErrorAs(t, policy.CanUpdateTask(actor, task, nil), &authErr)
}

func TestCanDeleteTaskOwnerOnly(t *testing.T) {
	owner := userWithRole(models.RoleCoOperator)
	task := models.Task{ID: primitive.NewObjectID(), User: owner.ID, Title: "Design"}

	assert.NoError(t, policy.CanDeleteTask(owner, task))

	// Not even the project's team leader may delete someone else's task.
	leader := userWithRole(models.RoleTeamLeader)
	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanDeleteTask(leader, task), &authErr)
}

func TestCanManageUsers(t *testing.T) {
	assert.NoError(t, policy.CanManageUsers(userWithRole(models.RoleManager)))
	assert.NoError(t, policy.CanManageUsers(userWithRole(models.RoleAdmin)))

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanManageUsers(userWithRole(models.RoleTeamLeader)), &authErr)
	assert.ErrorAs(t, policy.CanManageUsers(userWithRole(models.RoleCoOperator)), &authErr)
}
