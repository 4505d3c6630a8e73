package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/policy"
)

func userWithRole(role string) models.User {
	return models.User{ID: primitive.NewObjectID(), Name: "Test User", Email: "test@example.com", Role: role}
}

func TestListProjectsFilterManager(t *testing.T) {
	actor := userWithRole(models.RoleManager)

	filter := policy.ListProjectsFilter(actor)

	assert.Equal(t, bson.M{"manager": actor.ID}, filter)
}

func TestListProjectsFilterLeaderAndCoOperator(t *testing.T) {
	for _, role := range []string{models.RoleTeamLeader, models.RoleCoOperator} {
		actor := userWithRole(role)

		filter := policy.ListProjectsFilter(actor)

		assert.Equal(t, bson.M{"$or": []bson.M{
			{"teamLeader": actor.ID},
			{"members": actor.ID},
		}}, filter, "role %s", role)
	}
}

func TestListProjectsFilterOtherRolesSeeNothing(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, "member", ""} {
		filter := policy.ListProjectsFilter(userWithRole(role))

		assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, filter, "role %q", role)
	}
}

func TestCanCreateProject(t *testing.T) {
	assert.NoError(t, policy.CanCreateProject(userWithRole(models.RoleManager)))

	for _, role := range []string{models.RoleTeamLeader, models.RoleCoOperator, models.RoleAdmin, ""} {
		err := policy.CanCreateProject(userWithRole(role))

		var authErr *models.AuthorizationError
		assert.ErrorAs(t, err, &authErr, "role %q", role)
	}
}

func TestCanUpdateProjectRoleGate(t *testing.T) {
	assert.NoError(t, policy.CanUpdateProject(userWithRole(models.RoleManager)))
	assert.NoError(t, policy.CanUpdateProject(userWithRole(models.RoleTeamLeader)))

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanUpdateProject(userWithRole(models.RoleCoOperator)), &authErr)
	assert.ErrorAs(t, policy.CanUpdateProject(userWithRole("")), &authErr)
}

// A co-operator can be assigned as a project's team leader, yet still
// may not update the project: the update check gates on role, not on
// assignment.
func TestCoOperatorAssignedAsLeaderStillCannotUpdate(t *testing.T) {
	coop := userWithRole(models.RoleCoOperator)

	assert.NoError(t, policy.EligibleTeamLeader(coop))

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanUpdateProject(coop), &authErr)
}

func TestCanDeleteProject(t *testing.T) {
	assert.NoError(t, policy.CanDeleteProject(userWithRole(models.RoleManager)))

	var authErr *models.AuthorizationError
	assert.ErrorAs(t, policy.CanDeleteProject(userWithRole(models.RoleTeamLeader)), &authErr)
	assert.ErrorAs(t, policy.CanDeleteProject(userWithRole(models.RoleCoOperator)), &authErr)
}

func TestEligibleTeamLeader(t *testing.T) {
	assert.NoError(t, policy.EligibleTeamLeader(userWithRole(models.RoleTeamLeader)))
	assert.NoError(t, policy.EligibleTeamLeader(userWithRole(models.RoleCoOperator)))

	var validationErr *models.ValidationError
	assert.ErrorAs(t, policy.EligibleTeamLeader(userWithRole(models.RoleManager)), &validationErr)
	assert.ErrorAs(t, policy.EligibleTeamLeader(userWithRole("")), &validationErr)
}
