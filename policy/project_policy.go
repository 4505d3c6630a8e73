// Package policy holds the authorization rules as pure predicate
// functions over the actor and the entity. Each rule names the roles it
// accepts explicitly; nothing is inherited between roles.
package policy

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rajputritesh1907/taskbackend/models"
)

// ListProjectsFilter builds the Mongo filter scoping what the actor may
// list. Managers see their own projects, team leaders and co-operators
// see projects they lead or belong to, every other role sees nothing.
func ListProjectsFilter(actor models.User) bson.M {
	switch actor.Role {
	case models.RoleManager:
		return bson.M{"manager": actor.ID}
	case models.RoleTeamLeader, models.RoleCoOperator:
		return bson.M{"$or": []bson.M{
			{"teamLeader": actor.ID},
			{"members": actor.ID},
		}}
	default:
		// No implicit "see all": any other role matches nothing.
		return bson.M{"_id": bson.M{"$exists": false}}
	}
}

func CanCreateProject(actor models.User) error {
	if actor.Role != models.RoleManager {
		return &models.AuthorizationError{Message: "only managers can create projects"}
	}
	return nil
}

// CanUpdateProject is a role gate, not an ownership check: any manager
// or team leader may update any project, while a co-operator may not
// update even a project they are assigned to lead.
func CanUpdateProject(actor models.User) error {
	if actor.Role != models.RoleManager && actor.Role != models.RoleTeamLeader {
		return &models.AuthorizationError{Message: "not authorized to update project"}
	}
	return nil
}

func CanDeleteProject(actor models.User) error {
	if actor.Role != models.RoleManager {
		return &models.AuthorizationError{Message: "only managers can delete projects"}
	}
	return nil
}

// EligibleTeamLeader checks whether a user may be assigned as a
// project's team leader.
func EligibleTeamLeader(u models.User) error {
	if u.Role != models.RoleTeamLeader && u.Role != models.RoleCoOperator {
		return &models.ValidationError{Message: "user must be a team leader or co-operator"}
	}
	return nil
}
