package policy

import "github.com/rajputritesh1907/taskbackend/models"

// CanAssignTask reports whether the actor may assign a new task to a
// user other than themselves: true for the team-leader role, or for the
// assigned team leader of the target project.
func CanAssignTask(actor models.User, project *models.Project) bool {
	if actor.Role == models.RoleTeamLeader {
		return true
	}
	return project != nil && project.TeamLeader != nil && *project.TeamLeader == actor.ID
}

// CanUpdateTask allows the task's current assignee, or the team leader
// of the task's linked project.
func CanUpdateTask(actor models.User, task models.Task, project *models.Project) error {
	if task.User == actor.ID {
		return nil
	}
	if project != nil && project.TeamLeader != nil && *project.TeamLeader == actor.ID {
		return nil
	}
	return &models.AuthorizationError{Message: "user not authorized"}
}

// CanDeleteTask allows only the task's current assignee, not even the
// project's team leader.
func CanDeleteTask(actor models.User, task models.Task) error {
	if task.User != actor.ID {
		return &models.AuthorizationError{Message: "user not authorized"}
	}
	return nil
}
