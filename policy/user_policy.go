package policy

import "github.com/rajputritesh1907/taskbackend/models"

// CanManageUsers gates user creation and removal to managers and admins.
func CanManageUsers(actor models.User) error {
	if actor.Role != models.RoleManager && actor.Role != models.RoleAdmin {
		return &models.AuthorizationError{Message: "not authorized to manage users"}
	}
	return nil
}
