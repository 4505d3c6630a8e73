package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles are a closed set with no hierarchy; every permission check names
// the roles it accepts explicitly.
const (
	RoleManager    = "manager"
	RoleTeamLeader = "team-leader"
	RoleCoOperator = "co-operator"
	RoleAdmin      = "admin"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"password,omitempty"`
	Role     string             `bson:"role" json:"role"`
}

// UserSummary is the display view of a referenced user, embedded into
// populated project responses and used to address notifications.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
