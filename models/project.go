package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Manager     primitive.ObjectID   `bson:"manager" json:"manager"`
	TeamLeader  *primitive.ObjectID  `bson:"teamLeader,omitempty" json:"teamLeader,omitempty"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Status      ProjectStatus        `bson:"status" json:"status"`
	Deadline    *time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ProjectView is a project with its referenced users expanded into
// summaries, the shape returned by the API and consumed by the
// notification cascade.
type ProjectView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Status      ProjectStatus      `json:"status"`
	Deadline    *time.Time         `json:"deadline,omitempty"`
	Manager     *UserSummary       `json:"manager,omitempty"`
	TeamLeader  *UserSummary       `json:"teamLeader,omitempty"`
	Members     []UserSummary      `json:"members"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
