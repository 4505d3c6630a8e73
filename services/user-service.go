package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/policy"
	"github.com/rajputritesh1907/taskbackend/workflow"
)

type UserService struct {
	Users      *mongo.Collection
	Dispatcher workflow.Dispatcher
}

func NewUserService(users *mongo.Collection, dispatcher workflow.Dispatcher) *UserService {
	return &UserService{Users: users, Dispatcher: dispatcher}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ListUsers returns users, optionally filtered by role, with the
// password field excluded by projection.
func (s *UserService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	cursor, err := s.Users.Find(ctx, filter, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return users, nil
}

// CreateUser lets a manager or admin add a team member. The password is
// bcrypt-hashed and the role defaults to team-leader.
func (s *UserService) CreateUser(ctx context.Context, actor models.User, input CreateUserInput) (*models.User, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, &models.ValidationError{Message: "please add all fields"}
	}

	err := s.Users.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		return nil, &models.ValidationError{Message: "user already exists"}
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleTeamLeader
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
	}

	if _, err := s.Users.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %v", err)
	}

	user.Password = ""
	return &user, nil
}

// DeleteUser removes a user and sends them a best-effort removal notice
// before the delete.
func (s *UserService) DeleteUser(ctx context.Context, actor models.User, id primitive.ObjectID) error {
	if err := policy.CanManageUsers(actor); err != nil {
		return err
	}

	var user models.User
	if err := s.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.NotFoundError{Message: "user not found"}
		}
		return fmt.Errorf("failed to retrieve user: %v", err)
	}

	s.Dispatcher.Dispatch([]workflow.Notification{workflow.UserRemoved(user.Email)})

	if _, err := s.Users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}

	return nil
}

// Authenticate verifies a login against the stored bcrypt hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.AuthorizationError{Message: "invalid credentials"}
		}
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &models.AuthorizationError{Message: "invalid credentials"}
	}

	user.Password = ""
	return &user, nil
}
