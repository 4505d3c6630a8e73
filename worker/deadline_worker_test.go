package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/worker"
	"github.com/rajputritesh1907/taskbackend/workflow"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ActiveProjectsDueBetween(ctx context.Context, from, to time.Time) ([]models.Project, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockStore) UnfinishedTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockStore) UserSummary(ctx context.Context, id primitive.ObjectID) (*models.UserSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSummary), args.Error(1)
}

var _ worker.Store = (*MockStore)(nil)

type RecordingDispatcher struct {
	Sent []workflow.Notification
}

func (d *RecordingDispatcher) Dispatch(notes []workflow.Notification) {
	d.Sent = append(d.Sent, notes...)
}

func TestCheckAlertsLeaderForDueProject(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	leaderID := primitive.NewObjectID()
	deadline := time.Now().Add(12 * time.Hour)
	project := models.Project{
		ID:         primitive.NewObjectID(),
		Title:      "Launch",
		TeamLeader: &leaderID,
		Status:     models.ProjectActive,
		Deadline:   &deadline,
	}

	store.On("ActiveProjectsDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Project{project}, nil)
	store.On("UnfinishedTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Task{}, nil)
	store.On("UserSummary", mock.Anything, leaderID).Return(&models.UserSummary{ID: leaderID, Name: "Lena", Email: "lena@example.com"}, nil)

	w.Check(context.Background())

	assert.Len(t, dispatcher.Sent, 1)
	assert.Equal(t, "lena@example.com", dispatcher.Sent[0].To)
	assert.Equal(t, "Deadline Alert: Launch", dispatcher.Sent[0].Subject)
}

func TestCheckSkipsProjectWithoutLeader(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	deadline := time.Now().Add(6 * time.Hour)
	project := models.Project{ID: primitive.NewObjectID(), Title: "Launch", Status: models.ProjectActive, Deadline: &deadline}

	store.On("ActiveProjectsDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Project{project}, nil)
	store.On("UnfinishedTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Task{}, nil)

	w.Check(context.Background())

	assert.Empty(t, dispatcher.Sent)
	store.AssertNotCalled(t, "UserSummary", mock.Anything, mock.Anything)
}

func TestCheckAlertsAssigneeForDueTask(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	assigneeID := primitive.NewObjectID()
	due := time.Now().Add(3 * time.Hour)
	task := models.Task{ID: primitive.NewObjectID(), User: assigneeID, Title: "Design", Status: models.TaskInProgress, DueDate: &due}

	store.On("ActiveProjectsDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Project{}, nil)
	store.On("UnfinishedTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Task{task}, nil)
	store.On("UserSummary", mock.Anything, assigneeID).Return(&models.UserSummary{ID: assigneeID, Name: "Cora", Email: "cora@example.com"}, nil)

	w.Check(context.Background())

	assert.Len(t, dispatcher.Sent, 1)
	assert.Equal(t, "cora@example.com", dispatcher.Sent[0].To)
	assert.Equal(t, "Deadline Alert: Design", dispatcher.Sent[0].Subject)
}

// A failed lookup for one entity never blocks the rest of the sweep.
func TestCheckContinuesPastLookupFailure(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	badLeader := primitive.NewObjectID()
	goodLeader := primitive.NewObjectID()
	deadline := time.Now().Add(12 * time.Hour)
	projects := []models.Project{
		{ID: primitive.NewObjectID(), Title: "Broken", TeamLeader: &badLeader, Status: models.ProjectActive, Deadline: &deadline},
		{ID: primitive.NewObjectID(), Title: "Launch", TeamLeader: &goodLeader, Status: models.ProjectActive, Deadline: &deadline},
	}

	store.On("ActiveProjectsDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(projects, nil)
	store.On("UnfinishedTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Task{}, nil)
	store.On("UserSummary", mock.Anything, badLeader).Return(nil, errors.New("lookup failed"))
	store.On("UserSummary", mock.Anything, goodLeader).Return(&models.UserSummary{ID: goodLeader, Name: "Lena", Email: "lena@example.com"}, nil)

	w.Check(context.Background())

	assert.Len(t, dispatcher.Sent, 1)
	assert.Equal(t, "Deadline Alert: Launch", dispatcher.Sent[0].Subject)
}

func TestCheckQueryFailuresDoNotPanic(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	store.On("ActiveProjectsDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	store.On("UnfinishedTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	w.Check(context.Background())

	assert.Empty(t, dispatcher.Sent)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	store := new(MockStore)
	dispatcher := &RecordingDispatcher{}
	w := worker.NewDeadlineWorker(store, dispatcher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
