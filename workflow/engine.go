package workflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/models"
)

// ProjectStore is the engine's write access to projects, used only for
// the automatic completion update.
type ProjectStore interface {
	SetProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error
}

// TaskStore is the engine's read access to a project's tasks.
type TaskStore interface {
	TasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
}

// Engine runs the post-mutation cascade. It receives the previous and
// new entity state and decides which notifications and follow-up
// mutations to trigger. Notification delivery is delegated to the
// dispatcher and never fails the cascade.
type Engine struct {
	projects   ProjectStore
	tasks      TaskStore
	dispatcher Dispatcher
}

func NewEngine(projects ProjectStore, tasks TaskStore, dispatcher Dispatcher) *Engine {
	return &Engine{projects: projects, tasks: tasks, dispatcher: dispatcher}
}

// ProjectStatusChanged reacts to a project update whose status differs
// from the previous one. On hold placed by a manager notifies the team
// leader and every member individually; completion notifies the manager.
func (e *Engine) ProjectStatusChanged(prev models.ProjectStatus, view models.ProjectView, actor models.User) {
	if view.Status == prev {
		return
	}

	switch view.Status {
	case models.ProjectOnHold:
		if actor.Role == models.RoleManager {
			e.dispatcher.Dispatch(ProjectOnHold(view))
		}
	case models.ProjectCompleted:
		e.dispatcher.Dispatch(ProjectCompleted(view))
	}
}

// TaskStatusChanged runs the completion cascade for a task that moved to
// done: notify the project's team leader, re-query the project's tasks,
// and if every one of them is done, mark the project completed and
// notify its manager. An empty task set counts as all done.
//
// The all-done check is a read-modify-write against the store; two tasks
// completing at the same moment may both observe "all done" and both
// write the (idempotent) completed status. Duplicate completion emails
// are accepted in that case.
func (e *Engine) TaskStatusChanged(ctx context.Context, prev models.TaskStatus, task models.Task, view models.ProjectView, actor models.User) error {
	if task.Status != models.TaskDone || prev == models.TaskDone {
		return nil
	}
	if task.Project == nil {
		return nil
	}

	if view.TeamLeader != nil {
		e.dispatcher.Dispatch([]Notification{TaskCompleted(task.Title, actor.Name, *view.TeamLeader)})
	}

	tasks, err := e.tasks.TasksByProject(ctx, *task.Project)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.Status != models.TaskDone {
			return nil
		}
	}

	if err := e.projects.SetProjectStatus(ctx, view.ID, models.ProjectCompleted); err != nil {
		return err
	}
	e.dispatcher.Dispatch(ProjectAutoCompleted(view))
	return nil
}

// ProjectDeleted sends the deletion notice to the team leader and every
// member. The caller deletes the record afterwards regardless of
// delivery outcome.
func (e *Engine) ProjectDeleted(view models.ProjectView) {
	e.dispatcher.Dispatch(ProjectDeleted(view))
}
