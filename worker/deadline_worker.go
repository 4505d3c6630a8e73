// Package worker runs the periodic deadline scan: a read-only sweep
// that reminds team leaders and assignees about work due within the
// next day.
package worker

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajputritesh1907/taskbackend/logging"
	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/workflow"
)

// Store is the scanner's read-only view of the database.
type Store interface {
	ActiveProjectsDueBetween(ctx context.Context, from, to time.Time) ([]models.Project, error)
	UnfinishedTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	UserSummary(ctx context.Context, id primitive.ObjectID) (*models.UserSummary, error)
}

const (
	defaultInterval = time.Hour
	alertWindow     = 24 * time.Hour
)

type DeadlineWorker struct {
	store      Store
	dispatcher workflow.Dispatcher
	interval   time.Duration
}

func NewDeadlineWorker(store Store, dispatcher workflow.Dispatcher, interval time.Duration) *DeadlineWorker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &DeadlineWorker{
		store:      store,
		dispatcher: dispatcher,
		interval:   interval,
	}
}

// Start runs the scan once per interval until the context is cancelled.
func (w *DeadlineWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logging.Logger.Info("Event ID: DEADLINE_WORKER_STOPPED, Description: Deadline worker shutting down")
			return
		}
	}
}

// Check performs one sweep over the [now, now+24h] window. Every alert
// is independent and best-effort; a failed lookup or send for one entity
// never blocks the rest, and nothing is mutated.
func (w *DeadlineWorker) Check(ctx context.Context) {
	now := time.Now()
	until := now.Add(alertWindow)

	logging.Logger.Info("Event ID: DEADLINE_CHECK_START, Description: Checking deadlines")

	projects, err := w.store.ActiveProjectsDueBetween(ctx, now, until)
	if err != nil {
		logging.Logger.Warnf("Event ID: DEADLINE_PROJECT_QUERY_FAILED, Description: Could not query due projects: %v", err)
	}
	for _, p := range projects {
		if p.TeamLeader == nil || p.Deadline == nil {
			continue
		}
		leader, err := w.store.UserSummary(ctx, *p.TeamLeader)
		if err != nil {
			logging.Logger.Warnf("Event ID: DEADLINE_LEADER_LOOKUP_FAILED, Description: Could not resolve team leader for project %s: %v", p.ID.Hex(), err)
			continue
		}
		w.dispatcher.Dispatch([]workflow.Notification{
			workflow.ProjectDeadlineAlert(p.Title, *p.Deadline, *leader),
		})
	}

	tasks, err := w.store.UnfinishedTasksDueBetween(ctx, now, until)
	if err != nil {
		logging.Logger.Warnf("Event ID: DEADLINE_TASK_QUERY_FAILED, Description: Could not query due tasks: %v", err)
	}
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		assignee, err := w.store.UserSummary(ctx, t.User)
		if err != nil {
			logging.Logger.Warnf("Event ID: DEADLINE_ASSIGNEE_LOOKUP_FAILED, Description: Could not resolve assignee for task %s: %v", t.ID.Hex(), err)
			continue
		}
		w.dispatcher.Dispatch([]workflow.Notification{
			workflow.TaskDeadlineAlert(t.Title, *t.DueDate, *assignee),
		})
	}
}
