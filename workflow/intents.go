// Package workflow turns state transitions into notification intents and
// runs the completion cascade. Intent construction is pure; only the
// dispatcher touches the mail transport.
package workflow

import (
	"fmt"
	"time"

	"github.com/rajputritesh1907/taskbackend/models"
)

// Notification is one individually addressed message. Cascades that
// reach multiple people produce one Notification per recipient, never a
// single broadcast.
type Notification struct {
	To      string
	Subject string
	Body    string
}

func ProjectAssigned(view models.ProjectView) []Notification {
	if view.TeamLeader == nil {
		return nil
	}
	deadline := ""
	if view.Deadline != nil {
		deadline = view.Deadline.Format(time.RFC1123)
	}
	return []Notification{{
		To:      view.TeamLeader.Email,
		Subject: "New Project Assignment",
		Body: fmt.Sprintf("You have been assigned a new project: %s. \n\nDescription: %s\nDeadline: %s",
			view.Title, view.Description, deadline),
	}}
}

func ProjectOnHold(view models.ProjectView) []Notification {
	body := fmt.Sprintf("The project %q has been put on HOLD by the Manager.", view.Title)
	subject := fmt.Sprintf("Project On Hold: %s", view.Title)

	var notes []Notification
	for _, r := range projectTeam(view) {
		notes = append(notes, Notification{To: r.Email, Subject: subject, Body: body})
	}
	return notes
}

func ProjectCompleted(view models.ProjectView) []Notification {
	if view.Manager == nil {
		return nil
	}
	return []Notification{{
		To:      view.Manager.Email,
		Subject: fmt.Sprintf("Project Completed: %s", view.Title),
		Body:    fmt.Sprintf("The project %q has been marked as COMPLETED.", view.Title),
	}}
}

// ProjectAutoCompleted is the automatic counterpart of ProjectCompleted,
// fired when the last task of the project is marked done. Both paths may
// fire without deduplication.
func ProjectAutoCompleted(view models.ProjectView) []Notification {
	if view.Manager == nil {
		return nil
	}
	return []Notification{{
		To:      view.Manager.Email,
		Subject: fmt.Sprintf("Project Completed: %s", view.Title),
		Body:    fmt.Sprintf("All tasks in project %q are complete. The project is now marked as COMPLETED.", view.Title),
	}}
}

func ProjectDeleted(view models.ProjectView) []Notification {
	body := fmt.Sprintf("The project %q has been DELETED by the Manager.", view.Title)
	subject := fmt.Sprintf("Project Deleted: %s", view.Title)

	var notes []Notification
	for _, r := range projectTeam(view) {
		notes = append(notes, Notification{To: r.Email, Subject: subject, Body: body})
	}
	return notes
}

func TaskCompleted(taskTitle, actorName string, leader models.UserSummary) Notification {
	return Notification{
		To:      leader.Email,
		Subject: fmt.Sprintf("Task Completed: %s", taskTitle),
		Body:    fmt.Sprintf("Task %q has been completed by %s.", taskTitle, actorName),
	}
}

func TaskAssigned(task models.Task, assignee models.UserSummary) Notification {
	due := ""
	if task.DueDate != nil {
		due = task.DueDate.Format(time.RFC1123)
	}
	return Notification{
		To:      assignee.Email,
		Subject: "New Task Assignment",
		Body: fmt.Sprintf("You have been assigned a new task: %s. \n\nDescription: %s\nDue Date: %s",
			task.Title, task.Description, due),
	}
}

func ProjectDeadlineAlert(title string, deadline time.Time, leader models.UserSummary) Notification {
	return Notification{
		To:      leader.Email,
		Subject: fmt.Sprintf("Deadline Alert: %s", title),
		Body:    fmt.Sprintf("Project %q is nearing its deadline (%s).", title, deadline.Format(time.RFC1123)),
	}
}

func TaskDeadlineAlert(title string, dueDate time.Time, assignee models.UserSummary) Notification {
	return Notification{
		To:      assignee.Email,
		Subject: fmt.Sprintf("Deadline Alert: %s", title),
		Body:    fmt.Sprintf("Task %q is nearing its deadline (%s).", title, dueDate.Format(time.RFC1123)),
	}
}

func UserRemoved(email string) Notification {
	return Notification{
		To:      email,
		Subject: "You have been removed",
		Body:    "You have been removed from the team by the Manager.",
	}
}

// projectTeam lists the team leader followed by every member, each once
// per recipient.
func projectTeam(view models.ProjectView) []models.UserSummary {
	var team []models.UserSummary
	if view.TeamLeader != nil {
		team = append(team, *view.TeamLeader)
	}
	team = append(team, view.Members...)
	return team
}
