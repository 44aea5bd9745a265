package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

type projectsLoadedMsg struct {
	projects []models.Project
	err      error
}

type boardOpenedMsg struct {
	session *boardSession
	err     error
}

// boardChangedMsg wakes the view after a store transition
type boardChangedMsg struct{ gen int }

type notificationMsg struct {
	gen          int
	notification board.Notification
}

type moveSettledMsg struct {
	gen    int
	taskID string
	state  board.MoveState
	err    error
}

// taskSavedMsg reports a create, update or delete from a form
type taskSavedMsg struct {
	gen    int
	action string
	task   *models.Task
	err    error
}

type summaryMsg struct {
	// key is the task id, or the project id for a board summary
	key      string
	markdown string
	err      error
}

type expireMsg struct{ at time.Time }

func loadProjects(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		projects, err := a.ProjectService.List(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func openBoard(ctx context.Context, a *app.App, project models.Project, gen int) tea.Cmd {
	return func() tea.Msg {
		notes := board.NewChannelNotifier(notificationBuffer)
		ctrl, err := a.OpenBoard(ctx, project.ID, notes)
		if err != nil {
			return boardOpenedMsg{err: err}
		}
		return boardOpenedMsg{session: newBoardSession(gen, project, ctrl, notes)}
	}
}

// waitForChange blocks until the store publishes or the session closes
func waitForChange(s *boardSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-s.changes:
			if !ok {
				return nil
			}
			return boardChangedMsg{gen: s.gen}
		case <-s.done:
			return nil
		}
	}
}

func waitForNotification(s *boardSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-s.notes.C():
			return notificationMsg{gen: s.gen, notification: n}
		case <-s.done:
			return nil
		}
	}
}

func waitForMove(ctx context.Context, gen int, taskID string, move *board.PendingMove) tea.Cmd {
	return func() tea.Msg {
		state, err := move.Wait(ctx)
		return moveSettledMsg{gen: gen, taskID: taskID, state: state, err: err}
	}
}

func createTask(ctx context.Context, s *boardSession, req models.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := s.ctrl.CreateTask(ctx, req)
		return taskSavedMsg{gen: s.gen, action: "created", task: task, err: err}
	}
}

func updateTask(ctx context.Context, s *boardSession, id string, req models.UpdateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := s.ctrl.UpdateTask(ctx, id, req)
		return taskSavedMsg{gen: s.gen, action: "updated", task: task, err: err}
	}
}

func deleteTask(ctx context.Context, s *boardSession, id string) tea.Cmd {
	return func() tea.Msg {
		err := s.ctrl.DeleteTask(ctx, id)
		return taskSavedMsg{gen: s.gen, action: "deleted", err: err}
	}
}

func summarizeTask(ctx context.Context, a *app.App, taskID string) tea.Cmd {
	return func() tea.Msg {
		md, err := a.Assistant.SummarizeTask(ctx, taskID)
		return summaryMsg{key: taskID, markdown: md, err: err}
	}
}

func summarizeProject(ctx context.Context, a *app.App, projectID string) tea.Cmd {
	return func() tea.Msg {
		md, err := a.Assistant.SummarizeProject(ctx, projectID)
		return summaryMsg{key: projectID, markdown: md, err: err}
	}
}

func expireAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return expireMsg{at: t}
	})
}
