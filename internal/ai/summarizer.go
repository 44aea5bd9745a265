package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Source is the read side of the authority the local summarizer needs.
type Source interface {
	FetchTasks(ctx context.Context, projectID string) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
}

// Summarizer is a deterministic Assistant computed from the task list. It
// backs the reference server and local mode, where no model is available.
type Summarizer struct {
	src Source
}

func NewSummarizer(src Source) *Summarizer {
	return &Summarizer{src: src}
}

// SummarizeProject renders the board as markdown: totals, completion and
// the cards of each column in order.
func (s *Summarizer) SummarizeProject(ctx context.Context, projectID string) (string, error) {
	project, err := s.src.GetProjectByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	tasks, err := s.src.FetchTasks(ctx, projectID)
	if err != nil {
		return "", err
	}
	cols := board.Project(board.FromTasks(tasks))

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", project.Name)
	if project.Description != "" {
		sb.WriteString(project.Description)
		sb.WriteString("\n\n")
	}

	total := cols.Len()
	if total == 0 {
		sb.WriteString("The board is empty.\n")
		return sb.String(), nil
	}

	done := len(cols.Of(models.StatusDone))
	fmt.Fprintf(&sb, "**%d tasks**: %d to do, %d in progress, %d done (%d%% complete)\n",
		total,
		len(cols.Of(models.StatusTodo)),
		len(cols.Of(models.StatusInProgress)),
		done,
		done*100/total)

	for _, status := range models.Statuses {
		column := cols.Of(status)
		if len(column) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", status.Label())
		for _, t := range column {
			fmt.Fprintf(&sb, "- %s\n", t.Title)
		}
	}
	return sb.String(), nil
}

// SummarizeTask describes where a task sits and what it is about.
func (s *Summarizer) SummarizeTask(ctx context.Context, taskID string) (string, error) {
	task, position, size, err := s.locate(ctx, taskID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", task.Title)
	fmt.Fprintf(&sb, "In **%s**, card %d of %d.\n\n", task.Status.Label(), position+1, size)
	if task.Description != "" {
		sb.WriteString(task.Description)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("_No description._\n\n")
	}
	fmt.Fprintf(&sb, "Created %s, last updated %s.\n",
		task.CreatedAt.Format("Jan 2, 2006"),
		task.UpdatedAt.Format("Jan 2, 2006"))
	return sb.String(), nil
}

// Ask answers a few question shapes from the task's own fields.
func (s *Summarizer) Ask(ctx context.Context, taskID, question string) (string, error) {
	question, err := normalizeQuestion(question)
	if err != nil {
		return "", err
	}
	task, position, size, err := s.locate(ctx, taskID)
	if err != nil {
		return "", err
	}

	q := strings.ToLower(question)
	switch {
	case containsAny(q, "status", "where", "column", "done", "progress"):
		return fmt.Sprintf("%q is in %s, card %d of %d.", task.Title, task.Status.Label(), position+1, size), nil
	case containsAny(q, "when", "created", "updated", "old"):
		return fmt.Sprintf("%q was created %s and last updated %s.",
			task.Title,
			task.CreatedAt.Format("Jan 2, 2006 15:04"),
			task.UpdatedAt.Format("Jan 2, 2006 15:04")), nil
	case task.Description != "":
		return fmt.Sprintf("%q: %s", task.Title, task.Description), nil
	default:
		return fmt.Sprintf("%q has no description yet. It is in %s.", task.Title, task.Status.Label()), nil
	}
}

// locate returns the task with its index in its column and the column size.
func (s *Summarizer) locate(ctx context.Context, taskID string) (*models.Task, int, int, error) {
	task, err := s.src.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, 0, 0, err
	}
	tasks, err := s.src.FetchTasks(ctx, task.ProjectID)
	if err != nil {
		return nil, 0, 0, err
	}
	column := board.Project(board.FromTasks(tasks)).Of(task.Status)
	for i, t := range column {
		if t.ID == task.ID {
			return task, i, len(column), nil
		}
	}
	return task, len(column), len(column) + 1, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
