// Package ai provides the board's collaborator: project and task summaries
// and question answering, either from the authority's /api/ai endpoints or
// computed locally from the task list.
package ai

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyQuestion is returned by Ask when the question is blank.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// Assistant answers questions about a board.
type Assistant interface {
	SummarizeProject(ctx context.Context, projectID string) (string, error)
	SummarizeTask(ctx context.Context, taskID string) (string, error)
	Ask(ctx context.Context, taskID, question string) (string, error)
}

// SummaryResponse is the body of both summarize endpoints.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// QuestionRequest is the body of POST /api/ai/qa.
type QuestionRequest struct {
	TaskID   string `json:"taskId"`
	Question string `json:"question"`
}

// AnswerResponse is the response of POST /api/ai/qa.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

func normalizeQuestion(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", ErrEmptyQuestion
	}
	return q, nil
}
