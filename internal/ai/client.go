package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Doer performs a JSON request against the authority. *remote.Client
// satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Client talks to the authority's /api/ai endpoints.
type Client struct {
	doer Doer
}

// NewClient returns an Assistant backed by the remote authority.
func NewClient(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) SummarizeProject(ctx context.Context, projectID string) (string, error) {
	var resp SummaryResponse
	if err := c.doer.Do(ctx, http.MethodGet, "/api/ai/summarize/"+url.PathEscape(projectID), nil, &resp); err != nil {
		return "", fmt.Errorf("failed to summarize project %s: %w", projectID, err)
	}
	return resp.Summary, nil
}

func (c *Client) SummarizeTask(ctx context.Context, taskID string) (string, error) {
	var resp SummaryResponse
	if err := c.doer.Do(ctx, http.MethodGet, "/api/ai/summarize-task/"+url.PathEscape(taskID), nil, &resp); err != nil {
		return "", fmt.Errorf("failed to summarize task %s: %w", taskID, err)
	}
	return resp.Summary, nil
}

func (c *Client) Ask(ctx context.Context, taskID, question string) (string, error) {
	question, err := normalizeQuestion(question)
	if err != nil {
		return "", err
	}

	var resp AnswerResponse
	req := QuestionRequest{TaskID: taskID, Question: question}
	if err := c.doer.Do(ctx, http.MethodPost, "/api/ai/qa", req, &resp); err != nil {
		return "", fmt.Errorf("failed to get answer for task %s: %w", taskID, err)
	}
	return resp.Answer, nil
}
