package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/atelier-ai/atelier/pkg/domain"
)

// ---------------------------------------------------------------------------
// Workflow service — execution, generation, transcription, maintenance
// ---------------------------------------------------------------------------

// ExecuteTask runs a task definition with the given inputs and returns the
// stored result record.
func (c *Client) ExecuteTask(ctx context.Context, taskID string, inputs map[string]interface{}) (domain.Item, error) {
	if inputs == nil {
		inputs = map[string]interface{}{}
	}
	body := domain.Item{
		"taskId": taskID,
		"inputs": inputs,
	}
	var result domain.Item
	u := c.wf + "/execute_task"
	if err := c.do(ctx, http.MethodPost, u, "POST /execute_task", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateChatResponse asks the workflow service to produce the next
// assistant turn for a chat. The response body is a bare boolean reporting
// whether any new messages were produced; the refreshed chat must be
// re-fetched from the database service.
func (c *Client) GenerateChatResponse(ctx context.Context, chatID string) (bool, error) {
	var raw json.RawMessage
	u := fmt.Sprintf("%s/chat_response/%s", c.wf, url.PathEscape(chatID))
	op := "POST /chat_response/{id}"
	if err := c.do(ctx, http.MethodPost, u, op, nil, &raw); err != nil {
		return false, err
	}

	var generated bool
	if err := json.Unmarshal(raw, &generated); err != nil {
		return false, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return generated, nil
}

// GenerateFileTranscript produces a transcript message for a stored file.
// agentID and chatID are optional hints for model selection; empty values
// are omitted from the request.
func (c *Client) GenerateFileTranscript(ctx context.Context, fileID, agentID, chatID string) (domain.Item, error) {
	body := domain.Item{"file_id": fileID}
	if agentID != "" {
		body["agent_id"] = agentID
	}
	if chatID != "" {
		body["chat_id"] = chatID
	}

	var transcript domain.Item
	u := fmt.Sprintf("%s/file_transcript/%s", c.wf, url.PathEscape(fileID))
	if err := c.do(ctx, http.MethodPost, u, "POST /file_transcript/{id}", body, &transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// PurgeAndReinitialize destroys and re-seeds the remote database. Callers
// are expected to confirm before invoking; there is no undo.
func (c *Client) PurgeAndReinitialize(ctx context.Context) error {
	u := c.wf + "/purge_and_reinitialize"
	return c.do(ctx, http.MethodPost, u, "POST /purge_and_reinitialize", nil, nil)
}
