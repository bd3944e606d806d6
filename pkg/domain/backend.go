package domain

import "context"

// ---------------------------------------------------------------------------
// Backend port — every durable record lives behind this boundary
// ---------------------------------------------------------------------------

// Backend is the client's view of the two remote services: the database
// service, which owns collection CRUD, and the workflow service, which owns
// task execution, chat generation, transcription, and maintenance. The
// client never persists anything locally; implementations translate these
// calls into HTTP requests.
//
// All methods block until the remote call settles and honor ctx cancellation.
// Payloads cross this boundary as opaque Items; typed decoding happens in the
// application layer.
type Backend interface {
	// FetchAll returns every record in a collection. A backend that answers
	// with a single object instead of an array is normalized into a
	// one-element slice.
	FetchAll(ctx context.Context, c Collection) ([]Item, error)
	// Fetch returns one record by identifier.
	Fetch(ctx context.Context, c Collection, id string) (Item, error)
	// Create stores a new record and returns it with its assigned identifier.
	Create(ctx context.Context, c Collection, partial Item) (Item, error)
	// Update applies a partial change and returns the updated record.
	Update(ctx context.Context, c Collection, id string, partial Item) (Item, error)
	// Delete removes a record.
	Delete(ctx context.Context, c Collection, id string) error

	// AddChatMessage appends a message to a chat and returns the updated chat.
	AddChatMessage(ctx context.Context, chatID string, message Item) (Item, error)
	// UpdateChatMessage replaces a message by identity within a chat and
	// returns the updated chat.
	UpdateChatMessage(ctx context.Context, chatID string, message Item) (Item, error)

	// ExecuteTask runs a task definition with the given inputs and returns
	// the stored task result.
	ExecuteTask(ctx context.Context, taskID string, inputs map[string]interface{}) (Item, error)
	// GenerateChatResponse asks the workflow service to produce the next
	// assistant turn for a chat. The boolean reports whether generation
	// occurred; the refreshed chat must be re-fetched by the caller.
	GenerateChatResponse(ctx context.Context, chatID string) (bool, error)
	// GenerateFileTranscript produces a transcript message for a stored
	// file. agentID and chatID are optional hints for model selection.
	GenerateFileTranscript(ctx context.Context, fileID, agentID, chatID string) (Item, error)
	// PurgeAndReinitialize destroys and re-seeds the remote database.
	PurgeAndReinitialize(ctx context.Context) error

	// Health probes both services without side effects.
	Health(ctx context.Context) HealthReport
}

// ComponentHealth is the probe outcome for one remote service.
type ComponentHealth struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// HealthReport aggregates liveness of the remote services.
type HealthReport struct {
	Database ComponentHealth `json:"database"`
	Workflow ComponentHealth `json:"workflow"`
}

// Healthy returns true when every probed service answered.
func (r HealthReport) Healthy() bool {
	return r.Database.OK && r.Workflow.OK
}
