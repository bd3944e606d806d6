package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atelier-ai/atelier/pkg/confirm"
	"github.com/atelier-ai/atelier/pkg/domain"
	chatdomain "github.com/atelier-ai/atelier/pkg/domain/chat"
	filedomain "github.com/atelier-ai/atelier/pkg/domain/file"
	taskdomain "github.com/atelier-ai/atelier/pkg/domain/task"
	"github.com/atelier-ai/atelier/pkg/notify"
)

// ---------------------------------------------------------------------------
// API facade
// ---------------------------------------------------------------------------

// ViewFunc is invoked when a user triggers the "View" action attached to a
// success notification. It receives the affected collection and identifier.
type ViewFunc func(c domain.Collection, id string)

// Facade is the single choke point for remote operations. Every mutation
// performs its remote call, then on success posts exactly one notification
// followed by exactly one event publication, in that order, before
// returning. Failures post an error notification and re-raise; DeleteItem
// is the one exception, absorbing its failures into a boolean.
type Facade struct {
	backend   domain.Backend
	bus       domain.EventBus
	center    *notify.Center
	confirmer confirm.Confirmer
	logger    *slog.Logger
	viewFn    ViewFunc
}

// NewFacade creates the facade over a backend. The bus, notification center
// and confirmer are injected by reference; none are package-level globals.
func NewFacade(backend domain.Backend, bus domain.EventBus, center *notify.Center, confirmer confirm.Confirmer, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{
		backend:   backend,
		bus:       bus,
		center:    center,
		confirmer: confirmer,
		logger:    logger.With("component", "facade"),
	}
}

// SetViewFunc installs the callback bound to "View" notification actions.
// Without one, success notifications carry no action.
func (f *Facade) SetViewFunc(fn ViewFunc) { f.viewFn = fn }

// Notifications exposes the notification center, for wiring sinks.
func (f *Facade) Notifications() *notify.Center { return f.center }

// viewAction builds the optional action for a success notification.
func (f *Facade) viewAction(label string, c domain.Collection, id string) *notify.Action {
	if f.viewFn == nil || id == "" {
		return nil
	}
	view := f.viewFn
	return &notify.Action{Label: label, Invoke: func() { view(c, id) }}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// FetchItem returns one record. Reads post no notifications; failures
// propagate directly.
func (f *Facade) FetchItem(ctx context.Context, c domain.Collection, id string) (domain.Item, error) {
	return f.backend.Fetch(ctx, c, id)
}

// FetchAll returns every record in a collection.
func (f *Facade) FetchAll(ctx context.Context, c domain.Collection) ([]domain.Item, error) {
	return f.backend.FetchAll(ctx, c)
}

// Health probes both remote services. No notification, no event.
func (f *Facade) Health(ctx context.Context) domain.HealthReport {
	return f.backend.Health(ctx)
}

// ---------------------------------------------------------------------------
// Collection mutations
// ---------------------------------------------------------------------------

// CreateItem stores a new record. On success: success notification with a
// "View" action bound to the assigned identifier, then a created:<collection>
// event carrying the item.
func (f *Facade) CreateItem(ctx context.Context, c domain.Collection, partial domain.Item) (domain.Item, error) {
	created, err := f.backend.Create(ctx, c, partial)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to create %s: %v", c.Singular(), err))
		return nil, err
	}

	f.center.Notify(c.Singular()+" created successfully", notify.SeveritySuccess, 0,
		f.viewAction("View", c, created.ID()))
	f.bus.Publish(domain.NewEvent(domain.Created(c), created))
	return created, nil
}

// UpdateItem applies a partial change. Mirrors CreateItem but publishes
// updated:<collection>; the "View" action binds to the supplied identifier.
func (f *Facade) UpdateItem(ctx context.Context, c domain.Collection, id string, partial domain.Item) (domain.Item, error) {
	updated, err := f.backend.Update(ctx, c, id, partial)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to update %s: %v", c.Singular(), err))
		return nil, err
	}

	f.center.Notify(c.Singular()+" updated successfully", notify.SeveritySuccess, 0,
		f.viewAction("View", c, id))
	f.bus.Publish(domain.NewEvent(domain.Updated(c), updated))
	return updated, nil
}

// DeleteItem destroys a record after an interactive confirmation round-trip.
// The remote endpoint is never called before the user confirms. The return
// is true only when the user confirmed and the remote call succeeded; a
// cancelled or failed deletion yields false, never an error.
func (f *Facade) DeleteItem(ctx context.Context, c domain.Collection, id string) bool {
	req := confirm.NewRequest(
		"Delete "+c.Singular(),
		fmt.Sprintf("Are you sure you want to delete this %s? This action cannot be undone.", c.Singular()),
		"Delete", "Cancel",
	)

	confirmed, err := f.confirmer.Confirm(ctx, req)
	if err != nil {
		f.logger.Warn("delete confirmation aborted", "collection", c, "id", id, "error", err)
		return false
	}
	if !confirmed {
		f.center.Info("deletion cancelled")
		return false
	}

	if err := f.backend.Delete(ctx, c, id); err != nil {
		f.center.Error(fmt.Sprintf("failed to delete %s: %v", c.Singular(), err))
		return false
	}

	f.center.Success(c.Singular() + " deleted successfully")
	f.bus.Publish(domain.NewEvent(domain.Deleted(c), domain.Item{"_id": id}))
	return true
}

// ---------------------------------------------------------------------------
// Task execution
// ---------------------------------------------------------------------------

// ExecuteTask validates inputs against the task's input schema, then runs the
// task on the workflow service. On success: success notification with a
// "View Result" action, then a created:taskresults event.
func (f *Facade) ExecuteTask(ctx context.Context, taskID string, inputs map[string]interface{}) (*taskdomain.Result, error) {
	item, err := f.backend.Fetch(ctx, domain.CollectionTasks, taskID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to execute task: %v", err))
		return nil, err
	}
	def, err := domain.Decode[taskdomain.Task](item)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to execute task: %v", err))
		return nil, fmt.Errorf("decode task %s: %w", taskID, err)
	}

	if err := def.Inputs.Validate(inputs); err != nil {
		f.center.Error(fmt.Sprintf("invalid inputs for task %s: %v", def.Name, err))
		return nil, fmt.Errorf("validate inputs for task %q: %w", def.Name, err)
	}

	resultItem, err := f.backend.ExecuteTask(ctx, taskID, inputs)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to execute task %s: %v", def.Name, err))
		return nil, err
	}
	result, err := domain.Decode[taskdomain.Result](resultItem)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to execute task %s: %v", def.Name, err))
		return nil, fmt.Errorf("decode task result: %w", err)
	}

	f.center.Notify(fmt.Sprintf("task %s executed successfully", def.Name), notify.SeveritySuccess, 0,
		f.viewAction("View Result", domain.CollectionTaskResults, result.ID))
	f.bus.Publish(domain.NewEvent(domain.Created(domain.CollectionTaskResults), resultItem))
	return result, nil
}

// ---------------------------------------------------------------------------
// Chat operations
// ---------------------------------------------------------------------------

// GenerateChatResponse asks the workflow service for the next assistant turn.
// When generation occurred, the chat is re-fetched and an updated:chats event
// carries the refreshed object. The return is true only when a full
// generate-and-sync cycle completed.
func (f *Facade) GenerateChatResponse(ctx context.Context, chatID string) (bool, error) {
	generated, err := f.backend.GenerateChatResponse(ctx, chatID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to generate chat response: %v", err))
		return false, err
	}
	if !generated {
		return false, nil
	}

	refreshed, err := f.backend.Fetch(ctx, domain.CollectionChats, chatID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to refresh chat after generation: %v", err))
		return false, err
	}

	f.bus.Publish(domain.NewEvent(domain.Updated(domain.CollectionChats), refreshed))
	return true, nil
}

// SendMessage appends a message to a chat and returns the updated chat. Two
// events follow one logical action, in order: created:messages carrying the
// original message, then updated:chats carrying the returned chat.
func (f *Facade) SendMessage(ctx context.Context, chatID string, message chatdomain.Message) (*chatdomain.Chat, error) {
	msgItem, err := domain.Encode(message)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	updatedItem, err := f.backend.AddChatMessage(ctx, chatID, msgItem)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to send message: %v", err))
		return nil, err
	}
	updated, err := domain.Decode[chatdomain.Chat](updatedItem)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to send message: %v", err))
		return nil, fmt.Errorf("decode chat %s: %w", chatID, err)
	}

	f.bus.Publish(domain.NewEvent(domain.Created(domain.CollectionMessages), message))
	f.bus.Publish(domain.NewEvent(domain.Updated(domain.CollectionChats), updatedItem))
	return updated, nil
}

// UpdateMessageInChat replaces one message by identity, publishes
// updated:messages, then re-fetches the chat and publishes updated:chats.
func (f *Facade) UpdateMessageInChat(ctx context.Context, chatID string, message chatdomain.Message) (*chatdomain.Chat, error) {
	msgItem, err := domain.Encode(message)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	if _, err := f.backend.UpdateChatMessage(ctx, chatID, msgItem); err != nil {
		f.center.Error(fmt.Sprintf("failed to update message: %v", err))
		return nil, err
	}
	f.bus.Publish(domain.NewEvent(domain.Updated(domain.CollectionMessages), message))

	refreshedItem, err := f.backend.Fetch(ctx, domain.CollectionChats, chatID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to refresh chat: %v", err))
		return nil, err
	}
	refreshed, err := domain.Decode[chatdomain.Chat](refreshedItem)
	if err != nil {
		return nil, fmt.Errorf("decode chat %s: %w", chatID, err)
	}

	f.bus.Publish(domain.NewEvent(domain.Updated(domain.CollectionChats), refreshedItem))
	return refreshed, nil
}

// ---------------------------------------------------------------------------
// File operations
// ---------------------------------------------------------------------------

// RequestFileTranscript returns a transcript message for a stored file. With
// an existing transcript, regeneration is gated on a confirmation round-trip
// and the transcription endpoint is only called on an explicit "Generate
// New"; otherwise the transcript is generated and persisted unconditionally.
func (f *Facade) RequestFileTranscript(ctx context.Context, fileID, agentID, chatID string) (*chatdomain.Message, error) {
	item, err := f.backend.Fetch(ctx, domain.CollectionFiles, fileID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to fetch file: %v", err))
		return nil, err
	}
	ref, err := domain.Decode[filedomain.Reference](item)
	if err != nil {
		return nil, fmt.Errorf("decode file %s: %w", fileID, err)
	}

	if ref.HasTranscript() {
		req := confirm.NewRequest(
			"Transcript already exists",
			fmt.Sprintf("%s already has a transcript. Generate a new one or use the existing one?", ref.Filename),
			"Generate New", "Use Existing",
		)
		regenerate, err := f.confirmer.Confirm(ctx, req)
		if err != nil {
			return nil, err
		}
		if !regenerate {
			return ref.Transcript, nil
		}
	}

	transcriptItem, err := f.backend.GenerateFileTranscript(ctx, fileID, agentID, chatID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to generate transcript: %v", err))
		return nil, err
	}
	transcript, err := domain.Decode[chatdomain.Message](transcriptItem)
	if err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	// Persisting through UpdateItem keeps its notification/event contract.
	if _, err := f.UpdateItem(ctx, domain.CollectionFiles, fileID, domain.Item{"transcript": transcriptItem}); err != nil {
		return nil, err
	}
	return transcript, nil
}

// UploadFile stores raw bytes as a new file record, base64-encoded, routed
// through CreateItem so its notification/event contract applies.
func (f *Facade) UploadFile(ctx context.Context, filename string, content []byte) (*filedomain.Reference, error) {
	if len(content) == 0 {
		return nil, filedomain.ErrEmptyContent
	}

	payload, err := domain.Encode(filedomain.NewContentReference(filename, content))
	if err != nil {
		return nil, fmt.Errorf("encode file content: %w", err)
	}

	created, err := f.CreateItem(ctx, domain.CollectionFiles, payload)
	if err != nil {
		return nil, err
	}
	return domain.Decode[filedomain.Reference](created)
}

// UpdateFileContent replaces a stored file's binary content, routed through
// UpdateItem. The filename and derived type are preserved from the existing
// record.
func (f *Facade) UpdateFileContent(ctx context.Context, fileID string, content []byte) (*filedomain.Reference, error) {
	if len(content) == 0 {
		return nil, filedomain.ErrEmptyContent
	}

	item, err := f.backend.Fetch(ctx, domain.CollectionFiles, fileID)
	if err != nil {
		f.center.Error(fmt.Sprintf("failed to fetch file: %v", err))
		return nil, err
	}
	ref, err := domain.Decode[filedomain.Reference](item)
	if err != nil {
		return nil, fmt.Errorf("decode file %s: %w", fileID, err)
	}

	payload, err := domain.Encode(filedomain.NewContentReference(ref.Filename, content))
	if err != nil {
		return nil, fmt.Errorf("encode file content: %w", err)
	}

	updated, err := f.UpdateItem(ctx, domain.CollectionFiles, fileID, payload)
	if err != nil {
		return nil, err
	}
	return domain.Decode[filedomain.Reference](updated)
}

// ---------------------------------------------------------------------------
// Maintenance
// ---------------------------------------------------------------------------

// PurgeAndReinitializeDatabase destroys and re-seeds the remote database. On
// success the standalone databasePurged event fires; every collection is
// affected at once, so it carries no collection qualifier.
func (f *Facade) PurgeAndReinitializeDatabase(ctx context.Context) error {
	if err := f.backend.PurgeAndReinitialize(ctx); err != nil {
		f.center.Error(fmt.Sprintf("failed to purge database: %v", err))
		return err
	}

	f.center.Success("database purged and reinitialized")
	f.bus.Publish(domain.NewEvent(domain.TopicDatabasePurged, nil))
	return nil
}
