package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atelier-ai/atelier/pkg/domain"
	agentdomain "github.com/atelier-ai/atelier/pkg/domain/agent"
	chatdomain "github.com/atelier-ai/atelier/pkg/domain/chat"
	taskdomain "github.com/atelier-ai/atelier/pkg/domain/task"
)

// ---------------------------------------------------------------------------
// Chat session controller
// ---------------------------------------------------------------------------

// ChatController owns the locally displayed slice of one chat session: the
// message list, the chat's single agent, and the generation-in-progress
// flag. It drives conversational turns through the facade.
//
// Mutating operations are logged no-ops when no chat is selected. State
// mutations are serialized by a mutex, which is never held across a remote
// call; the last completed remote call wins. Failures are logged and
// swallowed here because the facade already posted the one user-visible
// signal.
type ChatController struct {
	facade *Facade
	logger *slog.Logger

	mu         sync.Mutex
	current    *chatdomain.Chat
	messages   []chatdomain.Message
	agent      agentdomain.Agent
	generating bool
}

// NewChatController creates a controller with no chat selected.
func NewChatController(facade *Facade, logger *slog.Logger) *ChatController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatController{
		facade: facade,
		logger: logger.With("component", "chat"),
	}
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// SelectChat fetches a chat and atomically replaces the message list, the
// agent, and the current-chat reference. On failure all three stay untouched.
func (c *ChatController) SelectChat(ctx context.Context, id string) {
	if c.refresh(ctx, id) {
		c.logger.Debug("chat selected", "chat_id", id)
	}
}

// refresh fetches a chat and swaps the local state in one lock acquisition.
func (c *ChatController) refresh(ctx context.Context, id string) bool {
	item, err := c.facade.FetchItem(ctx, domain.CollectionChats, id)
	if err != nil {
		c.logger.Warn("fetch chat failed", "chat_id", id, "error", err)
		return false
	}
	ch, err := domain.Decode[chatdomain.Chat](item)
	if err != nil {
		c.logger.Warn("decode chat failed", "chat_id", id, "error", err)
		return false
	}

	c.mu.Lock()
	c.current = ch
	c.messages = append([]chatdomain.Message(nil), ch.Messages...)
	c.agent = ch.Agent
	c.mu.Unlock()
	return true
}

// ---------------------------------------------------------------------------
// Conversational turns
// ---------------------------------------------------------------------------

// SendMessage performs the remote send first and appends locally only after
// remote confirmation, then triggers response generation. On remote failure
// nothing is appended and no generation starts.
func (c *ChatController) SendMessage(ctx context.Context, chatID string, message chatdomain.Message) {
	c.mu.Lock()
	selected := c.current != nil
	c.mu.Unlock()
	if !selected {
		c.logger.Debug("send message skipped", "reason", chatdomain.ErrNoChatSelected)
		return
	}
	if message.Content == "" {
		c.logger.Debug("send message skipped", "reason", chatdomain.ErrEmptyMessage)
		return
	}

	updated, err := c.facade.SendMessage(ctx, chatID, message)
	if err != nil {
		c.logger.Warn("send message failed", "chat_id", chatID, "error", err)
		return
	}

	c.mu.Lock()
	c.current = updated
	c.messages = append([]chatdomain.Message(nil), updated.Messages...)
	c.agent = updated.Agent
	c.mu.Unlock()

	c.GenerateResponse(ctx)
}

// GenerateResponse asks the workflow service for the next assistant turn.
// The generating flag is set for the duration and is false on every exit
// path; when generation occurred the chat is re-fetched.
func (c *ChatController) GenerateResponse(ctx context.Context) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		c.logger.Debug("generate response skipped", "reason", chatdomain.ErrNoChatSelected)
		return
	}
	id := c.current.ID
	c.generating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.generating = false
		c.mu.Unlock()
	}()

	generated, err := c.facade.GenerateChatResponse(ctx, id)
	if err != nil {
		c.logger.Warn("generate chat response failed", "chat_id", id, "error", err)
		return
	}
	if generated {
		c.refresh(ctx, id)
	}
}

// RegenerateResponse trims the trailing non-user run from the local message
// sequence, persists the trimmed history, and generates again. An
// all-assistant history trims to empty; that is accepted.
func (c *ChatController) RegenerateResponse(ctx context.Context) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		c.logger.Debug("regenerate skipped", "reason", chatdomain.ErrNoChatSelected)
		return
	}
	id := c.current.ID
	trimmed := chatdomain.TrimTrailingNonUser(c.messages)
	c.mu.Unlock()

	if _, err := c.facade.UpdateItem(ctx, domain.CollectionChats, id, domain.Item{"messages": trimmed}); err != nil {
		c.logger.Warn("persist trimmed history failed", "chat_id", id, "error", err)
		return
	}

	c.mu.Lock()
	c.messages = trimmed
	if c.current != nil {
		c.current.Messages = append([]chatdomain.Message(nil), trimmed...)
	}
	c.mu.Unlock()

	c.GenerateResponse(ctx)
}

// ---------------------------------------------------------------------------
// Task attachment
// ---------------------------------------------------------------------------

// AddTaskToChat attaches a task definition to the selected chat by value.
// A logged no-op when no chat is selected, the task is missing remotely, or
// it is already attached; otherwise the chat is persisted and reloaded.
func (c *ChatController) AddTaskToChat(ctx context.Context, taskID string) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if current == nil {
		c.logger.Debug("add task skipped", "reason", chatdomain.ErrNoChatSelected)
		return
	}
	if c.IsTaskInChat(taskID) {
		c.logger.Debug("add task skipped: already attached", "task_id", taskID)
		return
	}

	item, err := c.facade.FetchItem(ctx, domain.CollectionTasks, taskID)
	if err != nil {
		c.logger.Warn("fetch task failed", "task_id", taskID, "error", err)
		return
	}
	def, err := domain.Decode[taskdomain.Task](item)
	if err != nil {
		c.logger.Warn("decode task failed", "task_id", taskID, "error", err)
		return
	}

	functions := append(append([]taskdomain.Task(nil), current.Functions...), *def)
	if _, err := c.facade.UpdateItem(ctx, domain.CollectionChats, current.ID, domain.Item{"functions": functions}); err != nil {
		c.logger.Warn("attach task failed", "chat_id", current.ID, "task_id", taskID, "error", err)
		return
	}

	c.SelectChat(ctx, current.ID)
}

// IsTaskInChat reports whether a task is attached to the selected chat.
// False when no chat is selected.
func (c *ChatController) IsTaskInChat(taskID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.HasFunction(taskID)
}

// ---------------------------------------------------------------------------
// Collection reads
// ---------------------------------------------------------------------------

// AvailableTasks returns every task definition the backend serves.
// Malformed records are skipped with a log line.
func (c *ChatController) AvailableTasks(ctx context.Context) ([]taskdomain.Task, error) {
	items, err := c.facade.FetchAll(ctx, domain.CollectionTasks)
	if err != nil {
		return nil, err
	}

	tasks := make([]taskdomain.Task, 0, len(items))
	for _, it := range items {
		t, err := domain.Decode[taskdomain.Task](it)
		if err != nil {
			c.logger.Warn("skip malformed task record", "error", err)
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

// AvailableTaskResults returns every stored task result.
func (c *ChatController) AvailableTaskResults(ctx context.Context) ([]taskdomain.Result, error) {
	items, err := c.facade.FetchAll(ctx, domain.CollectionTaskResults)
	if err != nil {
		return nil, err
	}

	results := make([]taskdomain.Result, 0, len(items))
	for _, it := range items {
		r, err := domain.Decode[taskdomain.Result](it)
		if err != nil {
			c.logger.Warn("skip malformed task result record", "error", err)
			continue
		}
		results = append(results, *r)
	}
	return results, nil
}

// ---------------------------------------------------------------------------
// State accessors
// ---------------------------------------------------------------------------

// Generating reports whether a response generation is in flight.
func (c *ChatController) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// SelectedChatID returns the identifier of the selected chat, or "".
func (c *ChatController) SelectedChatID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.ID
}

// CurrentChat returns a copy of the selected chat, or nil.
func (c *ChatController) CurrentChat() *chatdomain.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cp := *c.current
	cp.Messages = append([]chatdomain.Message(nil), c.current.Messages...)
	cp.Functions = append([]taskdomain.Task(nil), c.current.Functions...)
	return &cp
}

// Messages returns a copy of the displayed message sequence.
func (c *ChatController) Messages() []chatdomain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]chatdomain.Message(nil), c.messages...)
}

// ChatAgent returns the selected chat's agent; zero value when none.
func (c *ChatController) ChatAgent() agentdomain.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}
