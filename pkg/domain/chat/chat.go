// Package chat defines the chat bounded context: a conversation record owned
// by the remote backend, its ordered message history, the single agent that
// answers in it, and the task definitions attached to it as functions.
package chat

import (
	"github.com/atelier-ai/atelier/pkg/domain"
	"github.com/atelier-ai/atelier/pkg/domain/agent"
	"github.com/atelier-ai/atelier/pkg/domain/task"
)

// ---------------------------------------------------------------------------
// Chat record
// ---------------------------------------------------------------------------

// Chat mirrors one backend chat record. The client's copy is transient and
// non-authoritative: the displayed message sequence is always a
// prefix-consistent mirror of the last fetched or locally appended state.
type Chat struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`

	// Messages is the ordered conversation history. No reordering, no gaps.
	Messages []Message `json:"messages"`

	// Agent is the single agent that answers in this chat.
	Agent agent.Agent `json:"agent"`

	// Functions holds the task definitions attached to this chat, embedded
	// by value rather than referenced by identifier.
	Functions []task.Task `json:"functions"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// HasFunction reports whether a task with the given identifier is attached.
func (c *Chat) HasFunction(taskID string) bool {
	if c == nil {
		return false
	}
	for _, fn := range c.Functions {
		if fn.ID == taskID {
			return true
		}
	}
	return false
}

// LastRole returns the role of the most recent message, or "" when empty.
func (c *Chat) LastRole() domain.MessageRole {
	if c == nil || len(c.Messages) == 0 {
		return ""
	}
	return c.Messages[len(c.Messages)-1].Role
}

// ---------------------------------------------------------------------------
// Message value object
// ---------------------------------------------------------------------------

// MessageType classifies a message's content.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageAudio MessageType = "audio"
	MessageFile  MessageType = "file"
)

// Message is a single conversational turn. Once appended to a chat it is
// never mutated except through the explicit update-message operation, which
// replaces it by identity.
type Message struct {
	ID      string             `json:"_id,omitempty"`
	Role    domain.MessageRole `json:"role"`
	Content string             `json:"content"`

	// GeneratedBy tags the producer ("user", "llm", "tool", a model name).
	GeneratedBy string `json:"generated_by,omitempty"`
	// Step names the workflow step that produced this message, if any.
	Step string `json:"step,omitempty"`
	// Type defaults to text when unset.
	Type MessageType `json:"type,omitempty"`
	// References lists identifiers of files this message refers to.
	References []string `json:"references,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// NewUserMessage builds a plain text message authored by the user.
func NewUserMessage(content string) Message {
	return Message{
		Role:        domain.RoleUser,
		Content:     content,
		GeneratedBy: "user",
		Type:        MessageText,
	}
}

// TrimTrailingNonUser removes the trailing run of non-user messages, i.e.
// everything after (and including) the last assistant/system/tool streak at
// the end of the sequence. An all-assistant history trims to empty; that is
// accepted, not guarded. The input slice is not modified.
func TrimTrailingNonUser(messages []Message) []Message {
	end := len(messages)
	for end > 0 && messages[end-1].Role != domain.RoleUser {
		end--
	}
	trimmed := make([]Message, end)
	copy(trimmed, messages[:end])
	return trimmed
}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

type ChatError string

func (e ChatError) Error() string { return string(e) }

const (
	ErrNoChatSelected ChatError = "no chat selected"
	ErrEmptyMessage   ChatError = "message content cannot be empty"
)
