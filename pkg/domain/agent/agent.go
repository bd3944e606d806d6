// Package agent defines the agent bounded context: a named persona with a
// system prompt reference and model bindings per capability, owned by the
// remote backend and answering inside chats.
package agent

// ---------------------------------------------------------------------------
// Agent record
// ---------------------------------------------------------------------------

// Agent mirrors one backend agent record. The client holds transient,
// non-authoritative copies; all mutation goes through the remote API.
type Agent struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`

	// SystemMessage references the prompt used as the agent's system message.
	SystemMessage string `json:"system_message,omitempty"`

	// Models binds a model short name to each capability the agent uses.
	Models map[ModelCapability]string `json:"models,omitempty"`

	// MaxConsecutiveAutoReply caps unprompted assistant turns.
	MaxConsecutiveAutoReply int `json:"max_consecutive_auto_reply,omitempty"`

	// Capability flags
	HasFunctions bool `json:"has_functions"`
	HasCodeExec  bool `json:"has_code_exec"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ChatModel returns the model short name bound to the chat capability, or "".
func (a Agent) ChatModel() string {
	return a.Models[CapabilityChat]
}

// IsZero reports whether the agent is the empty record.
func (a Agent) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

// ---------------------------------------------------------------------------
// Value objects
// ---------------------------------------------------------------------------

// ModelCapability names the roles a model can fill for an agent.
type ModelCapability string

const (
	CapabilityChat       ModelCapability = "chat"
	CapabilityImageGen   ModelCapability = "img_gen"
	CapabilityEmbeddings ModelCapability = "embeddings"
	CapabilitySpeech     ModelCapability = "tts"
)

func (mc ModelCapability) String() string { return string(mc) }

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

type AgentError string

func (e AgentError) Error() string { return string(e) }

const (
	ErrAgentNotFound AgentError = "agent not found"
	ErrNoChatModel   AgentError = "agent has no chat model bound"
)
