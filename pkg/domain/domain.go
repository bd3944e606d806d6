// Package domain defines the shared building blocks of the Atelier client:
// the named backend collections, the opaque records they contain, and the
// event vocabulary used to keep views in sync after remote operations.
package domain

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Collections — the named entity categories served by the backend
// ---------------------------------------------------------------------------

// Collection identifies a named category of backend-managed records.
type Collection string

const (
	CollectionChats       Collection = "chats"
	CollectionMessages    Collection = "messages"
	CollectionAgents      Collection = "agents"
	CollectionModels      Collection = "models"
	CollectionPrompts     Collection = "prompts"
	CollectionTasks       Collection = "tasks"
	CollectionTaskResults Collection = "taskresults"
	CollectionFiles       Collection = "files"
	CollectionAPIs        Collection = "apis"
	CollectionParameters  Collection = "parameters"
)

// AllCollections returns every collection the backend serves.
func AllCollections() []Collection {
	return []Collection{
		CollectionChats, CollectionMessages, CollectionAgents, CollectionModels,
		CollectionPrompts, CollectionTasks, CollectionTaskResults,
		CollectionFiles, CollectionAPIs, CollectionParameters,
	}
}

// String implements fmt.Stringer.
func (c Collection) String() string { return string(c) }

// Valid returns true if the collection is one the backend serves.
func (c Collection) Valid() bool {
	for _, known := range AllCollections() {
		if known == c {
			return true
		}
	}
	return false
}

// Singular returns the collection name for a single record, used in
// user-facing messages ("chat", "task result").
func (c Collection) Singular() string {
	switch c {
	case CollectionTaskResults:
		return "task result"
	case CollectionAPIs:
		return "API"
	default:
		s := string(c)
		if len(s) > 1 && s[len(s)-1] == 's' {
			return s[:len(s)-1]
		}
		return s
	}
}

// ParseCollection converts user input into a known Collection.
func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown collection %q (known: %v)", s, AllCollections())
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Items — opaque backend records
// ---------------------------------------------------------------------------

// Item is an opaque record owned by the remote backend. The client holds
// transient, non-authoritative copies and never invents identifiers for
// persisted items.
type Item map[string]interface{}

// ID returns the record's backend-assigned identifier, or "" if unset.
// The database service uses "_id"; "id" is accepted as a fallback.
func (it Item) ID() string {
	if id, ok := it["_id"].(string); ok && id != "" {
		return id
	}
	if id, ok := it["id"].(string); ok {
		return id
	}
	return ""
}

// Clone returns a shallow copy of the item.
func (it Item) Clone() Item {
	if it == nil {
		return nil
	}
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// Decode converts an opaque item into a typed record via a JSON round trip.
func Decode[T any](it Item) (*T, error) {
	raw, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return &out, nil
}

// Encode converts a typed record into an opaque item via a JSON round trip.
func Encode(v interface{}) (Item, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var out Item
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Shared value objects
// ---------------------------------------------------------------------------

// MessageRole represents who authored a message in a conversation.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
	RoleTool      MessageRole = "tool"
)

func (mr MessageRole) String() string { return string(mr) }
