// Package catalog defines the reference records the platform manages around
// chats and tasks: model deployments, API credentials, prompt templates, and
// reusable parameter definitions.
package catalog

// Model mirrors one backend model record: a named deployment with its
// context window and sampling defaults.
type Model struct {
	ID          string  `json:"_id,omitempty"`
	ShortName   string  `json:"short_name"`
	ModelName   string  `json:"model_name,omitempty"`
	Deployment  string  `json:"deployment,omitempty"`
	Type        string  `json:"model_type,omitempty"`
	ContextSize int     `json:"ctx_size,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	APIName     string  `json:"api_name,omitempty"`
}

// APIStatus is the backend-reported health of a configured API.
type APIStatus string

const (
	APIHealthy      APIStatus = "healthy"
	APIUnhealthy    APIStatus = "unhealthy"
	APIUnknownState APIStatus = "unknown"
)

// API mirrors one backend API credential record.
type API struct {
	ID       string    `json:"_id,omitempty"`
	Type     string    `json:"api_type"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
	Health   APIStatus `json:"health_status,omitempty"`
}

// Prompt mirrors one backend prompt record.
type Prompt struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	IsTemplated bool   `json:"is_templated"`
}

// Parameter mirrors one backend parameter record, a reusable input
// definition referenced by task schemas.
type Parameter struct {
	ID          string      `json:"_id,omitempty"`
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}
