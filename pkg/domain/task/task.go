// Package task defines the task bounded context: executable task definitions
// with a typed input schema, and the results the workflow service stores
// after running them.
package task

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ---------------------------------------------------------------------------
// Task definition
// ---------------------------------------------------------------------------

// Task mirrors one backend task record. Execution happens remotely; the
// client only reads definitions and submits inputs.
type Task struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"task_name"`
	Description string `json:"task_description,omitempty"`
	Type        string `json:"task_type,omitempty"`

	// Inputs is the typed schema enforced before execution. Tasks with no
	// schema accept any inputs.
	Inputs FunctionParameters `json:"input_variables,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ---------------------------------------------------------------------------
// Input schema
// ---------------------------------------------------------------------------

// ParameterType names the JSON-schema-style type of one task input.
type ParameterType string

const (
	TypeString  ParameterType = "string"
	TypeNumber  ParameterType = "number"
	TypeInteger ParameterType = "integer"
	TypeBoolean ParameterType = "boolean"
	TypeObject  ParameterType = "object"
	TypeArray   ParameterType = "array"
)

// ParameterDefinition describes one named task input.
type ParameterDefinition struct {
	Type        ParameterType `json:"type"`
	Description string        `json:"description,omitempty"`
	Default     interface{}   `json:"default,omitempty"`
}

// FunctionParameters is the input schema of a task: an object with named,
// typed properties and a required list. It replaces untyped task inputs at
// the facade boundary.
type FunctionParameters struct {
	Type       ParameterType                  `json:"type"`
	Properties map[string]ParameterDefinition `json:"properties,omitempty"`
	Required   []string                       `json:"required,omitempty"`
}

// IsZero reports whether no schema is defined.
func (p FunctionParameters) IsZero() bool {
	return p.Type == "" && len(p.Properties) == 0 && len(p.Required) == 0
}

// Validate checks submitted inputs against the schema: every required
// property must be present and every supplied property must be declared and
// type-compatible. A zero schema accepts anything.
func (p FunctionParameters) Validate(inputs map[string]interface{}) error {
	if p.IsZero() {
		return nil
	}

	// Map reports missing non-optional keys and undeclared extra keys on
	// its own; the per-key rule only checks the value's type.
	keys := make([]*validation.KeyRules, 0, len(p.Properties))
	for name, def := range p.Properties {
		kr := validation.Key(name, validation.By(def.check))
		if !p.isRequired(name) {
			kr = kr.Optional()
		}
		keys = append(keys, kr)
	}

	if inputs == nil {
		inputs = map[string]interface{}{}
	}
	return validation.Validate(inputs, validation.Map(keys...))
}

func (p FunctionParameters) isRequired(name string) bool {
	for _, r := range p.Required {
		if r == name {
			return true
		}
	}
	return false
}

// check is the per-property type rule used by Validate.
func (d ParameterDefinition) check(value interface{}) error {
	if value == nil {
		return nil
	}
	switch d.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("must be a string")
		}
	case TypeNumber:
		if !isNumber(value) {
			return fmt.Errorf("must be a number")
		}
	case TypeInteger:
		if !isInteger(value) {
			return fmt.Errorf("must be an integer")
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("must be a boolean")
		}
	case TypeObject:
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("must be an object")
		}
	case TypeArray:
		if _, ok := value.([]interface{}); !ok {
			return fmt.Errorf("must be an array")
		}
	}
	return nil
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

func isInteger(v interface{}) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		// JSON decoding yields float64 for all numbers.
		return n == float64(int64(n))
	}
	return false
}

// ---------------------------------------------------------------------------
// Task result
// ---------------------------------------------------------------------------

// ResultStatus is the lifecycle state of a stored task result.
type ResultStatus string

const (
	StatusPending  ResultStatus = "pending"
	StatusComplete ResultStatus = "complete"
	StatusFailed   ResultStatus = "failed"
)

func (rs ResultStatus) String() string { return string(rs) }

// Result mirrors one backend task result record: the outputs, diagnostics,
// and inputs echo stored by the workflow service after execution.
type Result struct {
	ID         string                 `json:"_id,omitempty"`
	TaskID     string                 `json:"task_id"`
	TaskName   string                 `json:"task_name,omitempty"`
	Status     ResultStatus           `json:"status"`
	ResultCode int                    `json:"result_code"`
	Outputs    string                 `json:"task_outputs,omitempty"`
	Inputs     map[string]interface{} `json:"task_inputs,omitempty"`
	Diagnostic string                 `json:"result_diagnostic,omitempty"`
	CreatedAt  string                 `json:"created_at,omitempty"`
}

// Succeeded reports whether execution completed with a zero result code.
func (r Result) Succeeded() bool {
	return r.Status == StatusComplete && r.ResultCode == 0
}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskNotFound TaskError = "task not found"
)
