package task

import (
	"testing"
)

// TestFunctionParametersValidate verifies schema enforcement: required keys
// must be present, supplied keys must be declared and type-compatible, and a
// zero schema accepts any inputs.
func TestFunctionParametersValidate(t *testing.T) {
	schema := FunctionParameters{
		Type: TypeObject,
		Properties: map[string]ParameterDefinition{
			"topic":   {Type: TypeString},
			"limit":   {Type: TypeInteger},
			"ratio":   {Type: TypeNumber},
			"dry_run": {Type: TypeBoolean},
		},
		Required: []string{"topic"},
	}

	tests := []struct {
		name    string
		schema  FunctionParameters
		inputs  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "all valid",
			schema: schema,
			inputs: map[string]interface{}{"topic": "go", "limit": float64(3), "dry_run": true},
		},
		{
			name:   "required only",
			schema: schema,
			inputs: map[string]interface{}{"topic": "go"},
		},
		{
			name:    "missing required",
			schema:  schema,
			inputs:  map[string]interface{}{"limit": float64(3)},
			wantErr: true,
		},
		{
			name:    "nil inputs with required",
			schema:  schema,
			inputs:  nil,
			wantErr: true,
		},
		{
			name:    "wrong type for string",
			schema:  schema,
			inputs:  map[string]interface{}{"topic": 42},
			wantErr: true,
		},
		{
			name:    "fractional value for integer",
			schema:  schema,
			inputs:  map[string]interface{}{"topic": "go", "limit": 2.5},
			wantErr: true,
		},
		{
			name:   "whole float accepted as integer",
			schema: schema,
			inputs: map[string]interface{}{"topic": "go", "limit": float64(2)},
		},
		{
			name:   "integer accepted as number",
			schema: schema,
			inputs: map[string]interface{}{"topic": "go", "ratio": float64(4)},
		},
		{
			name:    "undeclared key rejected",
			schema:  schema,
			inputs:  map[string]interface{}{"topic": "go", "unknown": "x"},
			wantErr: true,
		},
		{
			name:   "zero value for required accepted",
			schema: schema,
			inputs: map[string]interface{}{"topic": ""},
		},
		{
			name:   "zero schema accepts anything",
			schema: FunctionParameters{},
			inputs: map[string]interface{}{"whatever": []interface{}{1, 2}},
		},
		{
			name:   "zero schema accepts nil",
			schema: FunctionParameters{},
			inputs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate(tt.inputs)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected inputs to validate, got %v", err)
			}
		})
	}
}

func TestParameterDefinitionCheck(t *testing.T) {
	tests := []struct {
		name    string
		def     ParameterDefinition
		value   interface{}
		wantErr bool
	}{
		{name: "string ok", def: ParameterDefinition{Type: TypeString}, value: "x"},
		{name: "string wrong", def: ParameterDefinition{Type: TypeString}, value: 1, wantErr: true},
		{name: "boolean ok", def: ParameterDefinition{Type: TypeBoolean}, value: false},
		{name: "boolean wrong", def: ParameterDefinition{Type: TypeBoolean}, value: "true", wantErr: true},
		{name: "object ok", def: ParameterDefinition{Type: TypeObject}, value: map[string]interface{}{"a": 1}},
		{name: "object wrong", def: ParameterDefinition{Type: TypeObject}, value: []interface{}{}, wantErr: true},
		{name: "array ok", def: ParameterDefinition{Type: TypeArray}, value: []interface{}{"a"}},
		{name: "array wrong", def: ParameterDefinition{Type: TypeArray}, value: "a", wantErr: true},
		{name: "nil passes", def: ParameterDefinition{Type: TypeString}, value: nil},
		{name: "unknown type passes", def: ParameterDefinition{Type: "custom"}, value: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.check(tt.value)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestResultSucceeded(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{name: "complete zero code", result: Result{Status: StatusComplete, ResultCode: 0}, want: true},
		{name: "complete nonzero code", result: Result{Status: StatusComplete, ResultCode: 2}, want: false},
		{name: "failed", result: Result{Status: StatusFailed}, want: false},
		{name: "pending", result: Result{Status: StatusPending}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Succeeded(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
