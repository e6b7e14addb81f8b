package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"valid without optional", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"invalid enum", `{"name":"Eve","age":9,"grade":"D"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, []byte(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestDecodeHFEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  hfKind
		wantText  string
		wantError string
		wantETA   float64
	}{
		{
			name:     "generation list",
			body:     `[{"generated_text":"Hello there"}]`,
			wantKind: hfKindGeneration,
			wantText: "Hello there",
		},
		{
			name:     "generation object",
			body:     `{"generated_text":"Hi"}`,
			wantKind: hfKindGeneration,
			wantText: "Hi",
		},
		{
			name:     "empty list",
			body:     `[]`,
			wantKind: hfKindGeneration,
		},
		{
			name:      "error string",
			body:      `{"error":"Model is loading","estimated_time":12.5}`,
			wantKind:  hfKindError,
			wantError: "Model is loading",
			wantETA:   12.5,
		},
		{
			name:      "error list",
			body:      `{"error":["a","b"]}`,
			wantKind:  hfKindError,
			wantError: "a; b",
		},
		{
			name:     "list of wrong items",
			body:     `[{"label":"POSITIVE","score":0.9}]`,
			wantKind: hfKindUnknown,
		},
		{
			name:     "not json",
			body:     `Service Unavailable`,
			wantKind: hfKindUnknown,
		},
		{
			name:     "error of wrong type",
			body:     `{"error":42}`,
			wantKind: hfKindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := decodeHFEnvelope([]byte(tt.body))
			if env.Kind != tt.wantKind {
				t.Fatalf("kind = %d, want %d", env.Kind, tt.wantKind)
			}
			if env.Text != tt.wantText {
				t.Errorf("text = %q, want %q", env.Text, tt.wantText)
			}
			if env.Error != tt.wantError {
				t.Errorf("error = %q, want %q", env.Error, tt.wantError)
			}
			if env.EstimatedTime != tt.wantETA {
				t.Errorf("estimated time = %v, want %v", env.EstimatedTime, tt.wantETA)
			}
		})
	}
}
