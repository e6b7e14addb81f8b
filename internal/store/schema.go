package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmRequestEventsTableName = "llm_request_events"

// Column names of llm_request_events.
const (
	colID            = "id"
	colSequence      = "sequence"
	colTimestamp     = "timestamp"
	colProvider      = "provider"
	colModel         = "model"
	colPurpose       = "purpose"
	colInputTokens   = "input_tokens"
	colOutputTokens  = "output_tokens"
	colLatencyMs     = "latency_ms"
	colSuccess       = "success"
	colPromptChars   = "prompt_chars"
	colResponseChars = "response_chars"
	colErrorKind     = "error_kind"
	colErrorMessage  = "error_message"
)

var (
	llmRequestEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colProvider, Type: field.TypeString},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colPromptChars, Type: field.TypeInt, Default: 0},
		{Name: colResponseChars, Type: field.TypeInt, Default: 0},
		{Name: colErrorKind, Type: field.TypeString, Default: ""},
		{Name: colErrorMessage, Type: field.TypeString, Default: ""},
	}

	llmRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTableName,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmRequestEventsColumns[9]}},
		},
	}

	tables = []*schema.Table{llmRequestEventsTable}
)

// migrate creates or upgrades the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, tables...)
}
