package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LogAction_WritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)

	err := logger.LogAction(context.Background(), "GOVERNANCE_VIOLATION", "t1", "c1", "model", "risk-model", "unapproved", nil)
	require.NoError(t, err)

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "AUDIT: "))

	jsonPart := strings.TrimSpace(strings.TrimPrefix(output, "AUDIT: "))

	var entry audit.Entry
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &entry))

	assert.Equal(t, "GOVERNANCE_VIOLATION", entry.Action)
	assert.Equal(t, "t1", entry.TenantID)
	assert.Equal(t, "c1", entry.CorrelationID)
	assert.Equal(t, "model", entry.ResourceType)
	assert.Equal(t, "risk-model", entry.ResourceID)
	assert.Equal(t, "unapproved", entry.Reason)
	assert.NotEmpty(t, entry.ID)
	assert.Len(t, entry.ID, 36) // UUID format: 8-4-4-4-12
}

func TestLogger_LogAction_WithExtra(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)

	extra := map[string]any{"stage": "guardrails"}
	err := logger.LogAction(context.Background(), "STAGE_COMPLETE", "t1", "c1", "event", "e1", "", extra)
	require.NoError(t, err)

	jsonPart := strings.TrimSpace(strings.TrimPrefix(buf.String(), "AUDIT: "))
	var entry audit.Entry
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &entry))

	assert.Equal(t, "guardrails", entry.Extra["stage"])
}

func TestLogger_LogAction_OrderIsPreservedAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)
	ctx := context.Background()

	require.NoError(t, logger.LogAction(ctx, "CONTEXT_RETRIEVED", "t1", "c1", "event", "e1", "", nil))
	require.NoError(t, logger.LogAction(ctx, "POLICY_EVALUATED", "t1", "c1", "event", "e1", "", nil))
	require.NoError(t, logger.LogAction(ctx, "RISK_SCORED", "t1", "c1", "event", "e1", "", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	wantOrder := []string{"CONTEXT_RETRIEVED", "POLICY_EVALUATED", "RISK_SCORED"}
	for i, line := range lines {
		jsonPart := strings.TrimPrefix(line, "AUDIT: ")
		var entry audit.Entry
		require.NoError(t, json.Unmarshal([]byte(jsonPart), &entry))
		assert.Equal(t, wantOrder[i], entry.Action)
	}
}

func TestLogger_NilWriterDefaultsToStdout(t *testing.T) {
	logger := audit.NewLoggerWithWriter(nil)
	assert.NotNil(t, logger)
}
