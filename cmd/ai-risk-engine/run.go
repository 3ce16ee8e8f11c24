package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/config"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/compliance"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/risk"
)

// runEvent parses the "run" subcommand's flags, wires collaborators,
// runs one event through the named workflow, and prints the resulting
// state as JSON.
func runEvent(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	workflowName := fs.String("workflow", "risk", `workflow to run: "risk" or "compliance"`)
	eventID := fs.String("event-id", "", "event ID (required)")
	tenantID := fs.String("tenant-id", "", "tenant ID (required)")
	correlationID := fs.String("correlation-id", "", "correlation ID (defaults to event-id)")
	rawEventJSON := fs.String("raw-event", "{}", "raw event payload as a JSON object")
	regulatoryFlags := fs.String("regulatory-flags", "", "comma-separated regulatory flags (compliance workflow only)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *eventID == "" || *tenantID == "" {
		_, _ = fmt.Fprintln(stderr, "run: -event-id and -tenant-id are required")
		return 2
	}
	if *correlationID == "" {
		*correlationID = *eventID
	}

	var rawEvent map[string]any
	if err := json.Unmarshal([]byte(*rawEventJSON), &rawEvent); err != nil {
		return fatal(stderr, fmt.Errorf("parsing -raw-event: %w", err))
	}

	collab, err := buildCollaborators(cfg)
	if err != nil {
		return fatal(stderr, err)
	}
	defer collab.Close()

	ctx := context.Background()

	switch *workflowName {
	case "risk":
		state := &domain.RiskState{
			EventID:       *eventID,
			TenantID:      *tenantID,
			CorrelationID: *correlationID,
			RawEvent:      rawEvent,
		}
		wf := risk.New(risk.Deps{
			AuditLogger:       collab.auditLogger,
			StateStore:        collab.stateStore,
			MetricsCollector:  collab.metrics,
			FailureClassifier: collab.classifier,
			ModelRegistry:     collab.modelRegistry,
			PromptRegistry:    collab.promptRegistry,
			Trigger:           collab.trigger,
		})
		result, err := wf.Run(ctx, state)
		if err != nil {
			return fatal(stderr, err)
		}
		return printJSON(stdout, stderr, result)

	case "compliance":
		var flags []string
		if *regulatoryFlags != "" {
			flags = strings.Split(*regulatoryFlags, ",")
		}
		state := &domain.ComplianceState{
			EventID:         *eventID,
			TenantID:        *tenantID,
			CorrelationID:   *correlationID,
			RawEvent:        rawEvent,
			RegulatoryFlags: flags,
		}
		wf := compliance.New(compliance.Deps{
			AuditLogger:       collab.auditLogger,
			StateStore:        collab.stateStore,
			MetricsCollector:  collab.metrics,
			FailureClassifier: collab.classifier,
			ModelRegistry:     collab.modelRegistry,
			PromptRegistry:    collab.promptRegistry,
			Trigger:           collab.trigger,
		})
		result, err := wf.Run(ctx, state)
		if err != nil {
			return fatal(stderr, err)
		}
		return printJSON(stdout, stderr, result)

	default:
		_, _ = fmt.Fprintf(stderr, "run: unknown -workflow %q\n", *workflowName)
		return 2
	}
}

func printJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fatal(stderr, err)
	}
	return 0
}
