package types

import "encoding/json"

// Envelope frames every message on the live socket, in both
// directions: a name identifying the event and its JSON payload.
type Envelope struct {
	// Event name, one of the Event* constants.
	// example: response
	Event string `json:"event" example:"response"`
	// Event payload; shape depends on Event.
	Data json.RawMessage `json:"data,omitempty"`
}

// Socket event names.
const (
	// EventPrompt submits a question (client to server, AskRequest).
	EventPrompt = "prompt"
	// EventAccepted acknowledges a submission (server to client, AskAccepted).
	EventAccepted = "accepted"
	// EventResponse delivers the outcome (server to client, AskResult).
	EventResponse = "response"
	// EventGetStatuses requests statuses for a list of workflow
	// identifiers (client to server, JSON array of strings).
	EventGetStatuses = "get_workflow_statuses"
	// EventStatuses carries the batch result (server to client, WorkflowStatuses).
	EventStatuses = "workflow_statuses"
	// EventStatusesError reports a batch-level failure (server to client, ErrorResponse).
	EventStatusesError = "workflow_statuses_error"
	// EventConnected greets a client right after the upgrade.
	EventConnected = "connected"
	// EventError reports a malformed or unknown inbound event.
	EventError = "error"
)

// Refined execution statuses layered over the engine's own set. The
// engine reports a single RUNNING state; the status channel splits it
// by where the execution actually sits.
const (
	// StatusAwaitingWorker means the execution is RUNNING with a
	// workflow task pending, i.e. no worker has picked it up.
	StatusAwaitingWorker = "AWAITING_WORKER"
	// StatusRunningActivities means the execution is RUNNING with at
	// least one activity in flight.
	StatusRunningActivities = "RUNNING_ACTIVITIES"
	// StatusUnknown marks identifiers whose lookup failed.
	StatusUnknown = "UNKNOWN"
)
