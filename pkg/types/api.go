package types

// AskRequest is the payload for submitting a question, either as the
// body of POST /ask or as the data of a "prompt" socket event.
type AskRequest struct {
	// Required question text.
	// example: What is the brightest star in the northern sky
	Prompt string `json:"prompt" example:"What is the brightest star in the northern sky"`
	// Optional backend identifier. If empty, the server default is used.
	// example: remote-large
	Backend string `json:"backend,omitempty" example:"remote-large"`
}

// AskAccepted acknowledges a submission. The question keeps running
// after this is sent; the answer arrives later as an AskResult.
type AskAccepted struct {
	// Workflow identifier assigned to this question.
	// example: question-workflow-1a2b3c4d
	ID string `json:"id" example:"question-workflow-1a2b3c4d"`
	// Run identifier of the started workflow execution.
	// example: 0196a7e2-66cd-7d7f-b0d2-6a2d1db1f0a4
	RunID string `json:"run_id"`
	// Echo of the submitted prompt.
	Prompt string `json:"prompt"`
	// Backend the question was routed to.
	// example: remote-large
	Backend string `json:"backend" example:"remote-large"`
}

// AskResult carries the outcome of a completed question.
type AskResult struct {
	// Workflow identifier of the question.
	// example: question-workflow-1a2b3c4d
	ID string `json:"id" example:"question-workflow-1a2b3c4d"`
	// Run identifier of the workflow execution.
	RunID string `json:"run_id"`
	// Echo of the submitted prompt.
	Prompt string `json:"prompt"`
	// Generated answer. Empty when Error is set.
	Response string `json:"response,omitempty"`
	// Terminal failure message. Empty on success.
	Error string `json:"error,omitempty"`
}

// RunStatus describes one workflow execution as reported by the
// orchestration engine, with RUNNING refined into the phases below.
type RunStatus struct {
	// Workflow identifier the status refers to.
	// example: question-workflow-1a2b3c4d
	ID string `json:"id" example:"question-workflow-1a2b3c4d"`
	// Run identifier, empty when the lookup failed.
	RunID string `json:"run_id,omitempty"`
	// Registered workflow type name.
	// example: ask-question
	WorkflowType string `json:"workflow_type,omitempty" example:"ask-question"`
	// Refined status; RUNNING is reported as AWAITING_WORKER or
	// RUNNING_ACTIVITIES, failed lookups as UNKNOWN.
	// example: RUNNING_ACTIVITIES
	Status string `json:"status" example:"RUNNING_ACTIVITIES"`
	// Engine status before refinement.
	// example: RUNNING
	OriginalStatus string `json:"original_status,omitempty" example:"RUNNING"`
	// Start time, RFC 3339; empty when not yet started.
	StartTime string `json:"start_time,omitempty"`
	// Execution time, RFC 3339. Differs from StartTime for retried or
	// delayed executions.
	ExecutionTime string `json:"execution_time,omitempty"`
	// Close time, RFC 3339; empty while the execution is open.
	CloseTime string `json:"close_time,omitempty"`
	// Task queue the execution is scheduled on.
	// example: question-task-queue
	TaskQueue string `json:"task_queue,omitempty" example:"question-task-queue"`
	// Lookup error, set only when Status is UNKNOWN.
	Error string `json:"error,omitempty"`
}

// WorkflowStatuses wraps a batch of per-execution statuses.
type WorkflowStatuses struct {
	// One entry per queried workflow identifier, in query order.
	Workflows []RunStatus `json:"workflows"`
}

// BackendInfo summarizes one configured backend for GET /backends.
type BackendInfo struct {
	// Backend identifier.
	// example: local-small
	Name string `json:"name" example:"local-small"`
	// Underlying model identifier.
	// example: gpt-oss:20b
	Model string `json:"model" example:"gpt-oss:20b"`
	// Whether the backend finished initialization and can serve.
	// example: true
	Ready bool `json:"ready" example:"true"`
}

// BackendsResponse wraps the list of backends returned by GET /backends.
type BackendsResponse struct {
	// Configured backends.
	Backends []BackendInfo `json:"backends"`
}

// ErrorResponse is a consistent JSON error payload. Socket error
// events reuse it without the HTTP code.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code, omitted on the socket channel.
	// example: 400
	Code int `json:"code,omitempty" example:"400"`
}
