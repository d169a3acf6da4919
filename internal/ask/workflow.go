// Package ask owns the durable orchestration of one question: the
// workflow and activity definitions the worker registers, and the
// client wrapper the web front end starts, awaits and describes runs
// through. Retrying lives here and only here.
package ask

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"askd/internal/backend"
)

// Names shared between clients and workers. Stable: changing one
// orphans in-flight executions.
const (
	// TaskQueue is the queue submissions are scheduled on.
	TaskQueue = "question-task-queue"
	// WorkflowName is the registered name of AskQuestion.
	WorkflowName = "ask-question"
	// ActivityName is the registered name of Activities.AskQuestion.
	ActivityName = "ask-question-activity"
	// RunIDPrefix namespaces the workflow identifiers minted by
	// StartQuestion.
	RunIDPrefix = "question-workflow-"
)

// Question is the workflow input: one prompt and the backend that
// should answer it. An empty Backend selects backend.Default.
type Question struct {
	Prompt  string `json:"prompt"`
	Backend string `json:"backend"`
}

// Retry and deadline budget for the single inference activity.
const (
	activityTimeout = 360 * time.Second
	retryInitial    = time.Second
	retryBackoff    = 2.0
	retryAttempts   = 3
)

// AskQuestion wraps exactly one inference invocation in the retry
// policy above: 1s initial delay doubling per attempt, 3 attempts
// total, 360s per-attempt deadline. The policy is applied uniformly;
// non-transient failures such as an unknown backend burn the same
// budget as daemon hiccups.
func AskQuestion(ctx workflow.Context, q Question) (string, error) {
	if q.Backend == "" {
		q.Backend = string(backend.Default)
	}
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: activityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    retryInitial,
			BackoffCoefficient: retryBackoff,
			MaximumAttempts:    retryAttempts,
		},
	})
	workflow.GetLogger(ctx).Info("asking question", "backend", q.Backend)

	var answer string
	if err := workflow.ExecuteActivity(ctx, ActivityName, q).Get(ctx, &answer); err != nil {
		return "", err
	}
	return answer, nil
}
