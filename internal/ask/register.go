package ask

import (
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// RegisterWorker binds the workflow and activities to w under their
// stable names.
func RegisterWorker(w worker.Worker, acts *Activities) {
	w.RegisterWorkflowWithOptions(AskQuestion, workflow.RegisterOptions{Name: WorkflowName})
	w.RegisterActivityWithOptions(acts.AskQuestion, activity.RegisterOptions{Name: ActivityName})
}
