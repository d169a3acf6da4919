package ask

import (
	"context"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/workflowservice/v1"

	"askd/pkg/types"
)

// Describe fetches one execution's state from the engine and maps it
// to the wire status, refining RUNNING into where the execution
// actually sits: awaiting a worker pickup, or executing activities.
func (c *Client) Describe(ctx context.Context, id string) (types.RunStatus, error) {
	resp, err := c.c.DescribeWorkflowExecution(ctx, id, "")
	if err != nil {
		return types.RunStatus{}, err
	}
	return statusFromDescribe(id, resp), nil
}

// DescribeMany looks up every identifier independently. A failed
// lookup yields an UNKNOWN entry carrying the error and never aborts
// the rest of the batch.
func (c *Client) DescribeMany(ctx context.Context, ids []string) []types.RunStatus {
	out := make([]types.RunStatus, 0, len(ids))
	for _, id := range ids {
		st, err := c.Describe(ctx, id)
		if err != nil {
			c.log.Warn().Str("workflow_id", id).Err(err).Msg("describe failed")
			out = append(out, types.RunStatus{ID: id, Status: types.StatusUnknown, Error: err.Error()})
			continue
		}
		out = append(out, st)
	}
	return out
}

func statusFromDescribe(id string, resp *workflowservice.DescribeWorkflowExecutionResponse) types.RunStatus {
	info := resp.GetWorkflowExecutionInfo()
	raw := statusString(info.GetStatus())
	st := types.RunStatus{
		ID:             id,
		RunID:          info.GetExecution().GetRunId(),
		WorkflowType:   info.GetType().GetName(),
		Status:         raw,
		OriginalStatus: raw,
		TaskQueue:      info.GetTaskQueue(),
	}
	if ts := info.GetStartTime(); ts.IsValid() {
		st.StartTime = formatTime(ts.AsTime())
	}
	if ts := info.GetExecutionTime(); ts.IsValid() {
		st.ExecutionTime = formatTime(ts.AsTime())
	}
	if ts := info.GetCloseTime(); ts.IsValid() {
		st.CloseTime = formatTime(ts.AsTime())
	}
	if info.GetStatus() == enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING {
		if resp.GetPendingWorkflowTask() != nil {
			st.Status = types.StatusAwaitingWorker
		} else if len(resp.GetPendingActivities()) > 0 {
			st.Status = types.StatusRunningActivities
		}
	}
	return st
}

// statusString names engine statuses the way clients display them.
func statusString(s enumspb.WorkflowExecutionStatus) string {
	switch s {
	case enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "RUNNING"
	case enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "COMPLETED"
	case enumspb.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "FAILED"
	case enumspb.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "CANCELED"
	case enumspb.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "TERMINATED"
	case enumspb.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return "CONTINUED_AS_NEW"
	case enumspb.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "TIMED_OUT"
	default:
		return types.StatusUnknown
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
