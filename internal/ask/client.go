package ask

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/client"
)

// Config locates the orchestration engine.
type Config struct {
	// HostPort of the engine frontend, e.g. "127.0.0.1:7233".
	HostPort string
	// Namespace scoping this service's executions.
	Namespace string
}

// Client wraps the engine client with the operations the front end
// needs: start a run, await its result, describe it.
type Client struct {
	c   client.Client
	log zerolog.Logger
}

// Dial builds a lazily connecting client: construction succeeds with
// the engine down, and connection errors surface per call instead.
func Dial(cfg Config, log zerolog.Logger) (*Client, error) {
	lg := log.With().Str("component", "ask").Logger()
	c, err := client.NewLazyClient(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    sdkLogger{log: lg},
	})
	if err != nil {
		return nil, err
	}
	return &Client{c: c, log: lg}, nil
}

// NewClientFrom wraps an existing engine client; the caller keeps
// ownership of its lifecycle.
func NewClientFrom(c client.Client, log zerolog.Logger) *Client {
	return &Client{c: c, log: log.With().Str("component", "ask").Logger()}
}

// Run identifies one started workflow execution.
type Run struct {
	// ID is the workflow identifier this service minted.
	ID string
	// RunID is the execution identifier the engine assigned.
	RunID string
}

// NewRunID mints a short namespaced workflow identifier.
func NewRunID() string {
	return RunIDPrefix + uuid.NewString()[:8]
}

// StartQuestion starts one workflow execution for the given prompt and
// backend. It returns as soon as the engine accepted the execution;
// the result arrives via Await.
func (c *Client) StartQuestion(ctx context.Context, prompt, backendName string) (Run, error) {
	id := NewRunID()
	wr, err := c.c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        id,
		TaskQueue: TaskQueue,
	}, WorkflowName, Question{Prompt: prompt, Backend: backendName})
	if err != nil {
		return Run{}, err
	}
	run := Run{ID: wr.GetID(), RunID: wr.GetRunID()}
	c.log.Info().Str("workflow_id", run.ID).Str("run_id", run.RunID).Msg("started workflow")
	return run, nil
}

// Await blocks until the run reaches a terminal state and returns its
// answer, or the propagated failure.
func (c *Client) Await(ctx context.Context, r Run) (string, error) {
	var answer string
	err := c.c.GetWorkflow(ctx, r.ID, r.RunID).Get(ctx, &answer)
	return answer, err
}

// Healthy pings the engine frontend.
func (c *Client) Healthy(ctx context.Context) error {
	_, err := c.c.CheckHealth(ctx, &client.CheckHealthRequest{})
	return err
}

// Close releases the underlying connection.
func (c *Client) Close() { c.c.Close() }
