// Package infer dispatches a normalized prompt to the selected model
// backend and returns the newly generated text. Nothing here retries:
// failures surface immediately and the orchestration layer owns the
// retry budget.
package infer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"askd/internal/backend"
	"askd/internal/gateway"
	"askd/internal/llm"
	"askd/internal/ollama"
)

// Invoker routes invocations through an initialized Gateway.
type Invoker struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

// New builds an Invoker on top of gw.
func New(gw *gateway.Gateway, log zerolog.Logger) *Invoker {
	return &Invoker{gw: gw, log: log.With().Str("component", "infer").Logger()}
}

// Invoke answers prompt on the named backend: resolve the descriptor,
// normalize the prompt once, build the two-turn exchange, dispatch by
// backend. The result never includes the echoed input.
func (inv *Invoker) Invoke(ctx context.Context, prompt string, name backend.Name) (string, error) {
	desc, ok := backend.Lookup(name)
	if !ok {
		invocationsTotal.WithLabelValues("unknown", "unknown_backend").Inc()
		return "", backend.ErrUnknown(string(name))
	}
	inv.log.Info().Str("backend", string(desc.Name)).Str("prompt", prompt).Msg("invoking backend")

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: desc.System},
		{Role: llm.RoleUser, Content: NormalizePrompt(prompt)},
	}

	var (
		text string
		err  error
	)
	switch desc.Name {
	case backend.LocalSmall:
		text, err = inv.invokeLocal(ctx, msgs, desc)
	case backend.RemoteLarge:
		text, err = inv.invokeRemote(ctx, msgs, desc)
	default:
		// Unreachable while Lookup and the descriptor set agree.
		err = backend.ErrUnknown(string(desc.Name))
	}
	if err != nil {
		invocationsTotal.WithLabelValues(string(desc.Name), "error").Inc()
		return "", err
	}
	invocationsTotal.WithLabelValues(string(desc.Name), "ok").Inc()
	return text, nil
}

// invokeLocal renders the exchange through the chat template, runs
// bounded-length generation and keeps only the completion.
func (inv *Invoker) invokeLocal(ctx context.Context, msgs []llm.Message, desc backend.Descriptor) (string, error) {
	model, _, err := inv.gw.Local()
	if err != nil {
		return "", err
	}
	rendered := llm.RenderChat(msgs)
	ids, err := model.Tokenize(rendered)
	if err != nil {
		return "", fmt.Errorf("tokenize: %w", err)
	}
	inv.log.Debug().Int("prompt_tokens", len(ids)).Int("max_new_tokens", desc.Gen.MaxTokens).Msg("local generation start")
	raw, err := model.Generate(ctx, rendered, llm.Params{
		Temperature: desc.Gen.Temperature,
		TopP:        desc.Gen.TopP,
		MaxTokens:   desc.Gen.MaxTokens,
		Sample:      desc.Gen.Sample,
		Stop:        llm.StopWords,
	})
	if err != nil {
		return "", err
	}
	return llm.ExtractCompletion(raw, rendered), nil
}

// invokeRemote sends the exchange to the daemon's chat endpoint and
// returns the reply content.
func (inv *Invoker) invokeRemote(ctx context.Context, msgs []llm.Message, desc backend.Descriptor) (string, error) {
	client, _, err := inv.gw.Remote()
	if err != nil {
		return "", err
	}
	wire := make([]ollama.Message, len(msgs))
	for i, m := range msgs {
		wire[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}
	return client.Chat(ctx, desc.Model, wire, ollama.Options{
		Temperature: desc.Gen.Temperature,
		TopP:        desc.Gen.TopP,
		NumPredict:  desc.Gen.MaxTokens,
	})
}
