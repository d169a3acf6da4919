package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"askd/internal/ask"
	"askd/pkg/types"
)

const (
	// wsWriteWait bounds a single frame write.
	wsWriteWait = 10 * time.Second
	// wsPongWait is how long the peer may stay silent before the
	// connection is considered dead.
	wsPongWait = 60 * time.Second
	// wsPingPeriod must be shorter than wsPongWait.
	wsPingPeriod = (wsPongWait * 9) / 10
	// wsSendBuffer is the per-connection outbound queue length.
	wsSendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsSession is one upgraded connection. All writes go through the send
// channel so concurrent submissions never interleave frames; the reader
// dispatches inbound envelopes and stays free to accept new work while
// earlier runs are still in flight.
type wsSession struct {
	conn *websocket.Conn
	send chan types.Envelope
	orc  Orchestrator
	// ctx is canceled when the client disconnects or the server shuts
	// down; it bounds every engine call made on behalf of this peer.
	ctx context.Context
	log zerolog.Logger
}

func handleWS(orc Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client.
			zlog.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
			return
		}
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		s := &wsSession{
			conn: conn,
			send: make(chan types.Envelope, wsSendBuffer),
			orc:  orc,
			ctx:  ctx,
			log:  zlog.With().Str("remote", r.RemoteAddr).Logger(),
		}
		wsConnections.Inc()
		defer wsConnections.Dec()

		done := make(chan struct{})
		go s.writePump(done)

		s.log.Info().Msg("client connected")
		s.push(newEnvelope(types.EventConnected, map[string]string{
			"data": fmt.Sprintf("client %s connected", r.RemoteAddr),
		}))

		s.readLoop(ctx)
		close(done)
		conn.Close()
		s.log.Info().Msg("client disconnected")
	}
}

// readLoop consumes inbound envelopes until the peer goes away. Each
// envelope is handled inline except the result wait, which runs in its
// own goroutine so the loop keeps accepting messages.
func (s *wsSession) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxBodyBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		var env types.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.push(errorEnvelope("invalid JSON envelope"))
			continue
		}
		switch env.Event {
		case types.EventPrompt:
			s.handlePrompt(env.Data)
		case types.EventGetStatuses:
			s.handleStatuses(env.Data)
		default:
			s.push(errorEnvelope(fmt.Sprintf("unknown event %q", env.Event)))
		}
	}
}

// handlePrompt starts a run, acknowledges it, and leaves a goroutine
// behind to deliver the answer whenever the engine finishes.
func (s *wsSession) handlePrompt(data json.RawMessage) {
	req, err := decodePrompt(data)
	if err != nil {
		s.push(errorEnvelope(err.Error()))
		return
	}
	run, err := s.orc.StartQuestion(s.ctx, req.Prompt, req.Backend)
	if err != nil {
		s.log.Error().Err(err).Msg("workflow start failed")
		s.push(errorEnvelope(err.Error()))
		return
	}
	submissionsTotal.WithLabelValues("ws").Inc()
	s.log.Info().Str("workflow_id", run.ID).Str("run_id", run.RunID).Msg("question accepted")

	s.push(newEnvelope(types.EventAccepted, types.AskAccepted{
		ID:      run.ID,
		RunID:   run.RunID,
		Prompt:  req.Prompt,
		Backend: effectiveBackend(req.Backend),
	}))
	go s.awaitResult(run, req.Prompt)
}

func (s *wsSession) awaitResult(run ask.Run, prompt string) {
	res := types.AskResult{ID: run.ID, RunID: run.RunID, Prompt: prompt}
	answer, err := s.orc.Await(s.ctx, run)
	switch {
	case s.ctx.Err() != nil:
		// Client left before the run finished; nobody to notify.
		return
	case err != nil:
		res.Error = err.Error()
	default:
		res.Response = answer
	}
	s.push(newEnvelope(types.EventResponse, res))
}

// handleStatuses answers a batch status query. Per-id lookup failures
// come back as UNKNOWN entries; only an unusable payload produces the
// batch-level error event.
func (s *wsSession) handleStatuses(data json.RawMessage) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.push(newEnvelope(types.EventStatusesError, types.ErrorResponse{
			Error: "payload must be a JSON array of workflow ids",
		}))
		return
	}
	statuses := s.orc.DescribeMany(s.ctx, ids)
	s.push(newEnvelope(types.EventStatuses, types.WorkflowStatuses{Workflows: statuses}))
}

// decodePrompt accepts either the full request object or, for older
// clients, a bare JSON string carrying just the prompt.
func decodePrompt(data json.RawMessage) (types.AskRequest, error) {
	var req types.AskRequest
	if err := json.Unmarshal(data, &req); err != nil {
		var prompt string
		if err := json.Unmarshal(data, &prompt); err != nil {
			return types.AskRequest{}, errors.New("prompt payload must be an object or a string")
		}
		req = types.AskRequest{Prompt: prompt}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return types.AskRequest{}, errors.New("prompt is required")
	}
	return req, nil
}

// push queues an envelope for the writer, giving up when the session
// is shutting down so result goroutines never hang on a dead peer.
func (s *wsSession) push(env types.Envelope) {
	select {
	case s.send <- env:
	case <-s.ctx.Done():
	}
}

// writePump owns the connection's write side: queued envelopes plus
// the keepalive pings. Closing the connection on error unblocks the
// reader, which tears the session down.
func (s *wsSession) writePump(done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case env := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := s.conn.WriteJSON(env); err != nil {
				s.conn.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.conn.Close()
				return
			}
		case <-s.ctx.Done():
			// Server shutdown; closing unblocks the reader.
			s.conn.Close()
			return
		case <-done:
			return
		}
	}
}

func newEnvelope(event string, v any) types.Envelope {
	data, _ := json.Marshal(v)
	return types.Envelope{Event: event, Data: data}
}

func errorEnvelope(msg string) types.Envelope {
	return newEnvelope(types.EventError, types.ErrorResponse{Error: msg})
}
