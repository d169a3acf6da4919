package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"askd/internal/ask"
	"askd/pkg/types"
)

// dialWS starts a server around the mux, dials /ws and consumes the
// connected greeting.
func dialWS(t *testing.T, orc Orchestrator) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(NewMux(orc))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	if env := readEnvelope(t, conn); env.Event != types.EventConnected {
		t.Fatalf("greeting event=%q", env.Event)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) types.Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var env types.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, event string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := conn.WriteJSON(types.Envelope{Event: event, Data: data}); err != nil {
		t.Fatalf("write envelope: %v", err)
	}
}

func decodeData(t *testing.T, env types.Envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode %s data: %v", env.Event, err)
	}
}

func TestWSPromptFlow(t *testing.T) {
	orc := &mockOrc{awaitFn: func(ctx context.Context, r ask.Run) (string, error) {
		return "Polaris.", nil
	}}
	conn := dialWS(t, orc)

	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "Which star marks north?"})

	env := readEnvelope(t, conn)
	if env.Event != types.EventAccepted {
		t.Fatalf("first event=%q", env.Event)
	}
	var acc types.AskAccepted
	decodeData(t, env, &acc)
	if acc.ID == "" || acc.RunID == "" || acc.Prompt != "Which star marks north?" {
		t.Fatalf("accepted=%+v", acc)
	}

	env = readEnvelope(t, conn)
	if env.Event != types.EventResponse {
		t.Fatalf("second event=%q", env.Event)
	}
	var res types.AskResult
	decodeData(t, env, &res)
	if res.ID != acc.ID || res.RunID != acc.RunID {
		t.Fatalf("response ids %q/%q do not match accepted %q/%q", res.ID, res.RunID, acc.ID, acc.RunID)
	}
	if res.Response != "Polaris." || res.Error != "" || res.Prompt != acc.Prompt {
		t.Fatalf("response=%+v", res)
	}
}

func TestWSPromptFailure(t *testing.T) {
	orc := &mockOrc{awaitFn: func(ctx context.Context, r ask.Run) (string, error) {
		return "", errors.New("workflow execution error: unknown backend: gpt-5")
	}}
	conn := dialWS(t, orc)

	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "hi", Backend: "gpt-5"})

	if env := readEnvelope(t, conn); env.Event != types.EventAccepted {
		t.Fatalf("first event=%q", env.Event)
	}
	env := readEnvelope(t, conn)
	if env.Event != types.EventResponse {
		t.Fatalf("second event=%q", env.Event)
	}
	var res types.AskResult
	decodeData(t, env, &res)
	if res.Error == "" || !strings.Contains(res.Error, "unknown backend") || res.Response != "" {
		t.Fatalf("response=%+v", res)
	}
}

// TestWSConcurrentSubmissions proves one socket serves several runs at
// once: results come back as the runs finish, matched by identifier,
// and waiting never blocks new submissions.
func TestWSConcurrentSubmissions(t *testing.T) {
	gate1 := make(chan struct{})
	gate2 := make(chan struct{})
	orc := &mockOrc{}
	orc.awaitFn = func(ctx context.Context, r ask.Run) (string, error) {
		switch r.ID {
		case "question-workflow-00000001":
			<-gate1
		case "question-workflow-00000002":
			<-gate2
		}
		return "answer for " + r.ID, nil
	}
	conn := dialWS(t, orc)

	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "first question"})
	env := readEnvelope(t, conn)
	var acc1 types.AskAccepted
	decodeData(t, env, &acc1)

	// The first run is still blocked; the socket must accept more work.
	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "second question", Backend: "local-small"})
	env = readEnvelope(t, conn)
	var acc2 types.AskAccepted
	decodeData(t, env, &acc2)

	if acc1.ID == acc2.ID {
		t.Fatalf("both submissions got id %q", acc1.ID)
	}

	// Finish the second run first: its result must arrive first and
	// carry its own prompt, not the first run's.
	close(gate2)
	env = readEnvelope(t, conn)
	var res2 types.AskResult
	decodeData(t, env, &res2)
	if res2.ID != acc2.ID || res2.Prompt != "second question" || res2.Response != "answer for "+acc2.ID {
		t.Fatalf("cross-delivered result: %+v", res2)
	}

	close(gate1)
	env = readEnvelope(t, conn)
	var res1 types.AskResult
	decodeData(t, env, &res1)
	if res1.ID != acc1.ID || res1.Prompt != "first question" || res1.Response != "answer for "+acc1.ID {
		t.Fatalf("cross-delivered result: %+v", res1)
	}
}

func TestWSBareStringPrompt(t *testing.T) {
	orc := &mockOrc{}
	conn := dialWS(t, orc)

	sendEnvelope(t, conn, types.EventPrompt, "just a string")

	env := readEnvelope(t, conn)
	if env.Event != types.EventAccepted {
		t.Fatalf("event=%q", env.Event)
	}
	var acc types.AskAccepted
	decodeData(t, env, &acc)
	if acc.Prompt != "just a string" || acc.Backend != "remote-large" {
		t.Fatalf("accepted=%+v", acc)
	}
}

func TestWSBlankPromptRejected(t *testing.T) {
	conn := dialWS(t, &mockOrc{})
	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "  "})
	env := readEnvelope(t, conn)
	if env.Event != types.EventError {
		t.Fatalf("event=%q", env.Event)
	}
	var er types.ErrorResponse
	decodeData(t, env, &er)
	if !strings.Contains(er.Error, "prompt is required") {
		t.Fatalf("error=%q", er.Error)
	}
}

func TestWSStartFailure(t *testing.T) {
	orc := &mockOrc{startErr: errors.New("connection refused")}
	conn := dialWS(t, orc)
	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "hi"})
	env := readEnvelope(t, conn)
	if env.Event != types.EventError {
		t.Fatalf("event=%q", env.Event)
	}
}

func TestWSStatuses(t *testing.T) {
	orc := &mockOrc{statuses: []types.RunStatus{
		{ID: "question-workflow-aaaa", Status: "AWAITING_WORKER", OriginalStatus: "RUNNING"},
		{ID: "question-workflow-bbbb", Status: types.StatusUnknown, Error: "workflow not found"},
	}}
	conn := dialWS(t, orc)

	sendEnvelope(t, conn, types.EventGetStatuses, []string{"question-workflow-aaaa", "question-workflow-bbbb"})

	env := readEnvelope(t, conn)
	if env.Event != types.EventStatuses {
		t.Fatalf("event=%q", env.Event)
	}
	var body types.WorkflowStatuses
	decodeData(t, env, &body)
	if len(body.Workflows) != 2 {
		t.Fatalf("workflows=%+v", body.Workflows)
	}
	if body.Workflows[0].Status != "AWAITING_WORKER" || body.Workflows[1].Error == "" {
		t.Fatalf("workflows=%+v", body.Workflows)
	}
	if got := strings.Join(orc.gotIDs, "|"); got != "question-workflow-aaaa|question-workflow-bbbb" {
		t.Fatalf("ids=%q", got)
	}
}

func TestWSStatusesBadPayload(t *testing.T) {
	conn := dialWS(t, &mockOrc{})
	sendEnvelope(t, conn, types.EventGetStatuses, map[string]int{"nope": 1})
	env := readEnvelope(t, conn)
	if env.Event != types.EventStatusesError {
		t.Fatalf("event=%q", env.Event)
	}
	var er types.ErrorResponse
	decodeData(t, env, &er)
	if er.Error == "" {
		t.Fatalf("empty error payload")
	}
}

func TestWSUnknownEvent(t *testing.T) {
	conn := dialWS(t, &mockOrc{})
	sendEnvelope(t, conn, "subscribe", map[string]string{"topic": "everything"})
	env := readEnvelope(t, conn)
	if env.Event != types.EventError {
		t.Fatalf("event=%q", env.Event)
	}
	var er types.ErrorResponse
	decodeData(t, env, &er)
	if !strings.Contains(er.Error, "subscribe") {
		t.Fatalf("error=%q", er.Error)
	}
}

func TestWSMalformedJSONKeepsConnection(t *testing.T) {
	conn := dialWS(t, &mockOrc{})

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json{{")); err != nil {
		t.Fatalf("write raw frame: %v", err)
	}
	env := readEnvelope(t, conn)
	if env.Event != types.EventError {
		t.Fatalf("event=%q", env.Event)
	}
	var er types.ErrorResponse
	decodeData(t, env, &er)
	if !strings.Contains(er.Error, "invalid JSON envelope") {
		t.Fatalf("error=%q", er.Error)
	}

	// The bad frame must not tear the session down.
	sendEnvelope(t, conn, types.EventPrompt, types.AskRequest{Prompt: "still there?"})
	if env := readEnvelope(t, conn); env.Event != types.EventAccepted {
		t.Fatalf("event after bad frame=%q", env.Event)
	}
}
