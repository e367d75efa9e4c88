package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flourish-sh/flourish/internal/auditlog"
	"github.com/flourish-sh/flourish/internal/executor"
	"github.com/flourish-sh/flourish/internal/gate"
	"github.com/flourish-sh/flourish/internal/orchestrator/adapter"
	"github.com/flourish-sh/flourish/internal/policy"
	provider "github.com/flourish-sh/flourish/internal/provider/models"
	"github.com/flourish-sh/flourish/internal/session"
	"github.com/flourish-sh/flourish/internal/tool"
)

type scriptedProvider struct {
	responses []*provider.GenerateResponse
	requests  []*provider.GenerateRequest
}

func (p *scriptedProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.requests = append(p.requests, req)
	if len(p.responses) == 0 {
		return &provider.GenerateResponse{Type: provider.ResponseTypeText, Text: "done"}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

func (p *scriptedProvider) SetModel(model string) error { return nil }
func (p *scriptedProvider) GetModel() string            { return "scripted" }

type fakeUI struct {
	confirmAnswer bool
	confirms      []string
	messages      []string
	statuses      []string
	inputs        []string
}

func (u *fakeUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	if len(u.inputs) == 0 {
		return "exit", nil
	}
	input := u.inputs[0]
	u.inputs = u.inputs[1:]
	return input, nil
}

func (u *fakeUI) Confirm(ctx context.Context, prompt string) (bool, error) {
	u.confirms = append(u.confirms, prompt)
	return u.confirmAnswer, nil
}

func (u *fakeUI) WriteStatus(phase, message string) {
	u.statuses = append(u.statuses, phase+": "+message)
}

func (u *fakeUI) WriteMessage(content string) {
	u.messages = append(u.messages, content)
}

type recordingExecutor struct {
	calls []string
}

func (r *recordingExecutor) Run(ctx context.Context, command, dir string) (*executor.Result, error) {
	r.calls = append(r.calls, command)
	return &executor.Result{Stdout: "out"}, nil
}

type harness struct {
	orch     *Orchestrator
	provider *scriptedProvider
	ui       *fakeUI
	exec     *recordingExecutor
	audit    *bytes.Buffer
}

func newHarness(t *testing.T, allowlist []string, responses ...*provider.GenerateResponse) *harness {
	t.Helper()
	exec := &recordingExecutor{}
	store := policy.NewStore(allowlist, nil, policy.NopSaver{})
	g := gate.New(store, exec, gate.StrategyConfirmFirst)

	var auditBuf bytes.Buffer
	audit := auditlog.NewLogger(&auditBuf, nil)
	sess := session.New(t.TempDir(), store, g, audit, nil)
	registry := adapter.NewRegistry(adapter.All(tool.New(sess, nil)))

	p := &scriptedProvider{responses: responses}
	u := &fakeUI{}
	return &harness{
		orch:     New(p, registry, u, audit, Options{}),
		provider: p,
		ui:       u,
		exec:     exec,
		audit:    &auditBuf,
	}
}

func textResp(text string) *provider.GenerateResponse {
	return &provider.GenerateResponse{Type: provider.ResponseTypeText, Text: text}
}

func toolResp(name string, args map[string]any) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Type:      provider.ResponseTypeToolCall,
		ToolCalls: []provider.ToolCall{{Name: name, Args: args}},
	}
}

func TestAskTextOnly(t *testing.T) {
	h := newHarness(t, nil, textResp("Hello!"))

	answer, err := h.orch.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", answer)

	history := h.orch.History()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
}

func TestAskExecutesToolCalls(t *testing.T) {
	h := newHarness(t, []string{"echo"},
		toolResp(tool.NameExecuteBash, map[string]any{"command": "echo hi"}),
		textResp("It printed hi."),
	)

	answer, err := h.orch.Ask(context.Background(), "run echo")
	require.NoError(t, err)
	assert.Equal(t, "It printed hi.", answer)
	assert.Equal(t, []string{"echo hi"}, h.exec.calls)

	history := h.orch.History()
	require.Len(t, history, 4)
	assert.Equal(t, "function", history[2].Role)
	require.Len(t, history[2].ToolResults, 1)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(history[2].ToolResults[0].Content), &result))
	assert.Equal(t, "success", result["status"])
}

func TestAskSendsToolDefinitions(t *testing.T) {
	h := newHarness(t, nil, textResp("ok"))

	_, err := h.orch.Ask(context.Background(), "hi")
	require.NoError(t, err)

	require.Len(t, h.provider.requests, 1)
	var names []string
	for _, def := range h.provider.requests[0].Tools {
		names = append(names, def.Name)
	}
	assert.Contains(t, names, tool.NameExecuteBash)
	assert.Contains(t, names, tool.NameReadToolHistory)
}

func TestPendingConfirmationApproved(t *testing.T) {
	h := newHarness(t, nil,
		toolResp(tool.NameExecuteBash, map[string]any{"command": "make build"}),
		textResp("Built."),
	)
	h.ui.confirmAnswer = true

	answer, err := h.orch.Ask(context.Background(), "build it")
	require.NoError(t, err)
	assert.Equal(t, "Built.", answer)

	// The command only ran after the user approved it.
	assert.Equal(t, []string{"make build"}, h.exec.calls)
	require.Len(t, h.ui.confirms, 1)
	assert.Contains(t, h.ui.confirms[0], "make build")

	// The model sees the resolved result, not the pending one.
	history := h.orch.History()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(history[2].ToolResults[0].Content), &result))
	assert.Equal(t, "success", result["status"])
}

func TestPendingConfirmationDenied(t *testing.T) {
	h := newHarness(t, nil,
		toolResp(tool.NameExecuteBash, map[string]any{"command": "make deploy"}),
		textResp("Understood."),
	)
	h.ui.confirmAnswer = false

	_, err := h.orch.Ask(context.Background(), "deploy")
	require.NoError(t, err)
	assert.Empty(t, h.exec.calls)

	history := h.orch.History()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(history[2].ToolResults[0].Content), &result))
	assert.Equal(t, "cancelled", result["status"])
}

func TestUnknownToolBecomesErrorResult(t *testing.T) {
	h := newHarness(t, nil,
		toolResp("launch_missiles", map[string]any{}),
		textResp("Sorry."),
	)

	_, err := h.orch.Ask(context.Background(), "do it")
	require.NoError(t, err)

	history := h.orch.History()
	require.Len(t, history[2].ToolResults, 1)
	assert.Contains(t, history[2].ToolResults[0].Error, "unknown tool")
}

func TestAskMaxIterations(t *testing.T) {
	loop := toolResp(tool.NameListAllowlist, nil)
	responses := make([]*provider.GenerateResponse, 0, 30)
	for range 30 {
		responses = append(responses, loop)
	}

	h := newHarness(t, nil, responses...)
	h.orch.maxIterations = 3

	_, err := h.orch.Ask(context.Background(), "loop forever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}

func TestConversationIsAudited(t *testing.T) {
	h := newHarness(t, nil, textResp("Hi there"))

	_, err := h.orch.Ask(context.Background(), "hello")
	require.NoError(t, err)

	entries := auditlog.ReadEntries(bytes.NewReader(h.audit.Bytes()))
	var roles []string
	for _, e := range entries {
		if e.Event == auditlog.KindConversation {
			roles = append(roles, e.Fields["role"].(string))
		}
	}
	assert.Equal(t, []string{"user", "model"}, roles)
}

func TestRunStopsOnExit(t *testing.T) {
	h := newHarness(t, nil, textResp("first"), textResp("second"))
	h.ui.inputs = []string{"again", "exit"}

	err := h.orch.Run(context.Background(), "start")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, h.ui.messages)
}
