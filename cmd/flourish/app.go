package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flourish-sh/flourish/internal/auditlog"
	"github.com/flourish-sh/flourish/internal/config"
	"github.com/flourish-sh/flourish/internal/executor"
	"github.com/flourish-sh/flourish/internal/gate"
	"github.com/flourish-sh/flourish/internal/history"
	"github.com/flourish-sh/flourish/internal/orchestrator"
	"github.com/flourish-sh/flourish/internal/orchestrator/adapter"
	"github.com/flourish-sh/flourish/internal/policy"
	"github.com/flourish-sh/flourish/internal/provider/gemini"
	provider "github.com/flourish-sh/flourish/internal/provider/models"
	"github.com/flourish-sh/flourish/internal/session"
	"github.com/flourish-sh/flourish/internal/tool"
	"github.com/flourish-sh/flourish/internal/ui"
)

const systemInstruction = "You are a helpful shell assistant. You run commands on the user's machine " +
	"through the execute_bash tool. Commands may be blocked by a blacklist or held for user " +
	"confirmation; report such outcomes honestly instead of pretending a command ran. Prefer " +
	"small, inspectable commands and explain what you did."

// appOptions carries command-line overrides into the wiring.
type appOptions struct {
	allowlist []string
	blacklist []string
	autoAllow bool
	model     string
	noTools   bool
}

// app is the fully wired application for one session.
type app struct {
	cfg     *config.Config
	session *session.Session
	orch    *orchestrator.Orchestrator
	ui      ui.UserInterface
	audit   *auditlog.Logger
}

// timeoutExecutor bounds each command's run time using the configured shell
// timeout.
type timeoutExecutor struct {
	exec    *executor.ShellExecutor
	timeout time.Duration
	grace   time.Duration
}

func (t *timeoutExecutor) Run(ctx context.Context, command, dir string) (*executor.Result, error) {
	return t.exec.RunWithTimeout(ctx, command, dir, t.timeout, t.grace)
}

// buildApp loads configuration and wires the session, gate, tools, provider
// and orchestrator together.
func buildApp(ctx context.Context, opts appOptions) (*app, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}

	// Command-line policy overrides replace the persisted lists for this
	// session only; mutations made while they are active are not saved.
	var store *policy.Store
	if opts.allowlist != nil || opts.blacklist != nil {
		store = policy.NewStore(opts.allowlist, opts.blacklist, policy.NopSaver{})
	} else {
		saver := config.NewStore(config.OSFileSystem{}, loader.Path(), cfg)
		store = policy.NewStore(cfg.Allowlist, cfg.Blacklist, saver)
	}

	strategy := gate.StrategyConfirmFirst
	if opts.autoAllow {
		strategy = gate.StrategyAutoAllow
	}

	shellExec := &timeoutExecutor{
		exec:    executor.NewShellExecutor(),
		timeout: time.Duration(cfg.Agent.ShellTimeoutSeconds) * time.Second,
		grace:   time.Duration(cfg.Agent.GracefulShutdownMs) * time.Millisecond,
	}
	g := gate.New(store, shellExec, strategy)

	audit, err := auditlog.OpenSession(loader.LogsPath())
	if err != nil {
		return nil, fmt.Errorf("open session logs: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	sess := session.New(cwd, store, g, audit, nil)

	tools := tool.New(sess, history.NewService(loader.LogsPath()))
	adapters := adapter.All(tools)
	if opts.noTools {
		// ask mode answers questions without touching the machine.
		adapters = nil
	}
	registry := adapter.NewRegistry(adapters)

	llm, err := connectProvider(ctx, cfg.Model)
	if err != nil {
		_ = audit.Close()
		return nil, err
	}

	userInterface := ui.NewStandardUI()
	orch := orchestrator.New(llm, registry, userInterface, audit, orchestrator.Options{
		MaxIterations:     cfg.Agent.MaxIterations,
		SystemInstruction: systemInstruction + "\n\n" + sess.Describe(),
	})

	return &app{
		cfg:     cfg,
		session: sess,
		orch:    orch,
		ui:      userInterface,
		audit:   audit,
	}, nil
}

func connectProvider(ctx context.Context, model string) (provider.Provider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := gemini.Connect(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return gemini.New(client, model), nil
}

// run starts the session, executes fn and records the session end.
func (a *app) run(fn func() error) error {
	a.session.Start()
	defer func() {
		a.session.End()
		_ = a.audit.Close()
	}()
	return fn()
}
