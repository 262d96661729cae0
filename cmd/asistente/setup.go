package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/calendar"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/llm"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/mcp"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/tools"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/agent"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/command"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/registry"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/state"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/storage/jsonfile"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/datetime"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

type chatOverrides struct {
	transport string
	model     string
}

// Chat holds everything the interactive loop needs.
type Chat struct {
	App      *config.AppConfig
	Agent    *agent.Agent
	Sessions *agent.SessionStore
	Router   *command.Router

	closers []func() error
}

func (c *Chat) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

func NewChat(ctx context.Context, overrides chatOverrides) *Chat {
	logger := log.FromCtx(ctx)

	initEnv(ctx)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	if overrides.transport != "" {
		appCfg.ToolTransport = overrides.transport
	}
	if overrides.model != "" {
		llmCfg.SetModel(overrides.model)
	}

	chat := &Chat{App: appCfg}

	// 2. Operations, in process or behind the MCP tool server
	var ops core.Operations
	if appCfg.IsRemoteTransport() {
		reg, closeRemote, err := NewRemoteRegistry(ctx, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to tool server")
		}
		ops = reg
		chat.closers = append(chat.closers, closeRemote)
	} else {
		ops = NewLocalRegistry(ctx, appCfg)
	}

	// 3. AI Provider
	provider, err := llm.NewDynamicProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Agent
	opts := agent.DefaultOptions()
	opts.MaxTurns = appCfg.MaxTurns
	opts.MaxTokens = llmCfg.MaxTokens
	opts.Temperature = llmCfg.Temperature
	opts.ModelTimeout = llmCfg.Timeout
	opts.ToolResultRole = appCfg.GetToolResultRole()
	opts.ToolParallelism = appCfg.ToolParallelism

	chat.Agent = agent.NewAgent(provider, ops, agent.NewSysPrompt(appCfg), opts)
	chat.Sessions = agent.NewSessionStore()

	// 5. Slash commands
	chat.Router = command.NewRouter(chat.Sessions, ops, llmCfg, state.NewGlobalState(provider))

	logger.Debug().
		Str("provider", llmCfg.GetProvider()).
		Str("model", llmCfg.GetModel()).
		Str("transport", appCfg.ToolTransport).
		Int("tools", len(ops.Tools())).
		Msg("chat ready")

	return chat
}

// NewLocalRegistry opens the record store and registers every operation.
// Calendar operations are added only when a Google token is on disk.
func NewLocalRegistry(ctx context.Context, appCfg *config.AppConfig) *registry.Registry {
	logger := log.FromCtx(ctx)

	loc := datetime.LoadLocation(appCfg.GetTimeZone())
	store, err := jsonfile.Open(ctx, appCfg.GetDataDir(), jsonfile.WithLocation(loc))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open record store")
	}

	reg := registry.New()
	tools.Register(reg, tools.NewUniversity(store), tools.NewTasks(store))

	if cal := initCalendar(ctx, appCfg); cal != nil {
		tools.Register(reg, tools.NewCalendar(cal))
	}

	logger.Debug().Int("operations", reg.Len()).Msg("operations registered")
	return reg
}

func initCalendar(ctx context.Context, appCfg *config.AppConfig) core.Calendar {
	logger := log.FromCtx(ctx)
	calCfg := config.NewCalendarConfig(ctx, appCfg.GetRuntimePath())

	if !calCfg.Enabled {
		return nil
	}

	token := &calendar.TokenFile{Path: calCfg.TokenFile}
	if !token.Exists() {
		logger.Info().Msg("Google Calendar sin autorizar, ejecuta `asistente auth` para activarlo")
		return nil
	}

	oauthCfg, err := calendar.LoadOAuthConfig(calCfg.CredentialsFile)
	if err != nil {
		logger.Warn().Err(err).Msg("calendar credentials unavailable")
		return nil
	}

	httpClient, err := calendar.HTTPClient(ctx, oauthCfg, token)
	if err != nil {
		logger.Warn().Err(err).Msg("calendar token unavailable")
		return nil
	}

	cal, err := calendar.New(ctx, httpClient, calendar.Config{
		CalendarID: calCfg.CalendarID,
		TimeZone:   appCfg.GetTimeZone(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("calendar service unavailable")
		return nil
	}
	return cal
}

// NewRemoteRegistry publishes the tools of the servers in mcp_config.json,
// each forwarding to its server.
func NewRemoteRegistry(ctx context.Context, appCfg *config.AppConfig) (*registry.Registry, func() error, error) {
	mcpCfg := config.NewMCPConfig(ctx)

	storage := mcp.NewFileStorage(appCfg.GetMCPConfigPath(), mcpCfg.GetURL())
	servers, err := storage.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	remote := mcp.NewRemote(mcp.NewPool(), mcpCfg.ConnectTimeout, mcpCfg.CallTimeout)
	if err := remote.Connect(ctx, servers); err != nil {
		_ = remote.Close()
		return nil, nil, err
	}

	reg := registry.New()
	n := remote.RegisterInto(reg)
	log.FromCtx(ctx).Debug().Int("operations", n).Msg("remote operations registered")

	return reg, remote.Close, nil
}

// initEnv loads .env from the runtime directory, then from the working
// directory. Variables already set win.
func initEnv(ctx context.Context) {
	logger := log.FromCtx(ctx)

	for _, envFile := range []string{
		filepath.Join(config.GetRuntimePath(), ".env"),
		".env",
	} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
			continue
		}
		logger.Debug().Str("path", envFile).Msg("loaded .env file")
	}
}
