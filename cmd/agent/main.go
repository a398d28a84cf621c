package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/agent"
	"github.com/yousuf-kodexo/livekitPOC/internal/config"
	"github.com/yousuf-kodexo/livekitPOC/internal/store"
	"github.com/yousuf-kodexo/livekitPOC/internal/voice"
)

func main() {
	cfg := config.Load()

	roomFlag := flag.String("room", cfg.AgentRoom, "voice room to join")
	flag.Parse()

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	room := *roomFlag
	if room == "" {
		logger.Fatal().Msg("room is required (use -room or AGENT_ROOM)")
	}
	if !cfg.HasLiveKitCredentials() {
		logger.Fatal().Msg("LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the conversation store. The flusher writes to it directly;
	// reads go through the API server so the worker sees exactly what the
	// frontend sees.
	var cs store.ConversationStore
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection failed")
		}
		cs = pgStore
	} else {
		sqliteStore, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("sqlite open failed")
		}
		cs = sqliteStore
	}
	defer cs.Close()

	// One buffer and one flusher per process. Every session started by this
	// worker shares them; starting a second flusher would duplicate drains.
	buffer := agent.NewBuffer()
	flusher := agent.NewFlusher(buffer, cs, cfg.FlushInterval, logger)
	go flusher.Run(ctx)

	pipeline, err := voice.NewPipeline(ctx, cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("pipeline init failed")
	}

	identity := "dr-virtual-" + uuid.NewString()[:8]
	lkRoom, err := voice.Connect(voice.ConnectOptions{
		URL:       cfg.LiveKitURL,
		APIKey:    cfg.LiveKitAPIKey,
		APISecret: cfg.LiveKitAPISecret,
		Room:      room,
		Identity:  identity,
		OnUserText: func(_, text string) {
			pipeline.HandleUserText(ctx, text)
		},
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("room connection failed")
	}
	defer lkRoom.Disconnect()

	history := agent.NewHistoryLoader(cfg.APIBaseURL, logger)
	orch := agent.NewOrchestrator(history, buffer, logger)

	// A failed session entry is logged and ends silently; the flusher keeps
	// draining whatever was already queued.
	if err := orch.StartSession(ctx, room, pipeline, lkRoom); err != nil {
		logger.Error().Err(err).Str("room", room).Msg("session entry failed")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("agent worker stopping")
}
