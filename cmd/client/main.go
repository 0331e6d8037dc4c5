package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	adaudio "github.com/dkeye/VoiceClient/internal/adapters/audio"
	router "github.com/dkeye/VoiceClient/internal/adapters/http"
	wsignal "github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/adapters/store"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/app/audio"
	"github.com/dkeye/VoiceClient/internal/app/orch"
	"github.com/dkeye/VoiceClient/internal/config"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/i18n"
)

type closer interface{ Close() error }

// playback defers to the pipeline, which is built after the channel that
// feeds it.
type playback struct{ p *audio.Pipeline }

func (pb *playback) Playback(samples []float32) { pb.p.Playback(samples) }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}
	logger := log.Logger

	st, closeStore := openStore(cfg, logger)
	defer closeStore()

	text, err := i18n.New(ctx, i18n.Options{
		Dir:      cfg.LocalesPath,
		Language: cfg.Language,
		Store:    st,
		Logger:   logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load translations")
	}

	device, closeDevice := openDevice(cfg, logger)
	defer closeDevice()

	loop := core.NewEventLoop(0, logger)
	view := router.NewViewState(text)

	pb := &playback{}
	channel := wsignal.NewManager(wsignal.Options{
		URL:          cfg.ServerURL,
		ReadLimit:    cfg.ReadLimit,
		WriteTimeout: cfg.WriteTimeout,
		PingPeriod:   cfg.PingPeriod,
	}, loop, pb, logger)
	pipeline := audio.NewPipeline(device, channel, loop, audio.Options{SampleRate: cfg.SampleRate}, logger)
	pb.p = pipeline
	defer func() {
		if err := pipeline.Close(); err != nil {
			log.Error().Err(err).Msg("close audio output")
		}
	}()

	o := &orch.Orchestrator{
		Channel:   channel,
		Media:     pipeline,
		Session:   app.NewSession(st, logger),
		Snapshots: &app.Snapshots{},
		Invites:   app.NewInvitations(logger),
		Renderer:  view,
		Prompter:  view,
		Text:      text,
		Log:       logger,
		Ctx:       ctx,
	}

	srv := &http.Server{
		Addr:              cfg.ControlAddr,
		Handler:           router.SetupRouter(cfg, &router.Controller{Loop: loop, Orch: o, View: view}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("addr", cfg.ControlAddr).Msg("control API started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("control API forced to shutdown")
		}
		return nil
	})

	loop.Post(func() {
		if o.Resume(ctx) {
			log.Info().Msg("resuming stored session")
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("client stopped with error")
	}
	// The loop has returned, so the channel can be closed from here.
	channel.Close()
	log.Info().Msg("Client exited gracefully")
}

// openStore opens badger under cfg.DataDir, or a memory store when no
// directory is configured.
func openStore(cfg *config.Config, logger zerolog.Logger) (core.LocalStore, func()) {
	if cfg.DataDir == "" {
		log.Warn().Msg("no data_dir, session and preferences will not persist")
		return store.NewMemory(), func() {}
	}
	db, err := store.NewBadger(store.BadgerOptions{Dir: cfg.DataDir, Logger: logger})
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to open store")
	}
	return db, closeWith(db, "close store")
}

func openDevice(cfg *config.Config, logger zerolog.Logger) (core.AudioDevice, func()) {
	if !cfg.AudioEnabled {
		log.Info().Msg("audio disabled")
		return adaudio.Null{}, func() {}
	}
	dev, err := adaudio.NewDevice(logger)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, continuing without it")
		return adaudio.Null{}, func() {}
	}
	return dev, closeWith(dev, "close audio device")
}

func closeWith(c closer, msg string) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg(msg)
		}
	}
}
