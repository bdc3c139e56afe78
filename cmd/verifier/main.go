package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/application/verification"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/config"
	discordinfra "github.com/hardy-ethan/UMichEmailVerifier/internal/infrastructure/discord"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/infrastructure/google"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/infrastructure/memory"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/logging"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/metrics"
	discordtransport "github.com/hardy-ethan/UMichEmailVerifier/internal/transport/discord"
	transporthttp "github.com/hardy-ethan/UMichEmailVerifier/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logger := logging.New(cfg.IsProduction(), cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("startup aborted", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store := memory.NewVerificationRepo()
	provider := google.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cfg.AllowedDomain)

	session, err := discordinfra.NewSession(cfg.DiscordToken)
	if err != nil {
		logger.Error("startup aborted", "err", err)
		os.Exit(1)
	}

	svc := verification.NewService(verification.ServiceDeps{
		Store:         store,
		Provider:      provider,
		Guilds:        discordinfra.NewGuilds(session),
		Metrics:       m,
		Logger:        logger,
		GuildID:       cfg.ServerID,
		RoleID:        cfg.VerifiedRoleID,
		AllowedDomain: cfg.AllowedDomain,
	})

	commands := discordtransport.NewCommandHandler(svc, session, discordtransport.CommandHandlerConfig{
		Institution:  cfg.InstitutionName,
		GuildID:      cfg.ServerID,
		RequireGuild: cfg.RequireConfiguredGuild,
	}, logger)
	session.AddHandler(commands.OnInteractionCreate)
	session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("discord ready", "bot", r.User.Username)
		cmd, err := discordinfra.RegisterCommands(s, r.User.ID, cfg.ServerID, cfg.CommandScope, cfg.InstitutionName)
		if err != nil {
			logger.Error("command registration failed", "err", err)
			return
		}
		logger.Info("command registered", "command_id", cmd.ID, "scope", cfg.CommandScope)
	})

	if err := session.Open(); err != nil {
		logger.Error("startup aborted", "err", fmt.Errorf("open discord gateway: %w", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, &transporthttp.Deps{Verification: svc, Gatherer: reg, Logger: logger}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	go verification.NewSweeper(store, cfg.SweepInterval, cfg.VerificationTTL, m, logger).Run(ctx)

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	if err := session.Close(); err != nil {
		logger.Warn("close discord gateway", "err", err)
	}
	logger.Info("stopped")
}
