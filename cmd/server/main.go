// @title         recruitflow API
// @version       1.0
// @description   Бэкенд рекрутингового конвейера: разбор резюме, AI-переписка с кандидатами, HR-ревью ответов и экспорт воронки.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/artem13815/recruitflow/docs"

	httpapi "github.com/artem13815/recruitflow/api/http"
	"github.com/artem13815/recruitflow/api/http/handlers"
	"github.com/artem13815/recruitflow/pkg/auth"
	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/config"
	"github.com/artem13815/recruitflow/pkg/export"
	"github.com/artem13815/recruitflow/pkg/health"
	"github.com/artem13815/recruitflow/pkg/health/checkers"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/llm"
	"github.com/artem13815/recruitflow/pkg/llm/openrouter"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/messaging"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
	pgrepo "github.com/artem13815/recruitflow/pkg/repository/postgres"
	"github.com/artem13815/recruitflow/pkg/resume"
	"github.com/artem13815/recruitflow/pkg/security/jwt"
	"github.com/artem13815/recruitflow/pkg/settings"
	"github.com/artem13815/recruitflow/pkg/storage/postgres"
	"github.com/artem13815/recruitflow/pkg/tokenstore"
	"github.com/artem13815/recruitflow/pkg/worker"
)

// repos — набор портов хранения; собирается либо из Postgres, либо
// из общего in-memory стора (демо-режим без DATABASE_URL).
type repos struct {
	users      auth.UserRepository
	candidates candidate.Repository
	resumes    resume.Repository
	messages   message.Repository
	jobs       job.Repository
	settings   settings.Repository
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		r        repos
		readyChk []health.Checker
	)
	if cfg.InMemory() {
		log.Warn("DATABASE_URL not set, using in-memory storage (demo mode)")
		store := memory.NewStore()
		r = repos{
			users:      store.Users(),
			candidates: store.Candidates(),
			resumes:    store.Resumes(),
			messages:   store.Messages(),
			jobs:       store.Jobs(),
			settings:   store.Settings(),
		}
	} else {
		if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
			log.WithError(err).Fatal("apply migrations")
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("postgres connect")
		}
		defer pool.Close()
		r = repos{
			users:      pgrepo.NewUserRepository(pool),
			candidates: pgrepo.NewCandidateRepository(pool),
			resumes:    pgrepo.NewResumeRepository(pool),
			messages:   pgrepo.NewMessageRepository(pool),
			jobs:       pgrepo.NewJobRepository(pool),
			settings:   pgrepo.NewSettingsRepository(pool),
		}
		readyChk = append(readyChk, checkers.NewPostgresChecker(pool))
	}

	// Refresh-токены: Redis, если сконфигурирован, иначе память.
	var store auth.TokenStore = tokenstore.NewMemory()
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("parse redis url")
		}
		client := goredis.NewClient(opts)
		defer client.Close()
		store = tokenstore.NewRedis(client)
		readyChk = append(readyChk, checkers.NewRedisChecker(client))
	}

	// LLM опциональна: без ключа черновики собираются по шаблонам.
	var model llm.ChatModel
	if cfg.OpenRouterAPIKey != "" {
		model = openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel, "recruitflow", "")
	}

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewService(r.users, jwtGen, store)
	jobsUC := job.NewService(r.jobs)
	candidatesUC := candidate.NewService(r.candidates, r.messages)
	resumesUC := resume.NewService(r.resumes, r.candidates, jobsUC, cfg.UploadsDir)
	messagingUC := messaging.NewService(r.candidates, r.messages, jobsUC, r.settings, model)
	exportUC := export.NewService(r.candidates, r.messages)

	h := httpapi.Handlers{
		Auth:       handlers.NewAuthHandler(authUC),
		Health:     handlers.NewHealthHandler(health.NewService(readyChk...)),
		Candidates: handlers.NewCandidatesHandler(candidatesUC, r.resumes),
		Resumes:    handlers.NewResumesHandler(resumesUC),
		Messaging:  handlers.NewMessagingHandler(messagingUC),
		Jobs:       handlers.NewJobsHandler(jobsUC),
		Export:     handlers.NewExportHandler(exportUC),
		Settings:   handlers.NewSettingsHandler(r.settings),
		Dashboard:  handlers.NewDashboardHandler(r.candidates, r.resumes, r.messages, r.jobs),
	}

	app := fiber.New(fiber.Config{BodyLimit: 12 << 20})
	httpapi.Register(app, h, jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	w := worker.New(r.jobs, jobsUC, resumesUC, r.messages, cfg.WorkerInterval, log)
	go w.Run(ctx)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	log.WithField("port", cfg.Port).Info("http server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
