package main

import (
	"context"
	"fmt"
	"time"

	"ai-doc-assistant/config"
	exportapi "ai-doc-assistant/internal/api/export"
	"ai-doc-assistant/internal/api/healthcheck"
	"ai-doc-assistant/internal/api/sessionapi"
	taskapi "ai-doc-assistant/internal/api/task"
	"ai-doc-assistant/internal/api/upload"
	"ai-doc-assistant/internal/core/analyzer"
	"ai-doc-assistant/internal/core/quiz"
	"ai-doc-assistant/internal/core/task"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/internal/middleware"
	"ai-doc-assistant/internal/services/sessions"
	"ai-doc-assistant/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	logger.SetLevel(string(config.Cfg.LogLevel))

	gen, err := llm.New(context.Background())
	if err != nil {
		logger.Fatal(err, "failed to initialize model client")
	}

	registry := sessions.NewRegistry()
	dispatcher := task.NewDispatcher(
		gen,
		quiz.NewEngine(gen, config.Cfg.Quiz.OpenThreshold, config.Cfg.Quiz.MaxQuestions),
		analyzer.New(config.Cfg.Analyzer.ExtraStopwords, config.Cfg.Analyzer.MinWordLen),
		time.Duration(config.Cfg.LLM.TimeoutSeconds)*time.Second,
	)

	app := fiber.New(fiber.Config{
		AppName:     config.Cfg.Server.AppName,
		BodyLimit:   config.Cfg.Server.BodyLimit,
		Concurrency: config.Cfg.Server.Concurrency,
	})

	middleware.Register(app)

	healthcheck.RegisterRoutes(app)
	sessionapi.RegisterRoutes(app, &sessionapi.Handler{Registry: registry})
	upload.RegisterRoutes(app, &upload.Handler{Registry: registry})
	taskapi.RegisterRoutes(app, &taskapi.Handler{Registry: registry, Dispatcher: dispatcher})
	exportapi.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	logger.Info("listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}
