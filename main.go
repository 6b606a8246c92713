package main

import (
	"context"
	"log"
	"os"

	"github.com/example/bfhl-service/config"
	aimod "github.com/example/bfhl-service/modules/ai"
	analyticsmod "github.com/example/bfhl-service/modules/analytics"
	apimod "github.com/example/bfhl-service/modules/api"
	cachemod "github.com/example/bfhl-service/modules/cache"
	numbersmod "github.com/example/bfhl-service/modules/numbers"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/middleware/accesslog"
	"github.com/go-monolith/mono/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("=== BFHL Service ===")
	log.Printf("Listen: %s", cfg.Addr())
	log.Printf("Gemini model: %s", cfg.GeminiModel)
	log.Printf("Strict validation: %t", cfg.StrictValidation)
	if cfg.CacheEnabled() {
		log.Printf("Answer cache: %s (TTL %s)", cfg.RedisAddr, cfg.AICacheTTL)
	} else {
		log.Println("Answer cache: disabled")
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}
	logger := app.Logger()

	// Middleware must be registered before regular modules.
	requestIDMiddleware, err := requestid.New(
		requestid.WithHeaderName(apimod.RequestIDHeader),
	)
	if err != nil {
		log.Fatalf("Failed to create requestid middleware: %v", err)
	}
	accessLogMiddleware, err := accesslog.New(
		accesslog.WithOutput(os.Stdout),
		accesslog.WithFormat(accesslog.FormatJSON),
		accesslog.WithFields([]accesslog.Field{
			accesslog.FieldTimestamp,
			accesslog.FieldRequestID,
			accesslog.FieldModule,
			accesslog.FieldService,
			accesslog.FieldDurationMS,
			accesslog.FieldStatus,
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create accesslog middleware: %v", err)
	}

	// A nil *cache.Cache must not become a non-nil AnswerCache.
	var answerCache aimod.AnswerCache
	var cacheModule *cachemod.Module
	if cfg.CacheEnabled() {
		cacheModule = cachemod.NewModule(cfg.RedisAddr, cfg.AICacheTTL, logger.WithModule("cache"))
		answerCache = cacheModule.Cache()
	}

	numbersModule := numbersmod.NewModule(logger.WithModule("numbers"))
	aiModule := aimod.NewModule(cfg.GeminiAPIKey, cfg.GeminiModel, answerCache, logger.WithModule("ai"))
	analyticsModule := analyticsmod.NewModule(logger.WithModule("analytics"))
	apiModule := apimod.NewModule(cfg, logger.WithModule("api"))

	modules := []mono.Module{requestIDMiddleware, accessLogMiddleware}
	if cacheModule != nil {
		modules = append(modules, cacheModule)
	}
	modules = append(modules, numbersModule, aiModule, analyticsModule, apiModule)
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register module %s: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost%s", cfg.Addr())
	log.Println("Endpoints:")
	log.Println("  GET  /health      - Health check")
	log.Println("  POST /bfhl        - fibonacci | prime | lcm | hcf | AI")
	log.Println("  GET  /bfhl/stats  - Dispatch statistics")
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
