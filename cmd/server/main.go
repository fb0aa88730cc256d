// @title         career-advisor API
// @version       1.0
// @description   Career advice chat backed by hosted text-generation models with a fallback model.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/careeradvisor/docs"

	// internal imports
	apihttp "github.com/artem13815/careeradvisor/api/http"
	"github.com/artem13815/careeradvisor/api/http/handlers"
	"github.com/artem13815/careeradvisor/pkg/advice"
	"github.com/artem13815/careeradvisor/pkg/auth"
	"github.com/artem13815/careeradvisor/pkg/chat"
	"github.com/artem13815/careeradvisor/pkg/config"
	"github.com/artem13815/careeradvisor/pkg/health"
	healthpg "github.com/artem13815/careeradvisor/pkg/health/checkers"
	"github.com/artem13815/careeradvisor/pkg/llm/huggingface"
	"github.com/artem13815/careeradvisor/pkg/repository/memory"
	pgrepo "github.com/artem13815/careeradvisor/pkg/repository/postgres"
	"github.com/artem13815/careeradvisor/pkg/security/jwt"
	"github.com/artem13815/careeradvisor/pkg/security/ratelimit"
	"github.com/artem13815/careeradvisor/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env; the inference token is mandatory
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Storage: PostgreSQL when configured, process memory otherwise
	var (
		users    auth.UserRepository
		sessions chat.Repository
		checkers []health.Checker
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()

		userRepo, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			log.Fatalf("init user repo: %v", err)
		}
		sessionRepo, err := pgrepo.NewSessionRepository(pool)
		if err != nil {
			log.Fatalf("init session repo: %v", err)
		}
		users, sessions = userRepo, sessionRepo
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	} else {
		log.Printf("DATABASE_URL not set: transcripts and accounts are kept in memory")
		users, sessions = memory.NewUserRepository(), memory.NewSessionRepository()
	}

	// Inference: primary model with a fallback model behind it
	hf := huggingface.New(cfg.HFBaseURL, time.Duration(cfg.HFTimeoutSecs)*time.Second)
	requester := advice.NewRequester(hf, cfg.HFPrimaryModel, advice.NewFallbackRequester(hf, cfg.HFFallbackModel))
	adviceUC := advice.NewService(requester, cfg.HFAPIToken)
	chatUC := chat.NewService(sessions, adviceUC)

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(users, jwtGen)

	app := apihttp.NewApp()
	apihttp.Register(app, apihttp.Handlers{
		Auth:        handlers.NewAuthHandler(authUC),
		Health:      handlers.NewHealthHandler(health.NewService(checkers...)),
		Advice:      handlers.NewAdviceHandler(adviceUC),
		Sessions:    handlers.NewSessionsHandler(chatUC),
		AuthMW:      jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		AdviceLimit: ratelimit.PerMinute(cfg.AdviceRatePerMinute).Middleware(apihttp.UserKey),
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("HTTP server listening on :%s (primary model %s, fallback %s)", cfg.Port, cfg.HFPrimaryModel, cfg.HFFallbackModel)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
