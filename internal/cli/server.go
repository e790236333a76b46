package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"vr-quiz-engine/internal/config"
	"vr-quiz-engine/internal/domain"
	"vr-quiz-engine/internal/infra/memory"
	pgloader "vr-quiz-engine/internal/infra/postgres"
	redisinfra "vr-quiz-engine/internal/infra/redis"
	"vr-quiz-engine/internal/quiz"
	transport "vr-quiz-engine/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz engine host bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// loadConfig falls back to built-in defaults when the config file is absent.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return config.Config{}, err
	}
	return cfg, nil
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)

	var questions quiz.QuestionRepository
	switch {
	case pool != nil && redisClient != nil:
		questions = redisinfra.NewQuestionRepository(redisClient, pgloader.NewQuestionLoader(pool), questionTTL)
	case pool != nil:
		questions = memory.NewQuestionRepository(pgloader.NewQuestionLoader(pool), questionTTL)
	default:
		questions = memory.NewQuestionRepository(memory.NewStaticQuestionLoader(sampleQuestions()), questionTTL)
	}
	verifier := quiz.NewRepositoryVerifier(questions)

	wsHandler := transport.NewWSHandler(transport.EngineConfig{
		Questions:       questions,
		Verifier:        verifier,
		PanelHalf:       cfg.Panel.HalfExtent,
		Duration:        cfg.Timer.DurationSeconds,
		UrgencyRatio:    cfg.Timer.UrgencyRatio,
		DefaultLanguage: cfg.Questions.DefaultLanguage,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions provides a minimal per-language question set; swap the
// static loader for the Postgres-backed one in production.
func sampleQuestions() map[string][]domain.Question {
	return map[string][]domain.Question{
		"en": {
			{
				ID:           "q1",
				Language:     "en",
				Text:         "Which planet is known as the Red Planet?",
				Options:      []string{"Venus", "Mars", "Jupiter", "Mercury"},
				CorrectIndex: 1,
			},
			{
				ID:           "q2",
				Language:     "en",
				Text:         "What is the largest ocean on Earth?",
				Options:      []string{"Atlantic", "Indian", "Pacific", "Arctic"},
				CorrectIndex: 2,
			},
		},
		"de": {
			{
				ID:           "q1",
				Language:     "de",
				Text:         "Welcher Planet ist als der Rote Planet bekannt?",
				Options:      []string{"Venus", "Mars", "Jupiter", "Merkur"},
				CorrectIndex: 1,
			},
		},
	}
}
