package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/YusovID/journal-review-service/internal/auth"
	"github.com/YusovID/journal-review-service/internal/config"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository/postgres"
	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/YusovID/journal-review-service/internal/storage"
	myhttp "github.com/YusovID/journal-review-service/internal/transport/http"
	"github.com/YusovID/journal-review-service/pkg/logger/sl"
	"github.com/YusovID/journal-review-service/pkg/logger/slogpretty"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting journal-review-service", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	blobs, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to init storage: %v", err)
	}
	if closer, ok := blobs.(io.Closer); ok {
		defer closer.Close()
	}

	templates, err := mailer.NewTemplates(cfg.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to parse mail templates: %v", err)
	}

	users := postgres.NewUserRepository(db.DB(), log)
	articles := postgres.NewArticleRepository(db.DB(), log)
	reviews := postgres.NewReviewRepository(db.DB(), log)
	notifications := postgres.NewNotificationRepository(db.DB(), log)
	issues := postgres.NewIssueRepository(db.DB(), log)

	dispatcher := notify.NewDispatcher(notifications, mailer.NewSMTPSender(cfg.Mail, log), templates, log)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	base := service.NewBaseService(db.DB(), db.DB(), log)

	srv := myhttp.NewServer(log, myhttp.Services{
		Auth:          service.NewAuthService(base, users, tokens, dispatcher),
		Users:         service.NewUserService(base, users, dispatcher),
		Articles:      service.NewArticleService(base, articles, articles, reviews, dispatcher),
		Workflow:      service.NewWorkflowService(base, articles, reviews, users, dispatcher),
		Notifications: service.NewNotificationService(notifications),
		Issues:        service.NewIssueService(base, issues, articles, articles),
		Stats:         service.NewStatsService(articles, reviews),
		Uploads:       service.NewUploadService(blobs, log),
	}, myhttp.SessionCookie{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	})

	if local, ok := blobs.(*storage.Local); ok {
		srv.ServeFiles(local.Prefix(), local.Handler())
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shuting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
