// journalctl runs maintenance tasks against the journal database.
//
//	journalctl repair [-dry-run]   fix articles whose review rows or status drifted
//	journalctl approve <email>     approve a pending account, e.g. the first editor
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/YusovID/journal-review-service/internal/config"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository/postgres"
	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/YusovID/journal-review-service/pkg/logger/slogpretty"
	"github.com/joho/godotenv"
)

const usage = `usage:
  journalctl repair [-dry-run]
  journalctl approve <email>`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer db.DB().Close()

	base := service.NewBaseService(db.DB(), db.DB(), log)

	switch args[0] {
	case "repair":
		fs := flag.NewFlagSet("repair", flag.ContinueOnError)
		dryRun := fs.Bool("dry-run", false, "report drift without fixing it")

		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		articles := postgres.NewArticleRepository(db.DB(), log)
		reviews := postgres.NewReviewRepository(db.DB(), log)

		report, err := service.NewRepairService(base, articles, articles, reviews).Repair(ctx, *dryRun)
		if err != nil {
			return err
		}

		log.Info("repair finished",
			slog.Bool("dry_run", report.DryRun),
			slog.Int("articles_checked", report.ArticlesChecked),
			slog.Any("missing_reviews", report.MissingReviews),
			slog.Any("status_mismatch", report.StatusMismatch),
		)

		return nil
	case "approve":
		if len(args) != 2 {
			return errors.New(usage)
		}

		templates, err := mailer.NewTemplates(cfg.PublicURL)
		if err != nil {
			return fmt.Errorf("failed to parse mail templates: %v", err)
		}

		notifications := postgres.NewNotificationRepository(db.DB(), log)
		dispatcher := notify.NewDispatcher(notifications, mailer.NewSMTPSender(cfg.Mail, log), templates, log)

		users := service.NewUserService(base, postgres.NewUserRepository(db.DB(), log), dispatcher)

		user, err := users.ApproveUserByEmail(ctx, args[1])
		if err != nil {
			return err
		}

		log.Info("user approved", slog.String("email", user.Email), slog.String("role", string(user.Role)))

		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
