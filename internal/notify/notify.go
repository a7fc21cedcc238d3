// Package notify records in-app notifications inside a workflow transaction and
// delivers the matching emails once that transaction has committed.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/YusovID/journal-review-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var emailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "journal_emails_total",
		Help: "Transactional emails by delivery result",
	},
	[]string{"result"},
)

// Outbox collects emails produced while a transaction is open.
// Rendering failures are kept and reported on Flush.
type Outbox struct {
	messages []mailer.Message
	errs     []error
}

func (o *Outbox) Queue(msg mailer.Message, err error) {
	if err != nil {
		o.errs = append(o.errs, err)
		return
	}

	o.messages = append(o.messages, msg)
}

func (o *Outbox) Len() int {
	return len(o.messages)
}

type Dispatcher struct {
	repo      repository.NotificationRepository
	sender    mailer.Sender
	templates *mailer.Templates
	log       *slog.Logger
	now       func() time.Time
}

func NewDispatcher(repo repository.NotificationRepository, sender mailer.Sender, templates *mailer.Templates, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		sender:    sender,
		templates: templates,
		log:       log,
		now:       time.Now,
	}
}

func (d *Dispatcher) Templates() *mailer.Templates {
	return d.templates
}

// Record stores notifications in tx, filling in ids and timestamps.
func (d *Dispatcher) Record(ctx context.Context, tx *sqlx.Tx, notifications ...domain.Notification) error {
	const op = "internal.notify.Record"

	if len(notifications) == 0 {
		return nil
	}

	now := d.now().UTC()
	for i := range notifications {
		if notifications[i].ID == "" {
			notifications[i].ID = uuid.NewString()
		}

		notifications[i].CreatedAt = now
	}

	if err := d.repo.CreateNotifications(ctx, tx, notifications); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Flush sends every queued email. Delivery is best effort: failures are logged
// and counted, never returned.
func (d *Dispatcher) Flush(ctx context.Context, outbox *Outbox) {
	const op = "internal.notify.Flush"
	log := d.log.With(slog.String("op", op))

	if outbox == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)

	for _, err := range outbox.errs {
		emailsTotal.WithLabelValues("render_error").Inc()
		log.Error("failed to render email", sl.Err(err))
	}

	for _, msg := range outbox.messages {
		if err := d.sender.Send(ctx, msg); err != nil {
			emailsTotal.WithLabelValues("failed").Inc()
			log.Error("failed to send email", slog.String("to", msg.To), slog.String("subject", msg.Subject), sl.Err(err))

			continue
		}

		emailsTotal.WithLabelValues("sent").Inc()
	}
}

func Build(userID string, typ domain.NotificationType, title, message string, article *domain.Article, link string) domain.Notification {
	n := domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}

	if article != nil {
		id := article.ID
		n.ArticleID = &id
	}

	if link != "" {
		n.Link = &link
	}

	return n
}
