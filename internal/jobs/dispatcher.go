package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"charterdesk/internal/infra/mailer"
	"charterdesk/internal/infra/repository"
	"charterdesk/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

// Dispatcher drains the notification job queue on a cron schedule.
// Delivery is best effort: a failed send requeues the job until its
// attempts run out, and never affects the lead it belongs to.
type Dispatcher struct {
	cron   *cron.Cron
	repo   *repository.NotificationRepository
	mailer mailer.Mailer
	cfg    config.JobsConfig
}

func NewDispatcher(repo *repository.NotificationRepository, m mailer.Mailer, cfg config.JobsConfig) *Dispatcher {
	return &Dispatcher{
		cron:   cron.New(),
		repo:   repo,
		mailer: m,
		cfg:    cfg,
	}
}

func (d *Dispatcher) Start() error {
	if _, err := d.cron.AddFunc(d.cfg.NotifySchedule, d.drainOnce); err != nil {
		return err
	}
	d.cron.Start()
	slog.Info("notification dispatcher started", "schedule", d.cfg.NotifySchedule)
	return nil
}

func (d *Dispatcher) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

func (d *Dispatcher) drainOnce() {
	ctx := context.Background()

	jobs, err := d.repo.ClaimDue(ctx, d.cfg.NotifyBatch)
	if err != nil {
		slog.Error("failed to claim notification jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if err := d.deliver(ctx, job); err != nil {
			slog.Warn("notification delivery failed",
				"job_id", job.ID, "topic", job.Topic, "attempt", job.Attempts, "error", err)
			if markErr := d.repo.MarkFailed(ctx, job.ID, err.Error(), d.cfg.MaxAttempts); markErr != nil {
				slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr)
			}
			continue
		}
		if err := d.repo.MarkSent(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification job sent", "job_id", job.ID, "error", err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, job repository.NotificationJob) error {
	switch job.Topic {
	case "lead_created":
		var email mailer.LeadEmail
		if err := json.Unmarshal(job.Payload, &email); err != nil {
			return err
		}
		return d.mailer.SendLeadCreated(ctx, email)
	default:
		slog.Warn("unknown notification topic, dropping", "job_id", job.ID, "topic", job.Topic)
		return nil
	}
}
