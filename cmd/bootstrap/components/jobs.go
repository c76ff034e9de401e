package components

import (
	"context"

	"charterdesk/internal/infra/mailer"
	"charterdesk/internal/infra/repository"
	"charterdesk/internal/jobs"
	"charterdesk/internal/pkg/config"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewMailer,
		NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

func NewMailer(cfg config.Config) mailer.Mailer {
	if cfg.Mail.SendGridKey == "" {
		return mailer.LogMailer{}
	}
	return mailer.NewSendGridMailer(cfg.Mail)
}

func NewDispatcher(repo *repository.NotificationRepository, m mailer.Mailer, cfg config.Config) *jobs.Dispatcher {
	return jobs.NewDispatcher(repo, m, cfg.Jobs)
}

func StartDispatcher(lc fx.Lifecycle, d *jobs.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return d.Start()
		},
		OnStop: func(_ context.Context) error {
			d.Stop()
			return nil
		},
	})
}
