package main

import (
	"context"
	"os"

	"timesheet-assistant/internal/conversation"
	memoryRepo "timesheet-assistant/internal/conversation/repository/memory"
	"timesheet-assistant/internal/conversation/usecase"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/options"
	"timesheet-assistant/internal/submission"
	"timesheet-assistant/pkg/llmprovider"
)

// deliveryService builds the webhook delivery from config. With delivery
// disabled the service skips every entry.
func (a *app) deliveryService() (*submission.Service, error) {
	var sink submission.Sink
	if url := a.cfg.DeliveryURL(); url != "" {
		sink = submission.NewWebhookSink(url, a.cfg.Delivery.APIKey, nil)
	}

	policy := submission.DefaultPolicy()
	policy.MaxAttempts = a.cfg.Delivery.RetryAttempts
	policy.InitialDelay = a.cfg.Delivery.InitialDelay
	policy.MaxDelay = a.cfg.Delivery.MaxDelay

	return submission.NewService(sink, submission.Config{
		Policy:         policy,
		AttemptTimeout: a.cfg.Delivery.AttemptTimeout,
	}, a.logger)
}

// useCase wires an in-memory conversation use case. notifier receives
// delivery outcomes and may be nil.
func (a *app) useCase(ctx context.Context, notifier submission.Notifier) (conversation.UseCase, *submission.Dispatcher, error) {
	svc, err := a.deliveryService()
	if err != nil {
		return nil, nil, err
	}
	dispatcher := submission.NewDispatcher(svc, notifier, a.logger)
	optionSource := options.New(a.cfg.Options)

	var generator conversation.Generator
	if a.cfg.HasLLM() {
		providers, err := llmprovider.InitializeProviders(&a.cfg.LLM)
		if err != nil {
			a.logger.Warnf(ctx, "timesheet: LLM providers not available: %v", err)
		} else {
			manager := llmprovider.NewManager(providers, llmprovider.ManagerConfig(a.cfg.LLM), a.logger)
			generator = usecase.NewGenerator(manager, optionSource)
		}
	}

	uc := usecase.New(a.logger, usecase.Deps{
		Repo:       memoryRepo.New(0, 0, nil),
		Options:    optionSource,
		Generator:  generator,
		Dispatcher: dispatcher,
		Pinger:     svc,
	})
	return uc, dispatcher, nil
}

// localScope identifies the terminal user.
func localScope() model.Scope {
	name := os.Getenv("USER")
	if name == "" {
		name = "cli"
	}
	return model.Scope{
		UserID:   "cli_" + name,
		Username: name,
		Email:    os.Getenv("TIMESHEET_EMAIL"),
	}
}
