package cmd

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/socialcraft/content-agent/agent/application"
	"github.com/socialcraft/content-agent/agent/domain"
	"github.com/socialcraft/content-agent/agent/repository"
	coreconfig "github.com/socialcraft/content-agent/core/config"
	coreDB "github.com/socialcraft/content-agent/core/database"
	"github.com/socialcraft/content-agent/infrastructure/publishapi"
	"github.com/socialcraft/content-agent/usecase"
)

// agentStack bundles everything a command needs to run the execution agent.
type agentStack struct {
	Plans     domain.PlanRepository
	Resolver  domain.AccountResolver
	Scheduler *application.Scheduler
	Reporter  *application.StatusReporter
	PlanUC    *usecase.PlanUsecase
}

// buildAgent wires the agent from configuration. With useMemory the plan
// store and resolver live in process memory; otherwise they are backed by
// the configured database.
func buildAgent(ctx context.Context, cfg *coreconfig.Config, useMemory bool) (*agentStack, error) {
	var plans domain.PlanRepository
	var resolver domain.AccountResolver

	if useMemory {
		logrus.Warn("[AGENT] Using in-memory stores, state is lost on restart")
		plans = repository.NewMemoryPlanRepository()
		resolver = repository.NewMemoryResolver()
	} else {
		db, err := coreDB.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}

		planRepo := repository.NewPlanGormRepository(db)
		if err := planRepo.Init(ctx); err != nil {
			return nil, err
		}

		resolverRepo := repository.NewResolverGormRepository(db)
		if err := resolverRepo.Init(ctx); err != nil {
			return nil, err
		}

		plans = planRepo
		resolver = resolverRepo
	}

	client := publishapi.NewClient(cfg.Publisher.BaseURL, cfg.Publisher.APIKey, cfg.Publisher.Timeout)
	if cfg.Publisher.BaseURL == "" {
		logrus.Warn("[AGENT] PUBLISHER_BASE_URL is not set, every publish attempt will fail")
	}

	publisher := application.NewPublisher(client, client, application.PublisherConfig{
		MaxRetries: cfg.Agent.MaxPublishRetries,
		BaseDelay:  cfg.Agent.RetryBaseDelay,
		MaxDelay:   cfg.Agent.RetryMaxDelay,
	})

	reporter := application.NewStatusReporter(cfg.Agent.ErrorBufferSize)

	processor := application.NewPlanProcessor(plans, resolver, publisher, reporter, application.ProcessorConfig{
		FailureCap:   cfg.Agent.FailureCap,
		Location:     cfg.Agent.Location(),
		PromoEnabled: cfg.Publisher.PromoEnabled,
		PromoText:    cfg.Publisher.PromoText,
	})

	scheduler := application.NewScheduler(processor, reporter, application.SchedulerConfig{
		Interval:     cfg.Agent.Interval,
		InitialDelay: cfg.Agent.InitialDelay,
	})

	return &agentStack{
		Plans:     plans,
		Resolver:  resolver,
		Scheduler: scheduler,
		Reporter:  reporter,
		PlanUC:    usecase.NewPlanUsecase(plans),
	}, nil
}
