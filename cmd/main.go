package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"outreach-agent/handler"
	"outreach-agent/internal/config"
	"outreach-agent/internal/engine"
	"outreach-agent/internal/integrations/openai"
	"outreach-agent/internal/integrations/paramstore"
	"outreach-agent/internal/logging"
	"outreach-agent/internal/prospect"
	"outreach-agent/internal/repository"
	"outreach-agent/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Fatal("failed to load AWS config", zap.Error(err))
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		logger.Fatal("failed to create SSM client", zap.Error(err))
	}
	store, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.StateTable)
	if err != nil {
		logger.Fatal("failed to create state client", zap.Error(err))
	}

	apiKey, err := config.ResolveCredential(ctx, cfg, ssmClient)
	if err != nil {
		logger.Fatal("failed to resolve completion credential", zap.Error(err))
	}

	// A nil client selects the mock path.
	var completion engine.CompletionClient
	if apiKey != "" {
		client, err := openai.NewClient(apiKey, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		if err != nil {
			logger.Fatal("failed to create OpenAI client", zap.Error(err))
		}
		completion = client
	}

	// ---- Engine ----
	strategy, err := engine.NewStrategy(completion, engine.Settings{
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
	}, nil)
	if err != nil {
		logger.Fatal("failed to create generation strategy", zap.Error(err))
	}
	generator, err := engine.NewGenerator(strategy, logger.Named("engine"))
	if err != nil {
		logger.Fatal("failed to create generator", zap.Error(err))
	}

	// ---- Handler ----
	sequenceService, err := usecase.NewSequenceService(
		prospect.NewScraper(nil),
		generator,
		store,
		cfg.OpenAI.Model,
		logger.Named("usecase"),
	)
	if err != nil {
		logger.Fatal("failed to create sequence service", zap.Error(err))
	}

	h, err := handler.NewHandler(sequenceService, logger.Named("handler"))
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}

	lambda.Start(h.Handle)
}
