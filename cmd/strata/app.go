// File: cmd/strata/app.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"strata/internal/api"
	"strata/internal/config"
	"strata/internal/credential"
	"strata/internal/metrics"
	"strata/internal/service"
	"strata/internal/ui/prompt"
	"strata/pkg/formatter"
)

// TokenEnv overrides the stored credential when set
const TokenEnv = "STRATA_TOKEN"

// appContainer holds all the shared dependencies for the application
// This includes configuration, the API client, resource services, formatters, and the logger
type appContainer struct {
	Config        *config.Config
	ConfigManager *config.ConfigManager
	Credentials   *credential.FileStore
	Token         credential.Accessor
	Metrics       *metrics.Recorder
	API           *api.Client

	Projects *service.ProjectService
	Buckets  *service.BucketService
	Files    *service.FileService
	Resolver *service.AccessKeyResolver

	Formatter *formatter.ResourceFormatter
	Prompter  prompt.Prompter
	Logger    *slog.Logger
	LevelVar  *slog.LevelVar

	Out io.Writer
}

// Creates and initializes a new application container
func newApp(cfgManager *config.ConfigManager, cfg *config.Config, logger *slog.Logger, levelVar *slog.LevelVar) (*appContainer, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	recorder := metrics.NewRecorder()
	client := api.NewClient(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		Recorder: recorder,
	}, logger)

	aggregator := service.NewUsageAggregator(client, cfg.API.MaxConcurrency, logger)
	projects := service.NewProjectService(client, logger)
	buckets := service.NewBucketService(client, aggregator, logger)
	files := service.NewFileService(client, logger)
	service.LinkCascade(projects, buckets, files)

	store := credential.NewFileStore(cfg.Auth.CredentialsFile)
	var token credential.Accessor = store
	if env := os.Getenv(TokenEnv); env != "" {
		token = credential.Static(env)
	}

	return &appContainer{
		Config:        cfg,
		ConfigManager: cfgManager,
		Credentials:   store,
		Token:         token,
		Metrics:       recorder,
		API:           client,
		Projects:      projects,
		Buckets:       buckets,
		Files:         files,
		Resolver:      service.NewAccessKeyResolver(client, logger),
		Formatter:     formatter.NewResourceFormatter(),
		Prompter:      prompt.New(os.Stdin, os.Stdout),
		Logger:        logger,
		LevelVar:      levelVar,
		Out:           os.Stdout,
	}, nil
}

// token returns the current bearer token or a hint on how to obtain one
func (a *appContainer) token() (string, error) {
	tok, err := a.Token.Token()
	if err != nil {
		if errors.Is(err, credential.ErrNoCredential) {
			return "", err
		}
		return "", fmt.Errorf("error reading credential: %w", err)
	}
	return tok, nil
}
