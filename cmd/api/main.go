package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/search-team-api/internal/application/notification"
	"github.com/search-team-api/internal/application/verification"
	"github.com/search-team-api/internal/config"
	"github.com/search-team-api/internal/infrastructure/dynamo"
	"github.com/search-team-api/internal/infrastructure/mailersend"
	"github.com/search-team-api/internal/infrastructure/smtp"
	"github.com/search-team-api/internal/infrastructure/sns"
	"github.com/search-team-api/internal/logger"
	"github.com/search-team-api/internal/pkg/clock"
	transporthttp "github.com/search-team-api/internal/transport/http"
	"github.com/search-team-api/internal/transport/http/handler"
)

const janitorInterval = time.Minute

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Log.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("dynamodb client")
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	clk := clock.System()
	codes := verification.NewStore(verification.StoreDeps{
		Records:   codeRecords(ctx, cfg, dynamoClient, clk),
		Clock:     clk,
		TTL:       cfg.VerificationCodeTTL,
		Retention: cfg.VerificationRetention,
	})

	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("notification gateway")
	}

	deps := &transporthttp.Deps{
		UserRepo: dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		TeamRepo: dynamo.NewTeamRepo(dynamoClient, cfg.DynamoTables.Teams),
		Codes:    codes,
		Notifier: notification.NewDispatcher(gateway, cfg.NotifyTimeout),
		Clock:    clk,
		Probes: map[string]handler.Probe{
			"dynamodb": func(ctx context.Context) error {
				_, err := dynamoClient.DescribeTable(ctx, &dynamodb.DescribeTableInput{
					TableName: aws.String(cfg.DynamoTables.Users),
				})
				return err
			},
		},
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.AppPort).WithField("env", cfg.AppEnv).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Fatal("forced shutdown")
	}
	logger.Log.Info("server stopped")
}

// codeRecords picks the verification code backend. The memory backend is
// single-process only and needs its janitor to drop purged records.
func codeRecords(ctx context.Context, cfg *config.Config, client *dynamodb.Client, clk clock.Clock) verification.Records {
	if cfg.VerificationBackend == "memory" {
		mem := verification.NewMemoryRecords()
		go mem.RunJanitor(ctx, janitorInterval, clk.Now)
		return mem
	}
	return dynamo.NewVerificationRepo(client, cfg.DynamoTables.VerificationCodes)
}

func newGateway(ctx context.Context, cfg *config.Config) (notification.Gateway, error) {
	switch cfg.NotifyGateway {
	case "smtp":
		return smtp.NewGateway(cfg), nil
	case "sns":
		return sns.NewGateway(ctx, cfg)
	case "mailersend":
		return mailersend.NewGateway(cfg), nil
	case "log":
		return notification.LogGateway{}, nil
	}
	return nil, fmt.Errorf("unknown NOTIFY_GATEWAY %q", cfg.NotifyGateway)
}
