package di

import (
	"context"

	"inventory-backend/application/ports"
	"inventory-backend/infrastructure/config"
	"inventory-backend/infrastructure/persistence/dynamodb"
	"inventory-backend/infrastructure/persistence/memory"
	"inventory-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ServiceName names the service in traces and metrics
const ServiceName = "inventory"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing)
}

// ProvideMetrics creates the metrics collector, or nil when metrics are off
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(ServiceName)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideRecordRepository selects the record store
func ProvideRecordRepository(
	cfg *config.Config,
	client *awsdynamodb.Client,
	logger *zap.Logger,
	tracer *observability.Tracer,
	metrics *observability.Collector,
) ports.RecordRepository {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("Using in-memory record store")
		return memory.NewRecordRepository()
	}
	return dynamodb.NewRecordRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger, tracer, metrics)
}
