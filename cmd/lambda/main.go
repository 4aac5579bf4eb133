package main

import (
	"context"
	"log"
	"time"

	"inventory-backend/infrastructure/config"
	"inventory-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// main is the entry point for the Lambda function
func main() {
	coldStartTime := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := NewHandler(container.Router.Setup(), container.Processor, container.Logger)

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("table", cfg.DynamoDBTable),
		zap.String("store", cfg.StoreBackend),
	)

	lambda.Start(handler.Handle)
}
