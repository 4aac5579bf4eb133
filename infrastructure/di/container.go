package di

import (
	"inventory-backend/application/ports"
	"inventory-backend/application/services"
	"inventory-backend/domain/inventory"
	"inventory-backend/infrastructure/config"
	"inventory-backend/interfaces/http/rest"
	"inventory-backend/interfaces/queue"
	"inventory-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Tracer     *observability.Tracer
	Metrics    *observability.Collector
	Repository ports.RecordRepository
	Service    *services.InventoryService
	Processor  *queue.Processor
	Router     *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideMetrics,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideRecordRepository,
	inventory.NewNormalizer,
	services.NewInventoryService,
	queue.NewProcessor,
	rest.NewRouter,
	wire.Struct(new(Container), "*"),
)
