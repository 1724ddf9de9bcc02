package cmd

import (
	"context"
	"fmt"
	"log/slog"

	apihttp "bookdesk/internal/adapters/in/http"
	"bookdesk/internal/adapters/out/kafka"
	"bookdesk/internal/adapters/out/objectstorage"
	"bookdesk/internal/adapters/out/postgres"
	"bookdesk/internal/adapters/out/redis"
	"bookdesk/internal/core/application/evidence"
	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/application/usecases/queries"
	"bookdesk/internal/core/ports"
	"bookdesk/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB connects with error translation on, so unique and foreign key
// violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	storage     ports.ObjectStorage
	publisher   *kafka.Publisher
	redisClient *goredis.Client
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

// ConnectOutbound opens the object store, Kafka writer and, when configured, Redis.
func (c *CompositionRoot) ConnectOutbound(ctx context.Context) error {
	storage, err := objectstorage.NewS3Storage(ctx, objectstorage.Config{
		Endpoint:        c.configs.S3Endpoint,
		Region:          c.configs.S3Region,
		AccessKeyID:     c.configs.S3AccessKeyID,
		SecretAccessKey: c.configs.S3SecretAccessKey,
		Bucket:          c.configs.S3Bucket,
	})
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	c.storage = storage

	c.publisher = kafka.NewPublisher(c.configs.KafkaBrokers(), c.configs.KafkaOrderChangedTopic)

	if c.configs.RedisAddr != "" {
		c.redisClient = redis.NewClient(c.configs.RedisAddr)
	}
	return nil
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Warn("closing kafka writer", "error", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.logger.Warn("closing redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateImportStudentsCommandHandler() commands.ImportStudentsCommandHandler {
	var f commands.RosterUoWFactory = FuncRosterUoWFactory(func() commands.RosterUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportStudentsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	return commands.NewRelayOrderEventsCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePurgeOrderEventsCommandHandler() commands.PurgeOrderEventsCommandHandler {
	return commands.NewPurgeOrderEventsCommandHandler(c.outboxUoWFactory())
}

func (c *CompositionRoot) CreateEvidenceResolver() *evidence.Resolver {
	return evidence.NewResolver(c.storage, c.configs.EvidenceURLTTL, c.logger)
}

func (c *CompositionRoot) CreateScanDebouncer() ports.ScanDebouncer {
	if c.redisClient == nil {
		return redis.NopScanDebouncer{}
	}
	return redis.NewScanDebouncer(c.redisClient, c.configs.ScanDebounce, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	resolver := c.CreateEvidenceResolver()

	handlers := apihttp.Handlers{
		SubmitEvidence:       commands.NewSubmitEvidenceCommandHandler(c.orderUoWFactory()),
		ConfirmPayment:       commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory()),
		DeclinePayment:       commands.NewDeclinePaymentCommandHandler(c.orderUoWFactory()),
		ConfirmAllPending:    commands.NewConfirmAllPendingCommandHandler(c.orderUoWFactory()),
		SetStudentStatus:     commands.NewSetStudentStatusCommandHandler(c.orderUoWFactory()),
		BulkSetStudentStatus: commands.NewBulkSetStudentStatusCommandHandler(c.orderUoWFactory()),
		RedeemOrder:          commands.NewRedeemOrderCommandHandler(c.orderUoWFactory()),
		CreateProduct:        commands.NewCreateProductCommandHandler(c.catalogUoWFactory()),
		DeleteProduct:        commands.NewDeleteProductCommandHandler(c.catalogUoWFactory()),

		GetStudentOrder:     queries.NewGetStudentOrderQueryHandler(c.gormDB, resolver),
		GetProductStats:     queries.NewGetProductStatsQueryHandler(c.gormDB, resolver),
		GetStudentProducts:  queries.NewGetStudentProductsQueryHandler(c.gormDB),
		SearchStudents:      queries.NewSearchStudentsQueryHandler(c.gormDB),
		GetOperatorProducts: queries.NewGetOperatorProductsQueryHandler(c.gormDB),
		GetProduct:          queries.NewGetProductQueryHandler(c.gormDB),
	}

	return apihttp.NewServer(handlers, evidence.NewUploader(c.storage), c.CreateScanDebouncer(),
		c.configs.JWTSecret, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOrderEventsCommandHandler(), commands.DefaultRelayBatchSize,
		c.CreatePurgeOrderEventsCommandHandler(), c.configs.OutboxRetention,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncRosterUoWFactory func() commands.RosterUoW

func (f FuncRosterUoWFactory) Create() commands.RosterUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
