package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/astro-transits/internal/adapters/primary/http"
	chartsController "github.com/admin/astro-transits/internal/adapters/primary/http/controllers/charts"
	healthcheckController "github.com/admin/astro-transits/internal/adapters/primary/http/controllers/healthcheck"
	transitsController "github.com/admin/astro-transits/internal/adapters/primary/http/controllers/transits"
	kafkaConsumerAdapter "github.com/admin/astro-transits/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/astro-transits/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/admin/astro-transits/internal/adapters/secondary/alerter"
	ephemerisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/ephemeris"
	kafkaAdapter "github.com/admin/astro-transits/internal/adapters/secondary/kafka"
	"github.com/admin/astro-transits/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astro-transits/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-transits/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-transits/internal/ports/cache"
	"github.com/admin/astro-transits/internal/ports/repository"
	"github.com/admin/astro-transits/internal/ports/storage"
	chartRepo "github.com/admin/astro-transits/internal/repository/chart"
	alerterService "github.com/admin/astro-transits/internal/services/alerter"
	ephemerisService "github.com/admin/astro-transits/internal/services/ephemeris"
	jobScheduler "github.com/admin/astro-transits/internal/services/jobs"
	"github.com/admin/astro-transits/internal/usecases/transits"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB             *sqlx.DB // nil без Postgres
	HTTPServer     *http.Server
	Transits       *transits.Service
	KafkaProducers map[string]*kafkaAdapter.Producer
	KafkaConsumers map[string]*kafkaConsumerAdapter.Consumer
	Cache          cache.Cache
	JobScheduler   *jobScheduler.Scheduler
}

// Core минимальный набор для поиска транзитов: кэш, эфемериды и (опционально) хранилища.
// Используется и сервисом, и командами CLI.
type Core struct {
	DB       *sqlx.DB
	Cache    cache.Cache
	Transits *transits.Service
}

// Close освобождает соединения ядра
func (c *Core) Close() error {
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close cache: %w", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}
	return firstErr
}

// InitCore поднимает Postgres (если настроен), кэш, клиент эфемерид, S3 и сервис транзитов
func (a *App) InitCore(ctx context.Context) (*Core, error) {
	if !a.Cfg.Ephemeris.IsEnabled() {
		return nil, fmt.Errorf("ephemeris service is not configured: set %s_EPHEMERIS_BASE_URL", a.envPrefix())
	}

	db, charts, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	cacheClient := a.initCache()

	reports, err := a.initReportStorage(ctx)
	if err != nil {
		_ = cacheClient.Close()
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("failed to init report storage: %w", err)
	}

	client := ephemerisAdapter.NewClient(a.Cfg.Ephemeris, a.Log)
	ephemeris := ephemerisService.New(client, cacheClient, a.Cfg.Ephemeris.CacheTTL, a.Log)

	return &Core{
		DB:       db,
		Cache:    cacheClient,
		Transits: transits.New(ephemeris, charts, reports, a.Cfg.Scan, a.Log),
	}, nil
}

// initDependencies инициализирует все зависимости сервиса
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	core, err := a.InitCore(ctx)
	if err != nil {
		return nil, err
	}

	kafkaProducers, kafkaConsumers := a.initKafka(core.Transits)

	return &Dependencies{
		DB:             core.DB,
		HTTPServer:     a.initHTTP(core),
		Transits:       core.Transits,
		KafkaProducers: kafkaProducers,
		KafkaConsumers: kafkaConsumers,
		Cache:          core.Cache,
		JobScheduler:   a.initJobScheduler(core.Transits),
	}, nil
}

// initPostgres подключается к PostgreSQL и запускает миграции; без HOST карты не хранятся
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, repository.IChartRepo, error) {
	if !a.Cfg.Postgres.IsEnabled() {
		a.Log.Info("postgres is not configured, stored natal charts are disabled")
		return nil, nil, nil
	}

	db, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, chartRepo.New(pg.NewDB(db), a.Log), nil
}

// initCache Redis, если настроен и доступен, иначе in-memory кэш процесса
func (a *App) initCache() cache.Cache {
	if a.Cfg.Redis.IsEnabled() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err == nil {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(redisClient, a.Cfg.Redis.KeyPrefix)
		}
		a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
	}

	return inmemory.NewCache()
}

// initReportStorage MinIO для экспорта отчётов; nil, если S3 не настроен
func (a *App) initReportStorage(ctx context.Context) (storage.IReportStorage, error) {
	if !a.Cfg.S3.IsEnabled() {
		a.Log.Info("s3 is not configured, report export is disabled")
		return nil, nil
	}

	client, err := a.Cfg.S3.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	a.Log.Info("s3 report storage connected", "bucket", a.Cfg.S3.Bucket)
	return s3Adapter.NewClient(client, a.Cfg.S3.Bucket, a.Log), nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(core *Core) *http.Server {
	pingers := map[string]healthcheckController.Pinger{
		"cache": core.Cache,
	}
	if core.DB != nil {
		pingers["postgres"] = pg.NewDB(core.DB)
	}

	controllers := []server.Controller{
		healthcheckController.New(pingers, a.Log),
		transitsController.New(core.Transits, a.Log),
	}

	if core.DB != nil {
		controllers = append(controllers, chartsController.New(core.Transits, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initKafka поднимает producer результатов и consumer запросов на сканирование.
// Consumer без producer не создаётся: ответить на запрос было бы некуда.
func (a *App) initKafka(transitsService *transits.Service) (
	producers map[string]*kafkaAdapter.Producer,
	consumers map[string]*kafkaConsumerAdapter.Consumer,
) {
	producers = make(map[string]*kafkaAdapter.Producer)
	consumers = make(map[string]*kafkaConsumerAdapter.Consumer)

	if len(a.Cfg.Kafka.List) == 0 {
		return producers, consumers
	}

	if resultsCfg, ok := a.Cfg.Kafka.Get(kafkaAdapter.ScanResultsName); ok {
		prod, err := kafkaAdapter.NewProducer(resultsCfg, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer", "error", err, "name", kafkaAdapter.ScanResultsName)
		} else {
			producers[kafkaAdapter.ScanResultsName] = prod
		}
	}

	requestsCfg, ok := a.Cfg.Kafka.Get(kafkaAdapter.ScanRequestsName)
	if !ok {
		return producers, consumers
	}

	results, ok := producers[kafkaAdapter.ScanResultsName]
	if !ok {
		a.Log.Warn("scan results producer is not configured, skipping scan requests consumer")
		return producers, consumers
	}

	handler := kafkaHandlers.NewScanRequestHandler(transitsService, results, a.Log)
	consumer, err := kafkaConsumerAdapter.NewConsumer(requestsCfg, handler, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka consumer", "error", err, "name", kafkaAdapter.ScanRequestsName)
		return producers, consumers
	}
	consumers[kafkaAdapter.ScanRequestsName] = consumer

	return producers, consumers
}

// initJobScheduler планировщик с прогревом кэша эфемерид
func (a *App) initJobScheduler(transitsService *transits.Service) *jobScheduler.Scheduler {
	alerter := alerterService.New(alerterAdapter.NewClient(a.Cfg.Alerter, a.Log), a.Log)

	scheduler := jobScheduler.NewScheduler(a.Log, alerter)

	warmDays := 0
	if a.Cfg.Scan != nil {
		warmDays = a.Cfg.Scan.WarmDays
	}
	if warmDays > 0 {
		scheduler.Register(jobScheduler.NewPositionsWarmer(transitsService, warmDays, a.Log))
		a.Log.Info("positions warmer job registered", "warm_days", warmDays)
	}

	return scheduler
}
