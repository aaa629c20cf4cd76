// Package container wires configuration, infrastructure, repositories,
// services and handlers into one dependency graph shared by the api and
// worker processes.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/bot"
	"orderbot-backend/internal/config"
	authhandler "orderbot-backend/internal/domains/auth/handler"
	cartjob "orderbot-backend/internal/domains/cart/job"
	cartrepository "orderbot-backend/internal/domains/cart/repository"
	cartservice "orderbot-backend/internal/domains/cart/service"
	categoryhandler "orderbot-backend/internal/domains/category/handler"
	categoryrepository "orderbot-backend/internal/domains/category/repository"
	categoryservice "orderbot-backend/internal/domains/category/service"
	customerhandler "orderbot-backend/internal/domains/customer/handler"
	customerrepository "orderbot-backend/internal/domains/customer/repository"
	customerservice "orderbot-backend/internal/domains/customer/service"
	notifjob "orderbot-backend/internal/domains/notification/job"
	notifservice "orderbot-backend/internal/domains/notification/service"
	orderhandler "orderbot-backend/internal/domains/order/handler"
	orderjob "orderbot-backend/internal/domains/order/job"
	orderrepository "orderbot-backend/internal/domains/order/repository"
	orderservice "orderbot-backend/internal/domains/order/service"
	producthandler "orderbot-backend/internal/domains/product/handler"
	productrepository "orderbot-backend/internal/domains/product/repository"
	productservice "orderbot-backend/internal/domains/product/service"
	infracache "orderbot-backend/internal/infrastructure/cache"
	"orderbot-backend/internal/infrastructure/database"
	"orderbot-backend/internal/infrastructure/queue"
	"orderbot-backend/internal/infrastructure/storage"
	"orderbot-backend/internal/infrastructure/telegram"
	"orderbot-backend/internal/shared/ratelimit"
	pkgcache "orderbot-backend/pkg/cache"
	"orderbot-backend/pkg/jwt"
	"orderbot-backend/pkg/logger"
)

// Container holds the application's dependency graph.
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       pkgcache.Cache
	AsynqClient *asynq.Client
	Storage     *storage.MinIOStorage
	Sender      telegram.Sender
	JWTManager  *jwt.Manager
	RateLimiter *ratelimit.Limiter

	CustomerService customerservice.ServiceInterface
	CategoryService categoryservice.ServiceInterface
	ProductService  productservice.ServiceInterface
	CartService     cartservice.ServiceInterface
	OrderService    orderservice.ServiceInterface
	Dispatcher      notifservice.DispatcherInterface
	Bot             *bot.Service

	CartRepository  cartrepository.RepositoryInterface
	OrderRepository orderrepository.RepositoryInterface

	AuthHandler     *authhandler.AuthHandler
	CategoryHandler *categoryhandler.CategoryHandler
	ProductHandler  *producthandler.ProductHandler
	OrderHandler    *orderhandler.OrderHandler
	CustomerHandler *customerhandler.CustomerHandler
}

// New builds the full graph and connects to postgres, redis and minio.
func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, err
	}
	if err := minioStorage.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	asynqClient := queue.NewClient(cfg.Redis)
	sender := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	limiter := ratelimit.NewLimiter(redisCache, cfg.Business.RateLimitPerMinute, time.Minute)

	cacheTTL := time.Duration(cfg.Business.CatalogCacheTTLMin) * time.Minute
	bizLocation := cfg.Business.Location()

	customerRepo := customerrepository.NewPostgresRepository(db.Pool)
	categoryRepo := categoryrepository.NewPostgresRepository(db.Pool)
	productRepo := productrepository.NewPostgresRepository(db.Pool)
	cartRepo := cartrepository.NewPostgresRepository(db.Pool)
	orderRepo := orderrepository.NewPostgresRepository(db.Pool)

	customerSvc := customerservice.NewCustomerService(customerRepo, cfg.Business.DefaultLanguage)
	categorySvc := categoryservice.NewCategoryService(categoryRepo, redisCache, cacheTTL)
	productSvc := productservice.NewProductService(productRepo, redisCache, minioStorage, cacheTTL)
	cartSvc := cartservice.NewCartService(cartRepo, productSvc, cfg.Business.DeliveryFee, bizLocation)
	dispatcher := notifservice.NewDispatcher(asynqClient, cfg.Telegram.AdminChatID, cfg.Business.Currency)
	orderSvc := orderservice.NewOrderService(orderRepo, cartRepo, dispatcher, cfg.Business.DeliveryFee, bizLocation)

	botSvc := bot.NewService(customerSvc, categorySvc, productSvc, cartSvc, orderSvc, redisCache, bot.Settings{
		BusinessName:    cfg.App.Name,
		Currency:        cfg.Business.Currency,
		DefaultLanguage: cfg.Business.DefaultLanguage,
		Location:        bizLocation,
	})

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return &Container{
		Config: cfg,

		DB:          db,
		Cache:       redisCache,
		AsynqClient: asynqClient,
		Storage:     minioStorage,
		Sender:      sender,
		JWTManager:  jwtManager,
		RateLimiter: limiter,

		CustomerService: customerSvc,
		CategoryService: categorySvc,
		ProductService:  productSvc,
		CartService:     cartSvc,
		OrderService:    orderSvc,
		Dispatcher:      dispatcher,
		Bot:             botSvc,

		CartRepository:  cartRepo,
		OrderRepository: orderRepo,

		AuthHandler:     authhandler.NewAuthHandler(cfg.Admin, jwtManager, cfg.JWT.ExpiryHours),
		CategoryHandler: categoryhandler.NewCategoryHandler(categorySvc),
		ProductHandler:  producthandler.NewProductHandler(productSvc),
		OrderHandler:    orderhandler.NewOrderHandler(orderSvc),
		CustomerHandler: customerhandler.NewCustomerHandler(customerSvc),
	}, nil
}

// WorkerMux registers all asynq task handlers.
func (c *Container) WorkerMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	notifjob.Register(mux, c.Sender)
	cartjob.Register(mux, c.CartRepository, c.Config.Business.StaleCartDays)
	orderjob.Register(mux, c.OrderRepository, c.Dispatcher, c.Config.Business.Location())
	return mux
}

// Close releases all connections.
func (c *Container) Close() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
