package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"

	"foodgram-backend/internal/config"
	infraCache "foodgram-backend/internal/infrastructure/cache"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/internal/infrastructure/queue"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/jwt"

	"foodgram-backend/internal/domains/collection"
	collectionHandler "foodgram-backend/internal/domains/collection/handler"
	collectionRepo "foodgram-backend/internal/domains/collection/repository"
	collectionService "foodgram-backend/internal/domains/collection/service"
	"foodgram-backend/internal/domains/ingredient"
	ingredientHandler "foodgram-backend/internal/domains/ingredient/handler"
	ingredientRepo "foodgram-backend/internal/domains/ingredient/repository"
	ingredientService "foodgram-backend/internal/domains/ingredient/service"
	"foodgram-backend/internal/domains/recipe"
	recipeHandler "foodgram-backend/internal/domains/recipe/handler"
	recipeRepo "foodgram-backend/internal/domains/recipe/repository"
	recipeService "foodgram-backend/internal/domains/recipe/service"
	"foodgram-backend/internal/domains/subscription"
	subscriptionHandler "foodgram-backend/internal/domains/subscription/handler"
	subscriptionRepo "foodgram-backend/internal/domains/subscription/repository"
	subscriptionService "foodgram-backend/internal/domains/subscription/service"
	"foodgram-backend/internal/domains/tag"
	tagHandler "foodgram-backend/internal/domains/tag/handler"
	tagRepo "foodgram-backend/internal/domains/tag/repository"
	tagService "foodgram-backend/internal/domains/tag/service"
	"foodgram-backend/internal/domains/user"
	userHandler "foodgram-backend/internal/domains/user/handler"
	userRepo "foodgram-backend/internal/domains/user/repository"
	userService "foodgram-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API process.
// Build order: config → infrastructure → repositories → services → handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client
	ImageQueue     *queue.ImageCleanupQueue

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo         user.Repository
	TagRepo          tag.Repository
	IngredientRepo   ingredient.Repository
	RecipeRepo       recipe.Repository
	SubscriptionRepo subscription.Repository
	CollectionRepo   collection.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService         user.Service
	TagService          tag.Service
	IngredientService   ingredient.Service
	RecipeService       recipe.Service
	SubscriptionService subscription.Service
	CollectionService   collection.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler         *userHandler.UserHandler
	TagHandler          *tagHandler.TagHandler
	IngredientHandler   *ingredientHandler.IngredientHandler
	RecipeHandler       *recipeHandler.RecipeHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	CollectionHandler   *collectionHandler.CollectionHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole dependency graph. Any infrastructure failure
// except Redis aborts startup.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DATABASE + MIGRATIONS
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	schemaChanged := false
	if cfg.Database.AutoMigrate {
		if schemaChanged, err = database.Migrate(dbConfig); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if err := metrics.RegisterPoolCollector(prometheus.DefaultRegisterer, db.Pool); err != nil {
		log.Printf("⚠️  Pool metrics not registered: %v", err)
	}
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// Cache misses fall through to Postgres
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	// Cached catalog rows may predate the migration that changed them
	if schemaChanged {
		c.flushCatalogCache(ctx)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// ========================================
	// STEP 4: OBJECT STORAGE + JOB QUEUE
	// ========================================
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.ImageProcessor = storage.NewImageProcessor(cfg.Upload.MaxImageBytes, cfg.Upload.MaxImageDimension)
	log.Println("✅ MinIO connected")

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.ImageQueue = queue.NewImageCleanupQueue(c.AsynqClient)

	// ========================================
	// STEP 5-7: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	ttl := c.Config.Cache.CatalogTTL

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.IngredientRepo = ingredientRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.RecipeRepo = recipeRepo.NewPostgresRepository(pool)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(pool)
	c.CollectionRepo = collectionRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, 0)
	c.TagService = tagService.NewTagService(c.TagRepo)
	c.IngredientService = ingredientService.NewIngredientService(c.IngredientRepo)

	c.RecipeService = recipeService.NewRecipeService(
		c.RecipeRepo,
		c.Storage,
		c.ImageProcessor,
		c.ImageQueue,
	)

	// Cross-domain: subscriptions read users, lists read recipes
	c.SubscriptionService = subscriptionService.NewSubscriptionService(c.SubscriptionRepo, c.UserRepo, c.Storage)
	c.CollectionService = collectionService.NewCollectionService(c.CollectionRepo, c.RecipeRepo, c.Storage)
}

func (c *Container) initHandlers() {
	pageSize := c.Config.Pagination.PageSize
	maxPageSize := c.Config.Pagination.MaxPageSize

	c.UserHandler = userHandler.NewUserHandler(c.UserService, pageSize, maxPageSize)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.IngredientHandler = ingredientHandler.NewIngredientHandler(c.IngredientService)
	c.RecipeHandler = recipeHandler.NewRecipeHandler(c.RecipeService, pageSize, maxPageSize)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService, pageSize, maxPageSize)
	c.CollectionHandler = collectionHandler.NewCollectionHandler(c.CollectionService)
}

// ========================================
// HELPER METHODS
// ========================================

func (c *Container) flushCatalogCache(ctx context.Context) {
	for _, pattern := range []string{"tags:*", "ingredients:*"} {
		if err := c.Cache.DeletePattern(ctx, pattern); err != nil {
			log.Printf("⚠️  Failed to flush %s: %v", pattern, err)
		}
	}
}

// Cleanup releases connections during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
