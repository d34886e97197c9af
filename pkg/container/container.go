package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	infraCache "shop-backend/internal/infrastructure/cache"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/infrastructure/email"
	"shop-backend/internal/infrastructure/metrics"
	"shop-backend/internal/infrastructure/pdf"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/pkg/cache"
	"shop-backend/pkg/jwt"

	articleHandler "shop-backend/internal/domains/article/handler"
	articleRepo "shop-backend/internal/domains/article/repository"
	articleService "shop-backend/internal/domains/article/service"
	authHandler "shop-backend/internal/domains/auth/handler"
	authService "shop-backend/internal/domains/auth/service"
	cartHandler "shop-backend/internal/domains/cart/handler"
	cartRepo "shop-backend/internal/domains/cart/repository"
	cartService "shop-backend/internal/domains/cart/service"
	countryHandler "shop-backend/internal/domains/country/handler"
	countryRepo "shop-backend/internal/domains/country/repository"
	countryService "shop-backend/internal/domains/country/service"
	imageHandler "shop-backend/internal/domains/image/handler"
	imageRepo "shop-backend/internal/domains/image/repository"
	imageService "shop-backend/internal/domains/image/service"
	orderHandler "shop-backend/internal/domains/order/handler"
	orderRepo "shop-backend/internal/domains/order/repository"
	orderService "shop-backend/internal/domains/order/service"
	pdfHandler "shop-backend/internal/domains/pdf/handler"
	pdfRepo "shop-backend/internal/domains/pdf/repository"
	pdfService "shop-backend/internal/domains/pdf/service"
	promptHandler "shop-backend/internal/domains/prompt/handler"
	promptRepo "shop-backend/internal/domains/prompt/repository"
	promptService "shop-backend/internal/domains/prompt/service"
	supplierHandler "shop-backend/internal/domains/supplier/handler"
	supplierRepo "shop-backend/internal/domains/supplier/repository"
	supplierService "shop-backend/internal/domains/supplier/service"
	userHandler "shop-backend/internal/domains/user/handler"
	userRepo "shop-backend/internal/domains/user/repository"
	userService "shop-backend/internal/domains/user/service"
	vatHandler "shop-backend/internal/domains/vat/handler"
	vatRepo "shop-backend/internal/domains/vat/repository"
	vatService "shop-backend/internal/domains/vat/service"
)

// Container is the root of the dependency graph shared by the API and the
// worker binaries. Build order is config, infrastructure, repositories,
// services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    storage.ObjectStorage
	Queue      *queue.Client
	Metrics    *metrics.Metrics
	Mailer     email.EmailService
	JWTManager *jwt.Manager

	UserRepo               userRepo.RepositoryInterface
	CountryRepo            countryRepo.RepositoryInterface
	VatRepo                vatRepo.RepositoryInterface
	SupplierRepo           supplierRepo.RepositoryInterface
	ArticleRepo            articleRepo.RepositoryInterface
	ArticleCategoryRepo    articleRepo.CategoryRepository
	ArticleSubcategoryRepo articleRepo.SubcategoryRepository
	MugVariantRepo         articleRepo.VariantRepository
	PromptRepo             promptRepo.PromptRepository
	PromptCategoryRepo     promptRepo.CategoryRepository
	PromptSubcategoryRepo  promptRepo.SubcategoryRepository
	SlotTypeRepo           promptRepo.SlotTypeRepository
	SlotVariantRepo        promptRepo.SlotVariantRepository
	CartRepo               cartRepo.RepositoryInterface
	OrderRepo              orderRepo.RepositoryInterface
	ImageRepo              imageRepo.RepositoryInterface
	PdfRepo                pdfRepo.RepositoryInterface

	UserService            userService.ServiceInterface
	AuthService            authService.ServiceInterface
	CountryService         countryService.ServiceInterface
	VatService             vatService.ServiceInterface
	SupplierService        supplierService.ServiceInterface
	ArticleService         articleService.ServiceInterface
	ArticleCategoryService articleService.CategoryService
	MugVariantService      articleService.VariantService
	PromptService          promptService.PromptService
	PromptCategoryService  promptService.CategoryService
	PromptSlotService      promptService.SlotService
	CartService            cartService.ServiceInterface
	OrderService           orderService.ServiceInterface
	ImageService           imageService.ServiceInterface
	PdfService             pdfService.ServiceInterface

	UserHandler            *userHandler.UserHandler
	AuthHandler            *authHandler.AuthHandler
	CountryHandler         *countryHandler.CountryHandler
	VatHandler             *vatHandler.VatHandler
	SupplierHandler        *supplierHandler.SupplierHandler
	ArticleHandler         *articleHandler.ArticleHandler
	ArticleCategoryHandler *articleHandler.CategoryHandler
	MugVariantHandler      *articleHandler.VariantHandler
	PromptHandler          *promptHandler.PromptHandler
	CartHandler            *cartHandler.CartHandler
	OrderHandler           *orderHandler.OrderHandler
	ImageHandler           *imageHandler.ImageHandler
	PdfHandler             *pdfHandler.PdfHandler
}

// NewContainer loads the configuration and builds every layer.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Msg("config loaded")

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Metrics, err = metrics.New()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Redis is optional: the API keeps serving from an in-process cache.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
		_ = redisCache.Close()
		c.Cache = infraCache.NewMemoryCache(10*time.Minute, 5*time.Minute)
		c.Metrics.CacheFallback.Set(1)
	} else {
		c.Cache = redisCache
	}

	objects, err := storage.NewMinIOStorage(ctx, cfg.MinIO, cfg.Storage.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = objects

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.Mailer = email.NewSMTPEmailService(cfg.SMTP)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.CountryRepo = countryRepo.NewPostgresRepository(pool, c.Cache)
	c.VatRepo = vatRepo.NewPostgresRepository(pool, c.Cache)
	c.SupplierRepo = supplierRepo.NewPostgresRepository(pool, c.Cache)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool, c.Cache)
	c.ArticleCategoryRepo = articleRepo.NewCategoryRepository(pool, c.Cache)
	c.ArticleSubcategoryRepo = articleRepo.NewSubcategoryRepository(pool, c.Cache)
	c.MugVariantRepo = articleRepo.NewVariantRepository(pool)
	c.PromptRepo = promptRepo.NewPromptRepository(pool)
	c.PromptCategoryRepo = promptRepo.NewCategoryRepository(pool, c.Cache)
	c.PromptSubcategoryRepo = promptRepo.NewSubcategoryRepository(pool, c.Cache)
	c.SlotTypeRepo = promptRepo.NewSlotTypeRepository(pool)
	c.SlotVariantRepo = promptRepo.NewSlotVariantRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
	c.ImageRepo = imageRepo.NewPostgresRepository(pool, c.Cache)
	c.PdfRepo = pdfRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.UserService = userService.NewUserService(c.UserRepo)
	c.AuthService = authService.NewAuthService(c.UserRepo, c.UserService, c.JWTManager)
	c.CountryService = countryService.NewCountryService(c.CountryRepo)
	c.VatService = vatService.NewVatService(c.VatRepo)
	c.SupplierService = supplierService.NewSupplierService(c.SupplierRepo, c.CountryRepo)
	c.ArticleService = articleService.NewArticleService(
		c.ArticleRepo,
		c.SupplierRepo,
		c.VatRepo,
		c.ArticleCategoryRepo,
		c.ArticleSubcategoryRepo,
	)
	c.ArticleCategoryService = articleService.NewCategoryService(c.ArticleCategoryRepo, c.ArticleSubcategoryRepo)
	c.MugVariantService = articleService.NewVariantService(c.MugVariantRepo, c.ArticleRepo)
	c.PromptService = promptService.NewPromptService(
		c.PromptRepo,
		c.PromptCategoryRepo,
		c.PromptSubcategoryRepo,
		c.SlotVariantRepo,
		c.Storage,
		cfg.Storage.PublicBaseURL,
	)
	c.PromptCategoryService = promptService.NewCategoryService(c.PromptCategoryRepo, c.PromptSubcategoryRepo)
	c.PromptSlotService = promptService.NewSlotService(c.SlotTypeRepo, c.SlotVariantRepo, c.Storage, cfg.Storage.PublicBaseURL)

	c.ImageService = imageService.NewImageService(
		c.ImageRepo,
		c.Storage,
		storage.NewImageProcessor(cfg.Storage.MaxImageBytes, cfg.Storage.ThumbnailSize),
		c.Queue,
		c.Metrics.ImagesUploaded,
	)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ArticleRepo, c.MugVariantRepo, c.PromptRepo, c.ImageRepo, cfg.Shop.CartTTL)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.ArticleRepo,
		c.VatRepo,
		c.Queue,
		c.Metrics.OrdersCreated,
		cfg.Shop.ShippingAmount,
	)
	c.PdfService = pdfService.NewPdfService(
		c.PdfRepo,
		c.OrderRepo,
		c.ArticleRepo,
		c.ImageService,
		c.Storage,
		pdf.NewRenderer(cfg.Shop.CompanyName, cfg.Shop.Currency),
		c.Metrics.PdfsGenerated,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.CountryHandler = countryHandler.NewCountryHandler(c.CountryService)
	c.VatHandler = vatHandler.NewVatHandler(c.VatService)
	c.SupplierHandler = supplierHandler.NewSupplierHandler(c.SupplierService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.ArticleCategoryHandler = articleHandler.NewCategoryHandler(c.ArticleCategoryService)
	c.MugVariantHandler = articleHandler.NewVariantHandler(c.MugVariantService)
	c.PromptHandler = promptHandler.NewPromptHandler(c.PromptService, c.PromptCategoryService, c.PromptSlotService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService, c.Config.Storage.MaxImageBytes)
	c.PdfHandler = pdfHandler.NewPdfHandler(c.PdfService)
}

// Cleanup releases every connection the container opened. Safe to call on
// a partially built container.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue client")
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleanup completed")
}
