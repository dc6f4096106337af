package provider

import (
	"github.com/sellerdesk/internal/authz"
	"github.com/sellerdesk/internal/cache"
	"github.com/sellerdesk/internal/config"
	"github.com/sellerdesk/internal/logger"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/queue"
	"github.com/sellerdesk/internal/repository"
	"github.com/sellerdesk/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	CategoryRepo         repository.CategoryRepository
	ProductRepo          repository.ProductRepository
	ProductOptionRepo    repository.ProductOptionRepository
	ProductVariantRepo   repository.ProductVariantRepository
	LeadTimeTemplateRepo repository.LeadTimeTemplateRepository
	OrderRepo            repository.OrderRepository
	ReportRepo           repository.ReportRepository
	PayoutRepo           repository.PayoutRepository
	SettingRepo          repository.SettingRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
	UploadService   *service.UploadService
	SettingService  *service.SettingService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	LeadTimeService *service.LeadTimeService
	OrderService    *service.OrderService
	ReportService   *service.ReportService
	PayoutService   *service.PayoutService
	ExportService   *service.ExportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductOptionRepo = repository.NewProductOptionRepository(db)
	c.ProductVariantRepo = repository.NewProductVariantRepository(db)
	c.LeadTimeTemplateRepo = repository.NewLeadTimeTemplateRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.PayoutRepo = repository.NewPayoutRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(
		c.ProductRepo,
		c.ProductOptionRepo,
		c.ProductVariantRepo,
		c.CategoryRepo,
		c.Config.Variant.MaxCombinations,
	)
	c.LeadTimeService = service.NewLeadTimeService(c.LeadTimeTemplateRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.ReportService = service.NewReportService(
		c.ReportRepo,
		c.ProductVariantRepo,
		c.SettingService,
		c.Config.Report.CacheTTLSeconds,
	)
	c.PayoutService = service.NewPayoutService(
		c.PayoutRepo,
		c.ReportRepo,
		c.SettingService,
		c.Config.Payout.DefaultCommissionRatePercent,
	)
	c.ExportService = service.NewExportService(c.ReportService, c.Config.Report.ExportDir)
}
