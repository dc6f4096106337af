package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sellerdesk/internal/authz"
	"github.com/sellerdesk/internal/cache"
	"github.com/sellerdesk/internal/config"
	adminhandlers "github.com/sellerdesk/internal/http/handlers/admin"
	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/logger"
	"github.com/sellerdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sd"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)
			admin.GET("/captcha", adminHandler.GetLoginCaptcha)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 账号
				authorized.GET("/profile", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 商品与 SKU 组合管理
				authorized.GET("/products", adminHandler.GetProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.POST("/products/variant-preview", adminHandler.PreviewVariantCombinations)
				authorized.POST("/products/variant-session/step", adminHandler.StepVariantSession)
				authorized.GET("/products/:id/variant-space", adminHandler.GetVariantSpace)
				authorized.PUT("/products/:id/variant-space", adminHandler.SaveVariantSpace)
				authorized.PATCH("/products/:id/variants/:variant_id/stock", adminHandler.UpdateVariantStock)

				// 交期模板管理
				authorized.GET("/lead-time-templates", adminHandler.GetLeadTimeTemplates)
				authorized.GET("/lead-time-templates/:id", adminHandler.GetLeadTimeTemplate)
				authorized.POST("/lead-time-templates", adminHandler.CreateLeadTimeTemplate)
				authorized.PUT("/lead-time-templates/:id", adminHandler.UpdateLeadTimeTemplate)
				authorized.DELETE("/lead-time-templates/:id", adminHandler.DeleteLeadTimeTemplate)
				authorized.POST("/lead-time-templates/reconcile", adminHandler.ReconcileLeadTimeSession)
				authorized.POST("/lead-time-templates/apply", adminHandler.ApplyLeadTimeTemplate)
				authorized.POST("/lead-time-templates/confirm", adminHandler.ConfirmLeadTimeTemplate)

				// 订单查询
				authorized.GET("/orders", adminHandler.GetOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)

				// 报表
				authorized.GET("/reports/overview", adminHandler.GetReportOverview)
				authorized.GET("/reports/trends", adminHandler.GetReportTrends)
				authorized.GET("/reports/top-products", adminHandler.GetReportTopProducts)
				authorized.POST("/reports/export", adminHandler.ExportReport)

				// 结算单
				authorized.GET("/payouts", adminHandler.GetPayouts)
				authorized.GET("/payouts/:id", adminHandler.GetPayout)
				authorized.POST("/payouts", adminHandler.GeneratePayout)
				authorized.POST("/payouts/:id/settle", adminHandler.SettlePayout)
				authorized.DELETE("/payouts/:id", adminHandler.DeletePayout)

				// 设置管理
				authorized.GET("/settings/:key", adminHandler.GetSetting)
				authorized.PUT("/settings/:key", adminHandler.UpdateSetting)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.GetAuthzRoles)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantAuthzRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeAuthzRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)
				authorized.POST("/upload/batch", adminHandler.UploadBatch)

				// 运维任务
				authorized.POST("/maintenance/media-cleanup", adminHandler.EnqueueMediaCleanup)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/captcha" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
