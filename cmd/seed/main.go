package main

import (
	"fmt"
	"time"

	"github.com/sellerdesk/internal/config"
	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/logger"
	"github.com/sellerdesk/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "furniture", Name: "定制家具"},
		{Slug: "lighting", Name: "灯具"},
		{Slug: "textile", Name: "布艺软装"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	var furniture models.Category
	if err := models.DB.Where("slug = ?", "furniture").First(&furniture).Error; err != nil {
		stdLog.Fatalf("Failed to load furniture category: %v", err)
	}

	// 交期模板
	templates := []models.LeadTimeTemplate{
		{
			Name: "标准交期",
			Entries: []models.LeadTimeEntry{
				{QuantityRange: constants.QuantityRange0To1, StartQty: 0, EndQty: 1, LeadTime: 7, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange2To5, StartQty: 2, EndQty: 5, LeadTime: 12, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange6To9, StartQty: 6, EndQty: 9, LeadTime: 20, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange10Up, StartQty: 10, EndQty: 0, LeadTime: 1, LeadTimeUnit: constants.LeadTimeUnitMonth},
			},
		},
		{
			Name: "加急交期",
			Entries: []models.LeadTimeEntry{
				{QuantityRange: constants.QuantityRange0To1, StartQty: 0, EndQty: 1, LeadTime: 3, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange2To5, StartQty: 2, EndQty: 5, LeadTime: 5, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange6To9, StartQty: 6, EndQty: 9, LeadTime: 9, LeadTimeUnit: constants.LeadTimeUnitDays},
				{QuantityRange: constants.QuantityRange10Up, StartQty: 10, EndQty: 0, LeadTime: 15, LeadTimeUnit: constants.LeadTimeUnitDays},
			},
		},
	}
	for _, tpl := range templates {
		var existing models.LeadTimeTemplate
		if err := models.DB.Where("name = ?", tpl.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tpl).Error; err != nil {
				stdLog.Printf("Failed to create lead time template %s: %v", tpl.Name, err)
			} else {
				stdLog.Printf("Created lead time template: %s", tpl.Name)
			}
		} else {
			stdLog.Printf("Lead time template already exists: %s", tpl.Name)
		}
	}

	var standardTpl models.LeadTimeTemplate
	if err := models.DB.Where("name = ?", "标准交期").First(&standardTpl).Error; err != nil {
		stdLog.Fatalf("Failed to load lead time template: %v", err)
	}

	// 演示商品：双属性的定制餐桌
	product := models.Product{
		CategoryID:         furniture.ID,
		Slug:               "custom-dining-table",
		Title:              "定制实木餐桌",
		Description:        "可选材质与尺寸的定制餐桌，按组合报价",
		BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromFloat(399.00)),
		Currency:           "USD",
		Images:             models.StringArray([]string{"/uploads/demo/dining-table.jpg"}),
		Tags:               models.StringArray([]string{"furniture", "custom"}),
		LeadTimeTemplateID: &standardTpl.ID,
		IsActive:           true,
	}
	var existingProduct models.Product
	if err := models.DB.Where("slug = ?", product.Slug).First(&existingProduct).Error; err != nil {
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Fatalf("Failed to create demo product: %v", err)
		}
		stdLog.Printf("Created product: %s", product.Slug)

		options := []models.ProductOption{
			{ProductID: product.ID, Name: "材质", Values: models.StringArray([]string{"橡木", "胡桃木"}), Position: 0},
			{ProductID: product.ID, Name: "尺寸", Values: models.StringArray([]string{"1.2m", "1.6m", "2.0m"}), Position: 1},
		}
		if err := models.DB.Create(&options).Error; err != nil {
			stdLog.Fatalf("Failed to create product options: %v", err)
		}

		variants := []models.ProductVariant{}
		code := 0
		for _, material := range []string{"橡木", "胡桃木"} {
			for i, size := range []string{"1.2m", "1.6m", "2.0m"} {
				code++
				variants = append(variants, models.ProductVariant{
					ProductID:   product.ID,
					VariantCode: fmt.Sprintf("D%03d", code),
					Attributes: models.JSON(map[string]interface{}{
						"材质": material,
						"尺寸": size,
					}),
					ExtraCharge: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i * 80))),
					Stock:       10 + i*5,
					IsActive:    true,
					SortOrder:   code - 1,
				})
			}
		}
		if err := models.DB.Create(&variants).Error; err != nil {
			stdLog.Fatalf("Failed to create product variants: %v", err)
		}
		stdLog.Printf("Created %d variants for %s", len(variants), product.Slug)
	} else {
		product = existingProduct
		stdLog.Printf("Product already exists: %s", product.Slug)
	}

	// 示例订单（报表数据）
	var orderCount int64
	models.DB.Model(&models.Order{}).Count(&orderCount)
	if orderCount == 0 {
		var variant models.ProductVariant
		if err := models.DB.Where("product_id = ?", product.ID).Order("sort_order asc").First(&variant).Error; err != nil {
			stdLog.Fatalf("Failed to load demo variant: %v", err)
		}
		now := time.Now()
		seedOrders := []struct {
			no       string
			status   string
			quantity int
			daysAgo  int
		}{
			{no: "SD202608200001", status: constants.OrderStatusCompleted, quantity: 2, daysAgo: 9},
			{no: "SD202608230001", status: constants.OrderStatusPaid, quantity: 1, daysAgo: 6},
			{no: "SD202608250001", status: constants.OrderStatusPaid, quantity: 4, daysAgo: 4},
			{no: "SD202608270001", status: constants.OrderStatusPendingPayment, quantity: 1, daysAgo: 2},
			{no: "SD202608280001", status: constants.OrderStatusCanceled, quantity: 3, daysAgo: 1},
		}
		for _, seed := range seedOrders {
			unitPrice := product.BasePrice.Decimal.Add(variant.ExtraCharge.Decimal)
			total := unitPrice.Mul(decimal.NewFromInt(int64(seed.quantity)))
			createdAt := now.AddDate(0, 0, -seed.daysAgo)
			order := models.Order{
				OrderNo:     seed.no,
				BuyerEmail:  "buyer@example.com",
				Status:      seed.status,
				Currency:    product.Currency,
				TotalAmount: models.NewMoneyFromDecimal(total),
				CreatedAt:   createdAt,
				Items: []models.OrderItem{
					{
						ProductID:   product.ID,
						VariantID:   &variant.ID,
						Title:       product.Title,
						VariantCode: variant.VariantCode,
						Attributes:  variant.Attributes,
						UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
						Quantity:    seed.quantity,
						TotalPrice:  models.NewMoneyFromDecimal(total),
					},
				},
			}
			if seed.status == constants.OrderStatusPaid || seed.status == constants.OrderStatusCompleted {
				paidAt := createdAt.Add(30 * time.Minute)
				order.PaidAt = &paidAt
			}
			if seed.status == constants.OrderStatusCanceled {
				canceledAt := createdAt.Add(2 * time.Hour)
				order.CanceledAt = &canceledAt
			}
			if err := models.DB.Create(&order).Error; err != nil {
				stdLog.Printf("Failed to create order %s: %v", seed.no, err)
			} else {
				stdLog.Printf("Created order: %s", seed.no)
			}
		}
	} else {
		stdLog.Printf("Orders already exist, skip order seeding")
	}

	stdLog.Printf("Seed finished")
}
