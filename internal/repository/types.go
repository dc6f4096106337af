package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	OnlyActive   bool
	WithCategory bool
	WithVariants bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	BuyerEmail  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PayoutListFilter 查询结算单列表的过滤条件
type PayoutListFilter struct {
	Page       int
	PageSize   int
	Status     string
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

// LeadTimeTemplateListFilter 查询交期模板列表的过滤条件
type LeadTimeTemplateListFilter struct {
	Page     int
	PageSize int
	Search   string
}
