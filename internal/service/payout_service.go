package service

import (
	"time"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// PayoutService 结算单服务
// 按周期汇总已支付订单生成结算单，佣金比例取生成时刻的配置快照。
type PayoutService struct {
	payoutRepo     repository.PayoutRepository
	reportRepo     repository.ReportRepository
	settingService *SettingService
	defaultRate    decimal.Decimal
}

// NewPayoutService 创建结算单服务
func NewPayoutService(
	payoutRepo repository.PayoutRepository,
	reportRepo repository.ReportRepository,
	settingService *SettingService,
	defaultCommissionRatePercent string,
) *PayoutService {
	rate, err := decimal.NewFromString(defaultCommissionRatePercent)
	if err != nil || rate.IsNegative() {
		rate = decimal.NewFromInt(10)
	}
	return &PayoutService{
		payoutRepo:     payoutRepo,
		reportRepo:     reportRepo,
		settingService: settingService,
		defaultRate:    rate,
	}
}

// List 结算单列表
func (s *PayoutService) List(filter repository.PayoutListFilter) ([]models.PayoutStatement, int64, error) {
	return s.payoutRepo.List(filter)
}

// Get 结算单详情
func (s *PayoutService) Get(id uint) (*models.PayoutStatement, error) {
	statement, err := s.payoutRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if statement == nil {
		return nil, ErrNotFound
	}
	return statement, nil
}

// Generate 生成指定周期的结算单
// 周期内已支付订单毛额乘以佣金比例得出佣金，净额 = 毛额 - 佣金。
func (s *PayoutService) Generate(periodStart, periodEnd time.Time) (*models.PayoutStatement, error) {
	if periodStart.IsZero() || periodEnd.IsZero() || !periodStart.Before(periodEnd) {
		return nil, ErrPayoutPeriodInvalid
	}

	existing, err := s.payoutRepo.GetByPeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPayoutExists
	}

	aggregate, err := s.reportRepo.GetPaidOrderAggregate(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	rate, err := s.settingService.GetCommissionRatePercent(s.defaultRate)
	if err != nil {
		rate = s.defaultRate
	}

	gross := decimal.NewFromFloat(aggregate.GrossAmount)
	commission := gross.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	net := gross.Sub(commission)

	statement := &models.PayoutStatement{
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		Currency:         aggregate.Currency,
		OrderCount:       aggregate.OrderCount,
		GrossAmount:      models.NewMoneyFromDecimal(gross),
		CommissionRate:   models.NewMoneyFromDecimal(rate),
		CommissionAmount: models.NewMoneyFromDecimal(commission),
		NetAmount:        models.NewMoneyFromDecimal(net),
		Status:           constants.PayoutStatusPending,
	}
	if err := s.payoutRepo.Create(statement); err != nil {
		return nil, err
	}
	return statement, nil
}

// MarkSettled 标记结算单为已结算
func (s *PayoutService) MarkSettled(id uint) (*models.PayoutStatement, error) {
	statement, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if statement.Status == constants.PayoutStatusSettled {
		return nil, ErrPayoutSettled
	}

	now := time.Now()
	statement.Status = constants.PayoutStatusSettled
	statement.SettledAt = &now
	if err := s.payoutRepo.Update(statement); err != nil {
		return nil, err
	}
	return statement, nil
}

// Delete 删除结算单（已结算的不可删除）
func (s *PayoutService) Delete(id uint) error {
	statement, err := s.Get(id)
	if err != nil {
		return err
	}
	if statement.Status == constants.PayoutStatusSettled {
		return ErrPayoutSettled
	}
	return s.payoutRepo.Delete(id)
}
