package service

import (
	"strconv"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold 低库存告警阈值默认值
const DefaultLowStockThreshold = 5

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetCommissionRatePercent 获取平台佣金比例（百分数），未配置返回默认值。
func (s *SettingService) GetCommissionRatePercent(defaultValue decimal.Decimal) (decimal.Decimal, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyCommissionRate)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value["value"]
	if !ok {
		return defaultValue, nil
	}
	rate, ok := settingDecimal(raw)
	if !ok || rate.IsNegative() {
		return defaultValue, nil
	}
	return rate, nil
}

// GetLowStockThreshold 获取低库存告警阈值，未配置返回默认值。
func (s *SettingService) GetLowStockThreshold() (int, error) {
	if s == nil {
		return DefaultLowStockThreshold, nil
	}
	value, err := s.GetByKey(constants.SettingKeyLowStockThreshold)
	if err != nil {
		return DefaultLowStockThreshold, err
	}
	if value == nil {
		return DefaultLowStockThreshold, nil
	}
	raw, ok := value["value"]
	if !ok {
		return DefaultLowStockThreshold, nil
	}
	threshold, ok := settingInt(raw)
	if !ok || threshold < 0 {
		return DefaultLowStockThreshold, nil
	}
	return threshold, nil
}

func settingDecimal(raw interface{}) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return parsed, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Zero, false
	}
}

func settingInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
