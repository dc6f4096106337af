package service

import (
	"strings"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"
)

// LeadTimeService 交期模板业务服务
type LeadTimeService struct {
	templateRepo repository.LeadTimeTemplateRepository
}

// NewLeadTimeService 创建交期模板服务
func NewLeadTimeService(templateRepo repository.LeadTimeTemplateRepository) *LeadTimeService {
	return &LeadTimeService{templateRepo: templateRepo}
}

// List 分页获取模板
func (s *LeadTimeService) List(filter repository.LeadTimeTemplateListFilter) ([]models.LeadTimeTemplate, int64, error) {
	return s.templateRepo.List(filter)
}

// ListAll 获取全部模板（供会话匹配使用）
func (s *LeadTimeService) ListAll() ([]models.LeadTimeTemplate, error) {
	return s.templateRepo.ListAll()
}

// Get 获取单个模板
func (s *LeadTimeService) Get(id uint) (*models.LeadTimeTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNotFound
	}
	return template, nil
}

// NormalizeEntries 规整条目：trim 区间、按固定映射回填数值边界并按权重排序。
// 同一区间出现多条时报错。
func NormalizeEntries(entries []models.LeadTimeEntry) ([]models.LeadTimeEntry, error) {
	normalized := make([]models.LeadTimeEntry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		entry.QuantityRange = strings.TrimSpace(entry.QuantityRange)
		if start, end, ok := RangeBounds(entry.QuantityRange); ok {
			entry.StartQty = start
			entry.EndQty = end
		}
		if _, dup := seen[entry.QuantityRange]; dup {
			return nil, ErrTemplateRangeDuplicate
		}
		seen[entry.QuantityRange] = struct{}{}
		normalized = append(normalized, entry)
	}
	return SortEntries(normalized), nil
}

// ValidateSave 保存前置校验，按顺序执行，首个失败即返回：
// 名称非空 → 存在条目 → 四个必填区间齐全 → 时长大于 0 且单位合法 →
// 名称查重与数据查重（两项命中情况互斥上报）。
func (s *LeadTimeService) ValidateSave(name string, entries []models.LeadTimeEntry, excludeID *uint) error {
	if strings.TrimSpace(name) == "" {
		return ErrTemplateNameRequired
	}
	if len(entries) == 0 {
		return ErrTemplateEntriesRequired
	}
	if missing := MissingRequiredRanges(entries); len(missing) > 0 {
		return NewMissingRangesError(missing)
	}
	for _, entry := range entries {
		if entry.LeadTime <= 0 {
			return ErrTemplateDurationInvalid
		}
		if entry.LeadTimeUnit != constants.LeadTimeUnitDays && entry.LeadTimeUnit != constants.LeadTimeUnitMonth {
			return ErrTemplateUnitInvalid
		}
	}

	templates, err := s.templateRepo.ListAll()
	if err != nil {
		return err
	}
	nameDup := HasDuplicateName(name, templates, excludeID)
	dataDup := HasDuplicateData(entries, templates, excludeID)
	switch {
	case nameDup && dataDup:
		return ErrTemplateNameDataExists
	case nameDup:
		return ErrTemplateNameExists
	case dataDup:
		return ErrTemplateDataExists
	}
	return nil
}

// Create 创建模板。前置校验全部通过后才落库。
func (s *LeadTimeService) Create(name string, entries []models.LeadTimeEntry) (*models.LeadTimeTemplate, error) {
	normalized, err := NormalizeEntries(entries)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateSave(name, normalized, nil); err != nil {
		return nil, err
	}

	template := &models.LeadTimeTemplate{
		Name:    strings.TrimSpace(name),
		Entries: normalized,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Update 更新模板，校验时排除自身。
func (s *LeadTimeService) Update(id uint, name string, entries []models.LeadTimeEntry) (*models.LeadTimeTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNotFound
	}

	normalized, err := NormalizeEntries(entries)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateSave(name, normalized, &id); err != nil {
		return nil, err
	}

	template.Name = strings.TrimSpace(name)
	template.Entries = normalized
	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}
	return s.templateRepo.GetByID(id)
}

// Delete 删除模板；仍被商品引用时拒绝。
func (s *LeadTimeService) Delete(id uint) error {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrNotFound
	}
	inUse, err := s.templateRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrTemplateInUse
	}
	return s.templateRepo.Delete(id)
}

// ReconcileSession 用全量模板库对当前条目做一次会话状态折叠。
func (s *LeadTimeService) ReconcileSession(entries []models.LeadTimeEntry, prev ReconciliationState) (ReconciliationState, string, error) {
	normalized, err := NormalizeEntries(entries)
	if err != nil {
		return prev, prev.Phase(entries), err
	}
	templates, err := s.templateRepo.ListAll()
	if err != nil {
		return prev, prev.Phase(normalized), err
	}
	next := Reconcile(normalized, templates, prev)
	return next, next.Phase(normalized), nil
}
