package service

import (
	"sort"
	"strings"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
)

// 数量区间固定排序权重，未知区间排在末尾
var quantityRangeRank = map[string]int{
	constants.QuantityRange0To1: 1,
	constants.QuantityRange2To5: 2,
	constants.QuantityRange6To9: 3,
	constants.QuantityRange10Up: 4,
}

const quantityRangeRankOther = 999

// quantityRangeBounds 区间字符串与数值边界的固定映射
var quantityRangeBounds = map[string][2]int{
	constants.QuantityRange0To1: {0, 1},
	constants.QuantityRange2To5: {2, 5},
	constants.QuantityRange6To9: {6, 9},
	constants.QuantityRange10Up: {10, 10},
}

// RequiredQuantityRanges 模板保存必须覆盖的四个固定区间，按排序权重返回。
func RequiredQuantityRanges() []string {
	return []string{
		constants.QuantityRange0To1,
		constants.QuantityRange2To5,
		constants.QuantityRange6To9,
		constants.QuantityRange10Up,
	}
}

// QuantityRangeRank 返回区间的排序权重
func QuantityRangeRank(quantityRange string) int {
	if rank, ok := quantityRangeRank[quantityRange]; ok {
		return rank
	}
	return quantityRangeRankOther
}

// RangeBounds 区间字符串转数值边界，未知区间返回 ok=false。
func RangeBounds(quantityRange string) (start, end int, ok bool) {
	bounds, ok := quantityRangeBounds[quantityRange]
	if !ok {
		return 0, 0, false
	}
	return bounds[0], bounds[1], true
}

// RangeForBounds 数值边界转区间字符串，未命中固定档位时返回 other。
func RangeForBounds(start, end int) string {
	for quantityRange, bounds := range quantityRangeBounds {
		if bounds[0] == start && bounds[1] == end {
			return quantityRange
		}
	}
	return constants.QuantityRangeOther
}

// SortEntries 按固定区间权重排序，返回新切片，不修改入参。
func SortEntries(entries []models.LeadTimeEntry) []models.LeadTimeEntry {
	sorted := make([]models.LeadTimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return QuantityRangeRank(sorted[i].QuantityRange) < QuantityRangeRank(sorted[j].QuantityRange)
	})
	return sorted
}

// EntriesEqual 规范化比较两个交期条目集合。
// 双方按区间权重排序后逐位比较全部字段：对条目插入顺序不敏感，
// 对区间、时长、单位、数值边界任一差异敏感。
func EntriesEqual(a, b []models.LeadTimeEntry) bool {
	if len(a) != len(b) {
		return false
	}
	sortedA := SortEntries(a)
	sortedB := SortEntries(b)
	for i := range sortedA {
		x, y := sortedA[i], sortedB[i]
		if x.QuantityRange != y.QuantityRange ||
			x.LeadTime != y.LeadTime ||
			x.LeadTimeUnit != y.LeadTimeUnit ||
			x.StartQty != y.StartQty ||
			x.EndQty != y.EndQty {
			return false
		}
	}
	return true
}

// templateNameEqual 模板名称比较：trim 后大小写不敏感
func templateNameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindMatchByData 返回库中第一个数据完全一致的模板，名称不参与比较。
// 用于用户手工复刻出某模板数据时静默激活该模板。
func FindMatchByData(entries []models.LeadTimeEntry, templates []models.LeadTimeTemplate) *models.LeadTimeTemplate {
	if len(entries) == 0 {
		return nil
	}
	for i := range templates {
		if EntriesEqual(entries, templates[i].Entries) {
			return &templates[i]
		}
	}
	return nil
}

// FindMatchByNameAndData 名称与数据同时一致才算命中。
// 用于判断此前应用过的模板是否继续展示"已应用"标识。
func FindMatchByNameAndData(entries []models.LeadTimeEntry, name string, templates []models.LeadTimeTemplate) *models.LeadTimeTemplate {
	if len(entries) == 0 || strings.TrimSpace(name) == "" {
		return nil
	}
	for i := range templates {
		if templateNameEqual(name, templates[i].Name) && EntriesEqual(entries, templates[i].Entries) {
			return &templates[i]
		}
	}
	return nil
}

// HasDuplicateName 名称维度查重
func HasDuplicateName(name string, templates []models.LeadTimeTemplate, excludeID *uint) bool {
	for i := range templates {
		if excludeID != nil && templates[i].ID == *excludeID {
			continue
		}
		if templateNameEqual(name, templates[i].Name) {
			return true
		}
	}
	return false
}

// HasDuplicateData 数据维度查重
func HasDuplicateData(entries []models.LeadTimeEntry, templates []models.LeadTimeTemplate, excludeID *uint) bool {
	for i := range templates {
		if excludeID != nil && templates[i].ID == *excludeID {
			continue
		}
		if EntriesEqual(entries, templates[i].Entries) {
			return true
		}
	}
	return false
}

// MissingRequiredRanges 返回缺失的必填区间，按固定顺序。
func MissingRequiredRanges(entries []models.LeadTimeEntry) []string {
	present := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		present[entry.QuantityRange] = struct{}{}
	}
	missing := make([]string, 0, 4)
	for _, required := range RequiredQuantityRanges() {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}

// 交期编辑会话阶段
const (
	LeadTimePhaseEmpty          = "empty"           // 无条目
	LeadTimePhaseEditing        = "editing"         // 有条目，未命中模板
	LeadTimePhaseTemplateActive = "template_active" // 条目与某模板完全一致
	LeadTimePhaseDirty          = "dirty"           // 曾命中模板，此后数据发生偏离
)

// LeadTimeSnapshot 最近一次成功保存的 (名称, 条目) 快照
type LeadTimeSnapshot struct {
	Name    string                 `json:"name"`
	Entries []models.LeadTimeEntry `json:"entries"`
}

// ReconciliationState 交期编辑会话状态
type ReconciliationState struct {
	ActiveTemplateID      *uint             `json:"active_template_id"`      // 当前数据命中的模板
	ConfirmedTemplateName string            `json:"confirmed_template_name"` // "已应用"标识展示的名称
	PendingTemplateID     *uint             `json:"pending_template_id"`     // 已载入未确认的模板
	LastMatchedTemplateID *uint             `json:"last_matched_template_id"`
	Snapshot              *LeadTimeSnapshot `json:"snapshot"`
}

// Phase 推导当前会话阶段
func (s ReconciliationState) Phase(entries []models.LeadTimeEntry) string {
	if len(entries) == 0 {
		return LeadTimePhaseEmpty
	}
	if s.ActiveTemplateID != nil {
		return LeadTimePhaseTemplateActive
	}
	if s.LastMatchedTemplateID != nil {
		return LeadTimePhaseDirty
	}
	return LeadTimePhaseEditing
}

// Reconcile 交期会话的唯一状态转移函数。
// 每次条目变化后调用：用当前条目对全量模板库做数据匹配，
// 命中则激活对应模板，未命中则清除激活指针；
// "已应用"标识仅当名称与数据仍同时一致时保留。
func Reconcile(entries []models.LeadTimeEntry, templates []models.LeadTimeTemplate, prev ReconciliationState) ReconciliationState {
	next := prev

	if len(entries) == 0 {
		next.ActiveTemplateID = nil
		next.ConfirmedTemplateName = ""
		next.PendingTemplateID = nil
		next.LastMatchedTemplateID = nil
		return next
	}

	match := FindMatchByData(entries, templates)
	if match != nil {
		id := match.ID
		next.ActiveTemplateID = &id
		next.LastMatchedTemplateID = &id
	} else {
		if prev.ActiveTemplateID != nil {
			id := *prev.ActiveTemplateID
			next.LastMatchedTemplateID = &id
		}
		next.ActiveTemplateID = nil
	}

	if next.ConfirmedTemplateName != "" {
		if FindMatchByNameAndData(entries, next.ConfirmedTemplateName, templates) == nil {
			next.ConfirmedTemplateName = ""
		}
	}

	return next
}

// ApplyTemplate 将模板载入会话。
// 载入非激活模板时进入"已载入未确认"中间态，需要显式确认；
// 对当前已激活的模板再次编辑则跳过确认直接展示标识。
func ApplyTemplate(state ReconciliationState, template models.LeadTimeTemplate) ReconciliationState {
	next := state
	id := template.ID
	if state.ActiveTemplateID != nil && *state.ActiveTemplateID == id {
		next.ConfirmedTemplateName = template.Name
		next.PendingTemplateID = nil
		return next
	}
	next.PendingTemplateID = &id
	return next
}

// ConfirmTemplate 确认已载入的模板，展示"已应用"标识。
func ConfirmTemplate(state ReconciliationState, templates []models.LeadTimeTemplate) ReconciliationState {
	next := state
	if state.PendingTemplateID == nil {
		return next
	}
	for i := range templates {
		if templates[i].ID == *state.PendingTemplateID {
			id := templates[i].ID
			next.ActiveTemplateID = &id
			next.LastMatchedTemplateID = &id
			next.ConfirmedTemplateName = templates[i].Name
			break
		}
	}
	next.PendingTemplateID = nil
	return next
}

// HasDataChanged 判断当前 (名称, 条目) 是否偏离最近保存的快照。
// 无快照视为已变化；结构化相等比较，可随编辑往返翻转。
func HasDataChanged(name string, entries []models.LeadTimeEntry, snapshot *LeadTimeSnapshot) bool {
	if snapshot == nil {
		return true
	}
	if !templateNameEqual(name, snapshot.Name) {
		return true
	}
	return !EntriesEqual(entries, snapshot.Entries)
}
