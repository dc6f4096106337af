package service

import (
	"fmt"
	"strings"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"
)

// combinationKeySeparator 组合 key 的连接符，同时用于变体标题展示
const combinationKeySeparator = " x "

// OptionDefinition 属性定义：名称 + 有序取值列表
type OptionDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// VariantCombination 笛卡尔积展开出的单个组合
type VariantCombination struct {
	Parts []string `json:"parts"` // 按属性定义顺序，每个属性取一个值
	Key   string   `json:"key"`   // parts 的规范连接串，作为组合身份
}

// ActiveDefinitions 过滤掉取值为空的属性定义，保持原始顺序。
func ActiveDefinitions(definitions []OptionDefinition) []OptionDefinition {
	active := make([]OptionDefinition, 0, len(definitions))
	for _, def := range definitions {
		if strings.TrimSpace(def.Name) == "" {
			continue
		}
		values := make([]string, 0, len(def.Values))
		for _, v := range def.Values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			continue
		}
		active = append(active, OptionDefinition{Name: def.Name, Values: values})
	}
	return active
}

// CountCombinations 计算组合总数，超过 limit 时提前返回 limit+1 避免溢出。
// limit <= 0 表示不设上限。
func CountCombinations(definitions []OptionDefinition, limit int) int {
	active := ActiveDefinitions(definitions)
	if len(active) == 0 {
		return 0
	}
	count := 1
	for _, def := range active {
		count *= len(def.Values)
		if limit > 0 && count > limit {
			return limit + 1
		}
	}
	return count
}

// GenerateCombinations 按属性定义展开全部组合。
// 深度优先遍历：属性按添加顺序、取值按录入顺序，输入相同则输出顺序相同。
// 空定义集合返回空序列，不报错。
func GenerateCombinations(definitions []OptionDefinition) []VariantCombination {
	active := ActiveDefinitions(definitions)
	if len(active) == 0 {
		return []VariantCombination{}
	}

	total := 1
	for _, def := range active {
		total *= len(def.Values)
	}

	combinations := make([]VariantCombination, 0, total)
	parts := make([]string, 0, len(active))

	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(active) {
			snapshot := make([]string, len(parts))
			copy(snapshot, parts)
			combinations = append(combinations, VariantCombination{
				Parts: snapshot,
				Key:   strings.Join(snapshot, combinationKeySeparator),
			})
			return
		}
		for _, value := range active[depth].Values {
			parts = append(parts, value)
			walk(depth + 1)
			parts = parts[:len(parts)-1]
		}
	}
	walk(0)

	return combinations
}

// FilterExcluded 从组合集合中剔除被排除的 key。
func FilterExcluded(combinations []VariantCombination, excluded map[string]struct{}) []VariantCombination {
	if len(excluded) == 0 {
		return combinations
	}
	kept := make([]VariantCombination, 0, len(combinations))
	for _, combo := range combinations {
		if _, ok := excluded[combo.Key]; ok {
			continue
		}
		kept = append(kept, combo)
	}
	return kept
}

// FormatVariantCode 生成位置稳定的变体编号（D001、D002…）。
func FormatVariantCode(position int) string {
	return fmt.Sprintf("%s%03d", constants.DefaultVariantCodePrefix, position)
}

// VariantAttributesValid 校验已生成变体的属性是否仍落在当前定义空间内。
// 属性名已被删除、或取值不在该属性当前取值列表内，均视为失效。
func VariantAttributesValid(attributes models.JSON, definitions []OptionDefinition) bool {
	active := ActiveDefinitions(definitions)
	if len(active) == 0 {
		return false
	}
	if len(attributes) != len(active) {
		return false
	}
	for _, def := range active {
		raw, ok := attributes[def.Name]
		if !ok {
			return false
		}
		value, ok := raw.(string)
		if !ok {
			return false
		}
		found := false
		for _, candidate := range def.Values {
			if candidate == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PruneInvalidVariants 删除属性空间已失效的变体。
// 定义集合为空时整表清空：不存在合法的变体空间时保留任何记录都是脏数据。
func PruneInvalidVariants(variants []models.ProductVariant, definitions []OptionDefinition) []models.ProductVariant {
	active := ActiveDefinitions(definitions)
	if len(active) == 0 {
		return []models.ProductVariant{}
	}
	kept := make([]models.ProductVariant, 0, len(variants))
	for _, variant := range variants {
		if VariantAttributesValid(variant.Attributes, active) {
			kept = append(kept, variant)
		}
	}
	return kept
}

// MaterializeVariants 将组合集合落成变体记录。
// 编号按组合顺序重排；编号与既有记录相同且该记录仍然有效时，
// 保留其已录入的价格、库存、媒体与物理属性（合并而非覆盖）。
func MaterializeVariants(definitions []OptionDefinition, combinations []VariantCombination, previous []models.ProductVariant) []models.ProductVariant {
	active := ActiveDefinitions(definitions)
	if len(active) == 0 || len(combinations) == 0 {
		return []models.ProductVariant{}
	}

	survivors := PruneInvalidVariants(previous, active)
	prevByCode := make(map[string]models.ProductVariant, len(survivors))
	for _, variant := range survivors {
		prevByCode[variant.VariantCode] = variant
	}

	records := make([]models.ProductVariant, 0, len(combinations))
	for idx, combo := range combinations {
		if len(combo.Parts) != len(active) {
			continue
		}
		code := FormatVariantCode(idx + 1)
		attributes := make(models.JSON, len(active))
		for i, def := range active {
			attributes[def.Name] = combo.Parts[i]
		}

		record := models.ProductVariant{
			VariantCode: code,
			Attributes:  attributes,
			Media:       models.StringArray{},
			IsActive:    true,
		}
		if prev, ok := prevByCode[code]; ok {
			record.ID = prev.ID
			record.ProductID = prev.ProductID
			record.ExtraCharge = prev.ExtraCharge
			record.Stock = prev.Stock
			record.Media = prev.Media
			record.LeadTimeOffsetDays = prev.LeadTimeOffsetDays
			record.Length = prev.Length
			record.Width = prev.Width
			record.Height = prev.Height
			record.DimensionUnit = prev.DimensionUnit
			record.Weight = prev.Weight
			record.WeightUnit = prev.WeightUnit
			record.IsActive = prev.IsActive
			record.SortOrder = prev.SortOrder
		}
		records = append(records, record)
	}
	return records
}

// DefinitionSignature 生成属性定义空间的规范签名。
// 属性或取值发生任何变化签名即变化，用于判断组合空间是否失效。
func DefinitionSignature(definitions []OptionDefinition) string {
	active := ActiveDefinitions(definitions)
	parts := make([]string, 0, len(active))
	for _, def := range active {
		parts = append(parts, def.Name+"="+strings.Join(def.Values, ","))
	}
	return strings.Join(parts, ";")
}
