package service

import (
	"github.com/sellerdesk/internal/models"
)

// 变体编辑会话的动作类型
const (
	VariantActionAddOption       = "ADD_OPTION"          // 新增属性
	VariantActionRemoveOption    = "REMOVE_OPTION"       // 删除属性
	VariantActionSetOptionValues = "SET_OPTION_VALUES"   // 整体替换属性取值
	VariantActionExclude         = "EXCLUDE_COMBINATION" // 排除组合
	VariantActionInclude         = "INCLUDE_COMBINATION" // 恢复组合
	VariantActionMaterialize     = "MATERIALIZE"         // 将组合落成变体表
	VariantActionRemoveVariant   = "REMOVE_VARIANT"      // 删除单个变体
	VariantActionReset           = "RESET"               // 清空会话
)

// VariantAction 变体编辑动作
type VariantAction struct {
	Type   string   `json:"type"`
	Name   string   `json:"name,omitempty"`   // 属性名（AddOption/RemoveOption/SetOptionValues）
	Values []string `json:"values,omitempty"` // 属性取值（SetOptionValues）
	Key    string   `json:"key,omitempty"`    // 组合 key（Exclude/Include）
	Code   string   `json:"code,omitempty"`   // 变体编号（RemoveVariant）
}

// VariantState 变体编辑会话状态
// 显式持有定义、排除集与已物化记录，组合集合按需从定义推导。
type VariantState struct {
	Definitions []OptionDefinition      `json:"definitions"`
	Excluded    map[string]struct{}     `json:"-"`
	Records     []models.ProductVariant `json:"records"`
	Signature   string                  `json:"signature"` // 当前定义空间的规范签名
}

// NewVariantState 创建空会话状态
func NewVariantState() VariantState {
	return VariantState{
		Definitions: []OptionDefinition{},
		Excluded:    map[string]struct{}{},
		Records:     []models.ProductVariant{},
	}
}

// Combinations 推导当前定义下的全部组合
func (s VariantState) Combinations() []VariantCombination {
	return GenerateCombinations(s.Definitions)
}

// ActiveCombinations 推导剔除排除项后的组合
func (s VariantState) ActiveCombinations() []VariantCombination {
	return FilterExcluded(s.Combinations(), s.Excluded)
}

// ReduceVariant 变体编辑会话的状态转移函数。
// 纯函数：输入状态不被修改，返回新状态。
// 定义空间发生变化（签名不同）时排除集整体清空，已物化记录按失效策略裁剪。
func ReduceVariant(state VariantState, action VariantAction) VariantState {
	switch action.Type {
	case VariantActionAddOption:
		next := cloneVariantState(state)
		for _, def := range next.Definitions {
			if def.Name == action.Name {
				return state
			}
		}
		next.Definitions = append(next.Definitions, OptionDefinition{
			Name:   action.Name,
			Values: append([]string{}, action.Values...),
		})
		return refreshVariantSpace(state, next)

	case VariantActionRemoveOption:
		next := cloneVariantState(state)
		kept := make([]OptionDefinition, 0, len(next.Definitions))
		for _, def := range next.Definitions {
			if def.Name == action.Name {
				continue
			}
			kept = append(kept, def)
		}
		if len(kept) == len(next.Definitions) {
			return state
		}
		next.Definitions = kept
		return refreshVariantSpace(state, next)

	case VariantActionSetOptionValues:
		next := cloneVariantState(state)
		found := false
		for i := range next.Definitions {
			if next.Definitions[i].Name == action.Name {
				next.Definitions[i].Values = append([]string{}, action.Values...)
				found = true
				break
			}
		}
		if !found {
			return state
		}
		return refreshVariantSpace(state, next)

	case VariantActionExclude:
		if action.Key == "" {
			return state
		}
		next := cloneVariantState(state)
		next.Excluded[action.Key] = struct{}{}
		return next

	case VariantActionInclude:
		if _, ok := state.Excluded[action.Key]; !ok {
			return state
		}
		next := cloneVariantState(state)
		delete(next.Excluded, action.Key)
		return next

	case VariantActionMaterialize:
		next := cloneVariantState(state)
		next.Records = MaterializeVariants(next.Definitions, next.ActiveCombinations(), next.Records)
		return next

	case VariantActionRemoveVariant:
		next := cloneVariantState(state)
		kept := make([]models.ProductVariant, 0, len(next.Records))
		for _, record := range next.Records {
			if record.VariantCode == action.Code {
				continue
			}
			kept = append(kept, record)
		}
		next.Records = kept
		return next

	case VariantActionReset:
		return NewVariantState()

	default:
		return state
	}
}

// refreshVariantSpace 在定义变化后维护派生状态。
// 签名未变（例如新增了一个还没有取值的属性）时不触发失效。
func refreshVariantSpace(prev, next VariantState) VariantState {
	next.Signature = DefinitionSignature(next.Definitions)
	if next.Signature == prev.Signature {
		return next
	}
	next.Excluded = map[string]struct{}{}
	next.Records = PruneInvalidVariants(next.Records, next.Definitions)
	return next
}

func cloneVariantState(state VariantState) VariantState {
	next := VariantState{
		Definitions: make([]OptionDefinition, len(state.Definitions)),
		Excluded:    make(map[string]struct{}, len(state.Excluded)),
		Records:     make([]models.ProductVariant, len(state.Records)),
		Signature:   state.Signature,
	}
	for i, def := range state.Definitions {
		next.Definitions[i] = OptionDefinition{
			Name:   def.Name,
			Values: append([]string{}, def.Values...),
		}
	}
	for key := range state.Excluded {
		next.Excluded[key] = struct{}{}
	}
	copy(next.Records, state.Records)
	return next
}
