package service

import (
	"errors"
	"fmt"
	"strings"
)

// 业务层哨兵错误，供处理器层映射为国际化响应。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrSlugExists         = errors.New("slug 已存在")
	ErrCategoryInUse      = errors.New("分类下仍有商品")
	ErrPriceInvalid       = errors.New("金额不合法")

	// 变体组合
	ErrVariantSpaceTooLarge = errors.New("变体组合数量超过上限")
	ErrOptionInvalid        = errors.New("商品选项不合法")

	// 交期模板保存前置校验，按顺序触发
	ErrTemplateNameRequired    = errors.New("模板名称不能为空")
	ErrTemplateEntriesRequired = errors.New("模板至少需要一条交期条目")
	ErrTemplateDurationInvalid = errors.New("交期时长必须大于 0")
	ErrTemplateUnitInvalid     = errors.New("交期时长单位不合法")
	ErrTemplateRangeDuplicate  = errors.New("同一数量区间只能有一条交期条目")
	ErrTemplateNameExists      = errors.New("模板名称已存在")
	ErrTemplateDataExists      = errors.New("已存在相同交期数据的模板")
	ErrTemplateNameDataExists  = errors.New("模板名称与交期数据均已存在")
	ErrTemplateInUse           = errors.New("模板仍被商品引用")

	// 结算
	ErrPayoutPeriodInvalid = errors.New("结算周期不合法")
	ErrPayoutExists        = errors.New("该结算周期已生成结算单")
	ErrPayoutSettled       = errors.New("结算单已结算")

	// 验证码
	ErrCaptchaRequired      = errors.New("请完成验证码校验")
	ErrCaptchaInvalid       = errors.New("验证码错误或已过期")
	ErrCaptchaConfigInvalid = errors.New("验证码配置不合法")
)

// MissingRangesError 缺少必填数量区间
type MissingRangesError struct {
	Ranges []string
}

func (e *MissingRangesError) Error() string {
	return fmt.Sprintf("缺少必填数量区间: %s", strings.Join(e.Ranges, ", "))
}

// NewMissingRangesError 构建缺少区间错误
func NewMissingRangesError(ranges []string) *MissingRangesError {
	return &MissingRangesError{Ranges: ranges}
}
