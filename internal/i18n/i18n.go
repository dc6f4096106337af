package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleZhCN

var messages = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":                 "请求参数无效",
		"error.unauthorized":                "未授权，请先登录",
		"error.forbidden":                   "没有权限执行该操作",
		"error.internal":                    "服务器内部错误",
		"error.not_found":                   "资源不存在",
		"error.login_failed":                "用户名或密码错误",
		"error.login_too_many":              "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":                "操作过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":      "限流服务暂不可用，请稍后再试",
		"error.captcha_invalid":             "验证码错误或已过期",
		"error.captcha_required":            "请完成验证码校验",
		"error.captcha_config_invalid":      "验证码配置无效",
		"error.password_old_invalid":        "原密码错误",
		"error.admin_id_invalid":            "管理员标识无效",
		"error.admin_id_type_invalid":       "管理员标识类型错误",
		"error.jwt_secret_missing":          "服务端 JWT 密钥未配置",
		"error.auth_header_missing":         "缺少 Authorization 请求头",
		"error.auth_header_invalid":         "Authorization 请求头格式错误",
		"error.token_invalid":               "登录凭证无效",
		"error.token_revoked":               "登录凭证已失效，请重新登录",
		"error.password_policy":             "密码不满足安全策略",
		"error.product_not_found":           "商品不存在",
		"error.product_fetch_failed":        "获取商品失败",
		"error.product_save_failed":         "保存商品失败",
		"error.product_slug_exists":         "商品唯一标识已存在",
		"error.category_fetch_failed":       "获取分类失败",
		"error.category_save_failed":        "保存分类失败",
		"error.category_not_found":          "分类不存在",
		"error.category_in_use":             "分类下仍有商品，无法删除",
		"error.variant_space_too_large":     "变体组合数量超过上限",
		"error.variant_option_invalid":      "商品属性定义无效",
		"error.variant_payload_invalid":     "变体数据与属性定义不一致",
		"error.lead_time_fetch_failed":      "获取交期模板失败",
		"error.lead_time_save_failed":       "保存交期模板失败",
		"error.lead_time_delete_failed":     "删除交期模板失败",
		"error.lead_time_name_required":     "请填写模板名称",
		"error.lead_time_entries_required":  "请至少添加一条交期设置",
		"error.lead_time_range_missing":     "缺少必填数量区间",
		"error.lead_time_duration_invalid":  "交期时长必须大于 0",
		"error.lead_time_unit_invalid":      "交期时长单位无效",
		"error.lead_time_range_duplicate":   "同一数量区间只能设置一条交期",
		"error.lead_time_not_found":         "交期模板不存在",
		"error.lead_time_in_use":            "交期模板仍被商品引用，无法删除",
		"error.lead_time_name_exists":       "已存在同名模板",
		"error.lead_time_data_exists":       "已存在相同交期设置的模板",
		"error.lead_time_name_data_exists":  "已存在同名且同设置的模板",
		"error.order_fetch_failed":          "获取订单失败",
		"error.order_not_found":             "订单不存在",
		"error.report_fetch_failed":         "获取报表数据失败",
		"error.report_export_failed":        "报表导出任务提交失败",
		"error.queue_disabled":              "队列未启用，无法提交异步任务",
		"error.media_cleanup_failed":        "媒体清理任务提交失败",
		"error.payout_fetch_failed":         "获取结算单失败",
		"error.payout_generate_failed":      "生成结算单失败",
		"error.payout_period_invalid":       "结算周期无效",
		"error.payout_exists":               "该周期的结算单已存在",
		"error.payout_not_found":            "结算单不存在",
		"error.payout_settled":              "结算单已结算，不可重复操作",
		"error.upload_failed":               "文件上传失败",
		"error.setting_fetch_failed":        "获取设置失败",
		"error.setting_save_failed":         "保存设置失败",
		"error.authz_fetch_failed":          "获取权限信息失败",
		"error.authz_save_failed":           "保存权限信息失败",
	},
	LocaleEnUS: {
		"error.bad_request":                 "invalid request",
		"error.unauthorized":                "unauthorized",
		"error.forbidden":                   "forbidden",
		"error.internal":                    "internal server error",
		"error.not_found":                   "resource not found",
		"error.login_failed":                "invalid username or password",
		"error.login_too_many":              "too many login attempts, retry in %d seconds",
		"error.rate_limited":                "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":      "rate limiter unavailable, try again later",
		"error.captcha_invalid":             "captcha invalid or expired",
		"error.captcha_required":            "captcha verification is required",
		"error.captcha_config_invalid":      "invalid captcha configuration",
		"error.password_old_invalid":        "old password is incorrect",
		"error.admin_id_invalid":            "invalid admin id",
		"error.admin_id_type_invalid":       "invalid admin id type",
		"error.jwt_secret_missing":          "server JWT secret not configured",
		"error.auth_header_missing":         "missing Authorization header",
		"error.auth_header_invalid":         "malformed Authorization header",
		"error.token_invalid":               "invalid token",
		"error.token_revoked":               "token revoked, please login again",
		"error.password_policy":             "password does not meet the policy",
		"error.product_not_found":           "product not found",
		"error.product_fetch_failed":        "failed to fetch products",
		"error.product_save_failed":         "failed to save product",
		"error.product_slug_exists":         "product slug already exists",
		"error.category_fetch_failed":       "failed to fetch categories",
		"error.category_save_failed":        "failed to save category",
		"error.category_not_found":          "category not found",
		"error.category_in_use":             "category still has products",
		"error.variant_space_too_large":     "variant combination count exceeds the limit",
		"error.variant_option_invalid":      "invalid product option definition",
		"error.variant_payload_invalid":     "variant payload does not match option definitions",
		"error.lead_time_fetch_failed":      "failed to fetch lead time templates",
		"error.lead_time_save_failed":       "failed to save lead time template",
		"error.lead_time_delete_failed":     "failed to delete lead time template",
		"error.lead_time_name_required":     "template name is required",
		"error.lead_time_entries_required":  "at least one lead time entry is required",
		"error.lead_time_range_missing":     "required quantity range is missing",
		"error.lead_time_duration_invalid":  "lead time duration must be greater than zero",
		"error.lead_time_unit_invalid":      "invalid lead time unit",
		"error.lead_time_range_duplicate":   "each quantity range allows only one entry",
		"error.lead_time_not_found":         "lead time template not found",
		"error.lead_time_in_use":            "lead time template is still referenced by products",
		"error.lead_time_name_exists":       "a template with this name already exists",
		"error.lead_time_data_exists":       "a template with identical entries already exists",
		"error.lead_time_name_data_exists":  "a template with this name and identical entries already exists",
		"error.order_fetch_failed":          "failed to fetch orders",
		"error.order_not_found":             "order not found",
		"error.report_fetch_failed":         "failed to fetch report data",
		"error.report_export_failed":        "failed to submit report export task",
		"error.queue_disabled":              "task queue is disabled",
		"error.media_cleanup_failed":        "failed to submit media cleanup task",
		"error.payout_fetch_failed":         "failed to fetch payout statements",
		"error.payout_generate_failed":      "failed to generate payout statement",
		"error.payout_period_invalid":       "invalid payout period",
		"error.payout_exists":               "a payout statement for this period already exists",
		"error.payout_not_found":            "payout statement not found",
		"error.payout_settled":              "payout statement already settled",
		"error.upload_failed":               "file upload failed",
		"error.setting_fetch_failed":        "failed to fetch settings",
		"error.setting_save_failed":         "failed to save settings",
		"error.authz_fetch_failed":          "failed to fetch authz info",
		"error.authz_save_failed":           "failed to save authz info",
	},
}

// T 根据语言与键返回文案；缺失时回退默认语言，再退回键本身。
func T(locale, key string) string {
	if table, ok := messages[normalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带格式化参数的本地化文案。
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从请求解析语言：优先 query 参数 lang，其次 Accept-Language。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return normalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		return normalizeLocale(tag)
	}
	return DefaultLocale
}

func normalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(value, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(value, "en"):
		return LocaleEnUS
	default:
		return DefaultLocale
	}
}
