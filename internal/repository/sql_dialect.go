package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator 返回大小写不敏感的模糊匹配操作符。
func likeOperator(db *gorm.DB) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// dayExpr 构建按天分组的日期表达式，兼容 sqlite 与 postgres。
func dayExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	default:
		return fmt.Sprintf("CAST(date(%s) AS TEXT)", column)
	}
}
