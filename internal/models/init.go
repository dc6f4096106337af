package models

import (
	"strings"

	"github.com/sellerdesk/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// 未提供环境变量时使用的初始账号。
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "sellerdesk123"
)

// InitDefaultAdmin 初始化卖家控制台的默认管理员账号。
// 已存在管理员时只补齐默认账号的超级管理员标记，不再创建。
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", defaultAdminUsername).Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = defaultAdminUsername
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), defaultAdminUsername),
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
