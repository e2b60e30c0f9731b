package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 是内容编辑的登录账号。
// 平台没有注册流程：账号只通过启动时的环境变量引导出来，
// 访客端完全不需要身份。
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// EnsureUser 引导初始编辑账号：凭据非空且用户名尚未占用时，
// 以 bcrypt 哈希创建账号；已存在的账号保持不变，密码不会被覆盖。
// 凭据为空直接跳过，此时站点以只读模式运行也是合法的部署形态。
func EnsureUser(username, password string) error {
	name := strings.TrimSpace(username)
	secret := strings.TrimSpace(password)
	if name == "" || secret == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	err := DB.Where("username = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return DB.Create(&User{Username: name, Password: string(hashed)}).Error
}
