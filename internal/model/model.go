package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名执行表结构迁移
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "History":
		return db.AutoMigrate(History{})
	}
	return nil
}

// AutoMigrateAll 迁移所有模型
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		History{},
	)
}
