package upgrade

import (
	"context"

	"github.com/haierkeys/markdown-format-service/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// legacyHistoryTable 早期版本的历史记录表名
const legacyHistoryTable = "text_history"

// HistoryTableRenameMigrate 将早期版本的 text_history 表改名为 history
type HistoryTableRenameMigrate struct {
	logger *zap.Logger
}

// Version 返回版本号
func (m *HistoryTableRenameMigrate) Version() string {
	return "1.0.0"
}

// Description 返回描述
func (m *HistoryTableRenameMigrate) Description() string {
	return "Rename legacy text_history table to history"
}

// Up 执行升级
// 自动迁移可能已经建出空的 history 表,先删掉空表再改名;
// 新表已有数据时不动旧表,留给运维处理
func (m *HistoryTableRenameMigrate) Up(db *gorm.DB, ctx context.Context) error {
	migrator := db.Migrator()

	if !migrator.HasTable(legacyHistoryTable) {
		return nil
	}

	if migrator.HasTable(model.TableNameHistory) {
		var count int64
		if err := db.WithContext(ctx).Table(model.TableNameHistory).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			if m.logger != nil {
				m.logger.Warn("history table already has data, leaving text_history in place",
					zap.Int64("rows", count))
			}
			return nil
		}
		if err := migrator.DropTable(model.TableNameHistory); err != nil {
			return err
		}
	}

	if m.logger != nil {
		m.logger.Info("renaming legacy history table",
			zap.String("old", legacyHistoryTable),
			zap.String("new", model.TableNameHistory))
	}

	if err := migrator.RenameTable(legacyHistoryTable, model.TableNameHistory); err != nil {
		return err
	}

	// 改名后按当前模型补齐缺失列和索引
	return model.AutoMigrate(db, "History")
}
