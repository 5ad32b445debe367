package upgrade

import (
	"context"
	"testing"

	"github.com/haierkeys/markdown-format-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMigrationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestHistoryTableRenameMigrate_Up(t *testing.T) {
	db := newMigrationTestDB(t)

	// 旧表带数据
	require.NoError(t, db.Exec(`CREATE TABLE text_history (id INTEGER PRIMARY KEY, raw_text TEXT NOT NULL, formatted_html TEXT NOT NULL, created_at DATETIME)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO text_history (raw_text, formatted_html) VALUES ('# a', '<h1>a</h1>'), ('# b', '<h1>b</h1>')`).Error)

	migrate := &HistoryTableRenameMigrate{logger: zap.NewNop()}
	require.NoError(t, migrate.Up(db, context.Background()))

	assert.False(t, db.Migrator().HasTable("text_history"))
	assert.True(t, db.Migrator().HasTable(model.TableNameHistory))

	var count int64
	require.NoError(t, db.Table(model.TableNameHistory).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestHistoryTableRenameMigrate_DropsEmptyNewTable(t *testing.T) {
	db := newMigrationTestDB(t)

	// 自动迁移先建出了空的新表
	require.NoError(t, model.AutoMigrateAll(db))
	require.NoError(t, db.Exec(`CREATE TABLE text_history (id INTEGER PRIMARY KEY, raw_text TEXT NOT NULL, formatted_html TEXT NOT NULL, created_at DATETIME)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO text_history (raw_text, formatted_html) VALUES ('# legacy', '<h1>legacy</h1>')`).Error)

	migrate := &HistoryTableRenameMigrate{logger: zap.NewNop()}
	require.NoError(t, migrate.Up(db, context.Background()))

	assert.False(t, db.Migrator().HasTable("text_history"))

	var count int64
	require.NoError(t, db.Table(model.TableNameHistory).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHistoryTableRenameMigrate_KeepsPopulatedNewTable(t *testing.T) {
	db := newMigrationTestDB(t)

	require.NoError(t, model.AutoMigrateAll(db))
	require.NoError(t, db.Exec(`INSERT INTO history (raw_text, formatted_html) VALUES ('# current', '<h1>current</h1>')`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE text_history (id INTEGER PRIMARY KEY, raw_text TEXT NOT NULL, formatted_html TEXT NOT NULL, created_at DATETIME)`).Error)

	migrate := &HistoryTableRenameMigrate{logger: zap.NewNop()}
	require.NoError(t, migrate.Up(db, context.Background()))

	// 两张表都保留
	assert.True(t, db.Migrator().HasTable("text_history"))
	assert.True(t, db.Migrator().HasTable(model.TableNameHistory))
}

func TestHistoryTableRenameMigrate_NoLegacyTable(t *testing.T) {
	db := newMigrationTestDB(t)
	require.NoError(t, model.AutoMigrateAll(db))

	migrate := &HistoryTableRenameMigrate{}
	require.NoError(t, migrate.Up(db, context.Background()))
	assert.True(t, db.Migrator().HasTable(model.TableNameHistory))
}

func TestMigrationManagerRecordsVersion(t *testing.T) {
	db := newMigrationTestDB(t)
	require.NoError(t, db.AutoMigrate(&SchemaVersion{}))

	mgr := NewMigrationManager(db, zap.NewNop(), "1.0.0")
	applied, err := mgr.getAppliedVersions()
	require.NoError(t, err)
	assert.Empty(t, applied)

	require.NoError(t, db.Create(&SchemaVersion{Version: "1.0.0", Description: "test"}).Error)
	applied, err = mgr.getAppliedVersions()
	require.NoError(t, err)
	assert.True(t, applied["1.0.0"])
}
