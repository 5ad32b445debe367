// 代码生成入口：按现有库表结构生成 internal/query 查询代码和 internal/model 模型。
// 用法: go run ./cmd/gorm_gen -type sqlite -dsn storage/database/db.db
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gen"
	"gorm.io/gen/field"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	dbType string
	dbDsn  string
)

func init() {
	dType := flag.String("type", "", "数据库类型 mysql/postgres/sqlite")
	dsn := flag.String("dsn", "", "数据库 DSN")

	flag.Parse()
	dbType = *dType
	dbDsn = *dsn
}

// columnToHump 把下划线列名转成驼峰，生成 json/form 标签用
func columnToHump(in string) string {
	var b strings.Builder
	for i := 0; i < len(in); i++ {
		switch {
		case in[i] == '_':
			continue
		case i > 0 && in[i-1] == '_':
			b.WriteString(strings.ToUpper(string(in[i])))
		default:
			b.WriteByte(in[i])
		}
	}
	return b.String()
}

// skipTable 过滤 SQLite 内部表和迁移版本表
func skipTable(table string) bool {
	return table == "schema_version" || strings.HasPrefix(table, "sqlite_")
}

func openDB(dsn string, dbType string) *gorm.DB {
	db, err := gorm.Open(dialector(dsn, dbType), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			// 单数表名，History 对应表 history
			SingularTable: true,
		},
	})
	if err != nil {
		panic(fmt.Errorf("connect db fail: %w", err))
	}
	return db
}

func dialector(dsn string, dbType string) gorm.Dialector {
	switch dbType {
	case "mysql":
		return mysql.Open(dsn)
	case "postgres":
		return postgres.Open(dsn)
	case "sqlite":
		if !fileurl.IsExist(dsn) {
			fileurl.CreatePath(dsn, os.ModePerm)
		}
		return sqlite.Open(dsn)
	}
	return nil
}

// defaultValueTags 为非主键列补 default 标签。
// SQLite 的 ALTER TABLE ADD COLUMN 遇到 NOT NULL 且无默认值的列会失败，
// 数值列补 0、文本列补空串，库里已有默认值的沿用原值
func defaultValueTags(db *gorm.DB, tables []string) []gen.ModelOpt {
	var opts []gen.ModelOpt

	setDefault := func(fieldName, value string) gen.ModelOpt {
		return gen.FieldGORMTag(fieldName, func(tag field.GormTag) field.GormTag {
			tag.Set("default", value)
			return tag
		})
	}

	for _, table := range tables {
		if skipTable(table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			continue
		}

		for _, col := range columnTypes {
			if pk, ok := col.PrimaryKey(); ok && pk {
				continue
			}

			if v, ok := col.DefaultValue(); ok && v != "" {
				opts = append(opts, setDefault(col.Name(), v))
				continue
			}

			switch t := strings.ToLower(col.DatabaseTypeName()); {
			case t == "integer" || t == "int" || t == "bigint":
				opts = append(opts, setDefault(col.Name(), "0"))
			case t == "text" || strings.Contains(t, "char"):
				opts = append(opts, setDefault(col.Name(), "''"))
			}
		}
	}

	return opts
}

// datetimeTag 时间列统一 datetime 类型、默认 NULL，写入时刻由业务层的 timex.Time 控制
func datetimeTag(extra map[string]string) func(field.GormTag) field.GormTag {
	return func(tag field.GormTag) field.GormTag {
		tag.Set("type", "datetime")
		tag.Set("default", "NULL")
		for k, v := range extra {
			tag.Set(k, v)
		}
		return tag
	}
}

func main() {
	g := gen.NewGenerator(gen.Config{
		// OutPath 放查询代码，模型落在同级 model 包，两者不能指向同一包名
		OutPath:           "./internal/query",
		Mode:              gen.WithQueryInterface,
		WithUnitTest:      false,
		FieldWithTypeTag:  false,
		FieldWithIndexTag: true,
	})

	db := openDB(dbDsn, dbType)
	g.UseDB(db)

	// SQLite 的 INTEGER 统一映射为 int64，避免 32 位溢出
	intMapping := func(columnType gorm.ColumnType) string { return "int64" }
	dataMap := map[string]func(gorm.ColumnType) string{}
	for _, alias := range []string{"integer", "INTEGER", "int", "INT"} {
		dataMap[alias] = intMapping
	}
	g.WithDataTypeMap(dataMap)

	tableList, _ := db.Migrator().GetTables()

	opts := []gen.ModelOpt{
		gen.FieldType("created_at", "timex.Time"),
		gen.FieldType("updated_at", "timex.Time"),
		gen.FieldType("deleted_at", "timex.Time"),
		gen.FieldGORMTag("created_at", datetimeTag(map[string]string{"autoCreateTime": "false"})),
		gen.FieldGORMTag("updated_at", datetimeTag(map[string]string{"autoUpdateTime": "false"})),
		gen.FieldGORMTag("deleted_at", datetimeTag(nil)),
		gen.FieldJSONTagWithNS(columnToHump),
		gen.FieldNewTagWithNS("form", columnToHump),
	}
	opts = append(opts, defaultValueTags(db, tableList)...)

	for _, table := range tableList {
		if skipTable(table) {
			continue
		}
		g.ApplyBasic(g.GenerateModel(table, opts...))
	}
	g.Execute()
}
