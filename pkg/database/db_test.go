package database

import (
	"io/fs"
	"strings"
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	if gormLogLevel("debug") != gormlogger.Info {
		t.Error("debug 应输出全部 SQL")
	}
	if gormLogLevel("info") != gormlogger.Warn {
		t.Error("info 应仅输出慢查询与警告")
	}
	if gormLogLevel("error") != gormlogger.Error {
		t.Error("error 应仅输出错误")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("读取内嵌迁移失败: %v", err)
	}
	var ups, downs int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("up/down 迁移数量不匹配: up=%d down=%d", ups, downs)
	}
}
