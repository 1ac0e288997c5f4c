package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open 按配置建立数据库连接并同步表结构
// 返回的句柄由调用方负责 Close
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取 sql.DB: %w", err)
	}

	if cfg.Type == "sqlite" || cfg.Type == "" {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(gdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.L().Info("数据库连接成功，表结构已同步", zap.String("type", cfg.Type))
	return gdb, nil
}

// NewGormConfig 统一的 gorm 配置：UTC 时间戳，翻译唯一键冲突等方言错误
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// Migrate 同步表结构
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.Member{}, &model.ColoredResult{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Close 关闭底层连接
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		// 自动创建数据库目录
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}

		// 启用 WAL 模式和繁忙等待，提升 SQLite 并发性能
		dsn := cfg.Filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Type)
	}
}
