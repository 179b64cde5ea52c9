package dbmysql

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parentforum/internal/config"
)

// NewMySQL returns a GORM DB instance connected to MySQL. Duplicate key errors
// are translated to gorm.ErrDuplicatedKey.
func NewMySQL(cnf *config.Config) (*gorm.DB, error) {
	dsn := cnf.DSN()

	log.Printf("Connecting to MySQL at %s:%s/%s",
		cnf.Database.Host, cnf.Database.Port, cnf.Database.DatabaseName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(LogLevel(cnf.Logging.Level)),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cnf.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("✅ Connected to MySQL successfully")

	return db, nil
}

// AutoMigrate creates or updates every forum table. Posts go first so the
// child tables can reference them.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Post{},
		&Comment{},
		&PostReaction{},
		&CommentLike{},
		&SavedPost{},
		&Report{},
		&Notification{},
		&Profile{},
		&MediaRef{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// LogLevel maps LOG_LEVEL onto the gorm logger.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
