package database

import (
	"sync"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/database/model"
	"ai-doc-assistant/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB *gorm.DB
	mu sync.Mutex
)

// connect opens the sqlite database and migrates the schema.
func connect() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.Cfg.Database.Path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.DocumentRecord{},
		&model.MessageRecord{},
		&model.QuizRecord{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed
func ensureConnection() error {
	if DB == nil {
		new_db, err := connect()
		if err != nil {
			logger.Error(err, "database: failed to ensure connection")
			return err
		}
		DB = new_db
		return nil
	}

	sql_db, err := DB.DB()
	if err != nil {
		logger.Error(err, "database: failed to get database connection")
		return err
	}
	if err := sql_db.Ping(); err != nil {
		new_db, err := connect()
		if err != nil {
			logger.Error(err, "database: failed to connect to database")
			return err
		}
		DB = new_db
	}
	return nil
}

// GetDB returns a healthy *gorm.DB, connecting lazily on first use.
func GetDB() (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := ensureConnection(); err != nil {
		return nil, err
	}
	return DB, nil
}
