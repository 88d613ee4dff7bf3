package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ecosprint/ecosprint-backend/pkg/config"
	"github.com/ecosprint/ecosprint-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// record is the single-table schema backing the SQLite store.
type record struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value []byte `gorm:"column:value;not null"`
}

func (record) TableName() string { return "kv_records" }

// SQLiteStore persists values in a local SQLite database via GORM.
type SQLiteStore struct {
	conn *gorm.DB
}

// NewSQLite opens (or creates) the database file and ensures the schema.
func NewSQLite(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating kv schema: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "sqlite storage ready")
	}

	return &SQLiteStore{conn: conn}, nil
}

// Get returns the stored value, reporting ok=false for never-written keys.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec record
	err := s.conn.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return rec.Value, true, nil
}

// Set stores the value, fully replacing any prior value for the key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	rec := record{Key: key, Value: value}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Ping verifies the datasource is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
