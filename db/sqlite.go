package db

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const DefaultSQLitePath = "musixbooth.sqlite3"

type Setting struct {
	Name      string `gorm:"primaryKey;type:varchar(64)"`
	Value     string
	UpdatedAt time.Time
}

type SQLiteStore struct {
	DB *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating store dir")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite store %s", path)
	}
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, errors.Wrap(err, "auto migrate")
	}
	return &SQLiteStore{DB: db}, nil
}

func (s *SQLiteStore) SaveTempo(ctx context.Context, bpm int) error {
	setting := Setting{Name: TempoKey, Value: strconv.Itoa(bpm)}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&setting).Error
	return errors.Wrap(err, "saving tempo")
}

func (s *SQLiteStore) LoadTempo(ctx context.Context) (int, error) {
	var setting Setting
	err := s.DB.WithContext(ctx).Where("name = ?", TempoKey).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNoTempo
	}
	if err != nil {
		return 0, errors.Wrap(err, "loading tempo")
	}
	bpm, err := strconv.Atoi(setting.Value)
	if err != nil {
		return 0, errors.Wrapf(err, "stored tempo %q", setting.Value)
	}
	return bpm, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql.DB from gorm")
	}
	return sqlDB.Close()
}
