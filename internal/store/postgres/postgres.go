// Package postgres implements store.Store on top of GORM + the Postgres
// driver, adapted from the teacher's storage layer: a zap-backed
// logger.Interface shim, connection pool tuning, and AutoMigrate-driven
// schema management.
package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solarbx/mevcore/internal/store"
	"github.com/solarbx/mevcore/internal/store/models"
)

// gormZapLogger adapts *zap.Logger to gorm's logger.Interface so every
// query, slow-query warning, and migration error flows through the same
// structured logging pipeline as the rest of the service.
type gormZapLogger struct {
	zapLogger *zap.Logger
	logLevel  gormlogger.LogLevel
}

func newGormLogger(zapLogger *zap.Logger) gormlogger.Interface {
	return &gormZapLogger{zapLogger: zapLogger, logLevel: gormlogger.Warn}
}

func (l *gormZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *gormZapLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.zapLogger.Sugar().Infof(msg, data...)
	}
}

func (l *gormZapLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.zapLogger.Sugar().Warnf(msg, data...)
	}
}

func (l *gormZapLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.zapLogger.Sugar().Errorf(msg, data...)
	}
}

func (l *gormZapLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{zap.Duration("elapsed", elapsed), zap.String("sql", sql), zap.Int64("rows", rows)}
	if err != nil {
		l.zapLogger.Error("gorm trace", append(fields, zap.Error(err))...)
		return
	}
	if l.logLevel >= gormlogger.Info {
		l.zapLogger.Debug("gorm trace", fields...)
	}
}

// Storage is the Postgres-backed store.Store implementation.
type Storage struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New opens a connection pool against dsn and wraps it in store.Store.
func New(dsn string, logger *zap.Logger) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(logger.Named("gorm")),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Storage{db: db, logger: logger}, nil
}

// RunMigrations auto-migrates the logical schema, guarded by a Postgres
// advisory lock so concurrent instances don't race on DDL.
func (s *Storage) RunMigrations() error {
	var lockObtained bool
	if err := s.db.Raw("SELECT pg_try_advisory_lock(?)", 8417).Scan(&lockObtained).Error; err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	if !lockObtained {
		return fmt.Errorf("another migration is in progress")
	}
	defer s.db.Exec("SELECT pg_advisory_unlock(?)", 8417)

	return s.db.AutoMigrate(&models.Mint{}, &models.Pool{}, &models.KVCache{}, &models.MevSimulationLog{})
}

func (s *Storage) UpsertMint(ctx context.Context, m *models.Mint) error {
	return s.db.WithContext(ctx).Where(models.Mint{Address: m.Address}).
		Assign(m).FirstOrCreate(m).Error
}

func (s *Storage) GetMint(ctx context.Context, address string) (*models.Mint, error) {
	var m models.Mint
	if err := s.db.WithContext(ctx).Where("address = ?", address).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) UpsertPool(ctx context.Context, p *models.Pool) error {
	return s.db.WithContext(ctx).Where(models.Pool{Address: p.Address}).
		Assign(p).FirstOrCreate(p).Error
}

func (s *Storage) GetPool(ctx context.Context, address string) (*models.Pool, error) {
	var p models.Pool
	if err := s.db.WithContext(ctx).Where("address = ?", address).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListPools(ctx context.Context) ([]*models.Pool, error) {
	var pools []*models.Pool
	if err := s.db.WithContext(ctx).Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *Storage) Read(ctx context.Context, cacheType, key string) (string, bool, error) {
	var row models.KVCache
	err := s.db.WithContext(ctx).
		Where("type = ? AND key = ? AND valid_until > ?", cacheType, key, time.Now().UTC()).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *Storage) Write(ctx context.Context, cacheType, key, value string, validUntil time.Time) error {
	row := models.KVCache{Type: cacheType, Key: key, Value: value, ValidUntil: validUntil}
	return s.db.WithContext(ctx).
		Where(models.KVCache{Type: cacheType, Key: key}).
		Assign(row).FirstOrCreate(&row).Error
}

func (s *Storage) LogSimulation(ctx context.Context, entry *models.MevSimulationLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}
