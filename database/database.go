package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ipss-cms/models"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string
	DSN    string
	Debug  bool
}

// Database is the process-wide access service. It is created once at
// startup and handed to repositories and services explicitly.
type Database struct {
	Gorm   *gorm.DB
	SQLX   *sqlx.DB
	Driver string
}

func dialector(cfg Config) (gorm.Dialector, string, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverPostgres, "postgresql":
		return postgres.Open(cfg.DSN), "pgx", nil
	case DriverMySQL:
		return mysql.Open(cfg.DSN), "mysql", nil
	case DriverSQLite, "sqlite3":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "ipss.db"
		}
		return sqlite.Open(dsn), "sqlite3", nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Open connects with gorm and exposes the same pool through sqlx for raw statements.
func Open(cfg Config, log *zap.Logger) (*Database, error) {
	d, sqlxDriver, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", sqlxDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if sqlxDriver == "sqlite3" {
		// sqlite allows a single writer; in-memory databases also live per connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	log.Info("database connected", zap.String("driver", sqlxDriver))

	return &Database{
		Gorm:   db,
		SQLX:   sqlx.NewDb(sqlDB, sqlxDriver),
		Driver: sqlxDriver,
	}, nil
}

// Migrate creates or updates every table the API uses.
func (d *Database) Migrate() error {
	return d.Gorm.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.News{},
		&models.SocialResponse{},
		&models.InstitutionalContent{},
		&models.CustomSection{},
		&models.SectionItem{},
		&models.Person{},
		&models.EmergencyContact{},
		&models.Inscription{},
		&models.ContactMessage{},
		&models.TransparencyDocument{},
		&models.Media{},
	)
}

func (d *Database) Ping(ctx context.Context) error {
	return d.SQLX.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.SQLX.Close()
}
