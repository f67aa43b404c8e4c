package database

import (
	"context"
	"fmt"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/pkg/mysql"
	"github.com/Behyna/storefront-payments/pkg/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver      string `mapstructure:"driver"`
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"ssl_mode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

func NewConnection(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverMySQL, "":
		db, err = mysql.NewConnection(ctx, mysql.Config{
			Host: cfg.Host, Port: cfg.Port, User: cfg.User, Password: cfg.Password, Name: cfg.Name,
		}, logger)
	case DriverPostgres:
		db, err = postgres.NewConnection(ctx, postgres.Config{
			Host: cfg.Host, Port: cfg.Port, User: cfg.User, Password: cfg.Password, Name: cfg.Name,
			SSLMode: cfg.SSLMode,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Profile{}, &model.PaymentTransaction{}, &model.BalanceTransaction{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
