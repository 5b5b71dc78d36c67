package db

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/varejo/internal/config"
	obslogger "github.com/smallbiznis/varejo/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
	fx.Provide(DriverFromConfig),
)

type Params struct {
	fx.In

	Lc  fx.Lifecycle
	Cfg config.Config
	Log *zap.Logger
}

func DriverFromConfig(cfg config.Config) (Driver, error) {
	driver, _, err := ParseURL(cfg.DatabaseURL)
	return driver, err
}

// New opens the database described by DATABASE_URL and registers the tracing
// and metrics plugins.
func New(p Params) (*gorm.DB, error) {
	driver, dialector, err := Dialect(p.Cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         obslogger.NewGormLogger(obslogger.DefaultGormLoggerConfig()),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := conn.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("register otelgorm: %w", err)
	}
	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          p.Cfg.AppName,
		RefreshInterval: 15,
	})); err != nil {
		return nil, fmt.Errorf("register gorm prometheus: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY on the shared file
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(p.Cfg.DBMaxIdleConn)
		sqlDB.SetMaxOpenConns(p.Cfg.DBMaxOpenConn)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(p.Cfg.DBConnMaxLifetime) * time.Second)

	p.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.Log.Info("closing database", zap.String("driver", string(driver)))
			return sqlDB.Close()
		},
	})

	return conn, nil
}
