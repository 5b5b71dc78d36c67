package migration

import (
	"github.com/smallbiznis/varejo/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, driver db.Driver, log *zap.Logger) error {
		if err := Run(conn, driver); err != nil {
			return err
		}
		log.Info("database schema ready", zap.String("driver", string(driver)))
		return nil
	}),
)
