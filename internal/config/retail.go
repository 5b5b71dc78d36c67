package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RetailConfig carries tunables that operators may change without a restart.
type RetailConfig struct {
	Coupon     CouponDefaults     `mapstructure:"coupon"`
	Pagination PaginationDefaults `mapstructure:"pagination"`
}

type CouponDefaults struct {
	MaxUsages            int64 `mapstructure:"maxUsages"`
	MaxUsagesPerCustomer int64 `mapstructure:"maxUsagesPerCustomer"`
}

type PaginationDefaults struct {
	PageSize    int `mapstructure:"pageSize"`
	MaxPageSize int `mapstructure:"maxPageSize"`
}

func DefaultRetailConfig() RetailConfig {
	return RetailConfig{
		Coupon: CouponDefaults{
			MaxUsages:            100,
			MaxUsagesPerCustomer: 1,
		},
		Pagination: PaginationDefaults{
			PageSize:    50,
			MaxPageSize: 250,
		},
	}
}

type RetailConfigHolder struct {
	current atomic.Value // holds RetailConfig
}

// NewStaticRetailConfigHolder returns a holder that never reloads.
func NewStaticRetailConfigHolder(cfg RetailConfig) *RetailConfigHolder {
	holder := &RetailConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewRetailConfigHolder() (*RetailConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("retail")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/varejo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VAREJO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRetailConfig()
	v.SetDefault("retail.coupon.maxUsages", defaults.Coupon.MaxUsages)
	v.SetDefault("retail.coupon.maxUsagesPerCustomer", defaults.Coupon.MaxUsagesPerCustomer)
	v.SetDefault("retail.pagination.pageSize", defaults.Pagination.PageSize)
	v.SetDefault("retail.pagination.maxPageSize", defaults.Pagination.MaxPageSize)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg RetailConfig
	if err := v.UnmarshalKey("retail", &cfg); err != nil {
		return nil, err
	}
	if err := validateRetailConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticRetailConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log := zap.L().Named("config.retail")
		var updated RetailConfig
		if err := v.UnmarshalKey("retail", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateRetailConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *RetailConfigHolder) Get() RetailConfig {
	if h == nil {
		return DefaultRetailConfig()
	}
	return h.current.Load().(RetailConfig)
}

// PageSize clamps a requested page size to the configured bounds.
func (c RetailConfig) PageSize(requested int) int {
	if requested <= 0 {
		return c.Pagination.PageSize
	}
	if requested > c.Pagination.MaxPageSize {
		return c.Pagination.MaxPageSize
	}
	return requested
}

func validateRetailConfig(cfg RetailConfig) error {
	if cfg.Coupon.MaxUsages <= 0 {
		return errors.New("retail.coupon.maxUsages must be positive")
	}
	if cfg.Coupon.MaxUsagesPerCustomer <= 0 {
		return errors.New("retail.coupon.maxUsagesPerCustomer must be positive")
	}
	if cfg.Pagination.PageSize <= 0 || cfg.Pagination.MaxPageSize < cfg.Pagination.PageSize {
		return errors.New("retail.pagination bounds are invalid")
	}
	return nil
}
