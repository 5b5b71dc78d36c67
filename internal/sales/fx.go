package sales

import (
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/sales/receipt"
	"github.com/smallbiznis/varejo/internal/sales/repository"
	"github.com/smallbiznis/varejo/internal/sales/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sales.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideReferences),
	fx.Provide(func(cfg config.Config) receipt.Renderer {
		return receipt.New(cfg.AppName)
	}),
	fx.Provide(service.New),
)
