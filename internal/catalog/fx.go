package catalog

import (
	"github.com/smallbiznis/varejo/internal/catalog/repository"
	"github.com/smallbiznis/varejo/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.ProvideProduct),
	fx.Provide(repository.ProvideCategories),
	fx.Provide(repository.ProvideBrands),
	fx.Provide(service.New),
)
