package group

import (
	"github.com/smallbiznis/varejo/internal/group/repository"
	"github.com/smallbiznis/varejo/internal/group/service"
	"go.uber.org/fx"
)

var Module = fx.Module("group.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideStore),
	fx.Provide(repository.ProvideReferences),
	fx.Provide(service.New),
)
