package marketing

import (
	"github.com/smallbiznis/varejo/internal/marketing/repository"
	"github.com/smallbiznis/varejo/internal/marketing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("marketing.service",
	fx.Provide(repository.ProvideOffer),
	fx.Provide(repository.ProvideCoupon),
	fx.Provide(repository.ProvideCampaigns),
	fx.Provide(repository.ProvideContacts),
	fx.Provide(repository.ProvideSocialMedia),
	fx.Provide(service.New),
)
