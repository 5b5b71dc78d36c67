package customer

import (
	"github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/internal/customer/repository"
	"github.com/smallbiznis/varejo/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideAddress),
	fx.Provide(repository.ProvideLoyalty),
	fx.Provide(service.New),
	fx.Provide(
		func(s *service.Service) domain.Service { return s },
		func(s *service.Service) domain.AddressService { return s },
		func(s *service.Service) domain.LoyaltyService { return s },
	),
)
