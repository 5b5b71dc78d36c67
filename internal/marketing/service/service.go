package service

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/internal/observability/metrics"
	"github.com/smallbiznis/varejo/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Retail      *config.RetailConfigHolder
	Offers      domain.OfferRepository
	Coupons     domain.CouponRepository
	Campaigns   repository.Repository[domain.Campaign]
	Contacts    repository.Repository[domain.Contact]
	SocialMedia repository.Repository[domain.SocialMedia]
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	retail      *config.RetailConfigHolder
	offers      domain.OfferRepository
	coupons     domain.CouponRepository
	campaigns   repository.Repository[domain.Campaign]
	contacts    repository.Repository[domain.Contact]
	socialMedia repository.Repository[domain.SocialMedia]
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("marketing.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		retail:      p.Retail,
		offers:      p.Offers,
		coupons:     p.Coupons,
		campaigns:   p.Campaigns,
		contacts:    p.Contacts,
		socialMedia: p.SocialMedia,
		metrics:     p.Metrics,
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func validName(name string) bool {
	return name != "" && len([]rune(name)) <= 255
}
