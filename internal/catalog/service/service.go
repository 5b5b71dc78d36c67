package service

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Retail     *config.RetailConfigHolder
	Products   domain.ProductRepository
	Categories repository.Repository[domain.Category]
	Brands     repository.Repository[domain.Brand]
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	retail     *config.RetailConfigHolder
	products   domain.ProductRepository
	categories repository.Repository[domain.Category]
	brands     repository.Repository[domain.Brand]
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("catalog.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		retail:     p.Retail,
		products:   p.Products,
		categories: p.Categories,
		brands:     p.Brands,
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

var sortableColumns = map[string]bool{
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

func validName(name string) bool {
	return name != "" && len([]rune(name)) <= 255
}
