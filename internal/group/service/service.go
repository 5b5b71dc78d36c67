package service

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/group/domain"
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
	Repo       domain.Repository
	Stores     domain.StoreRepository
	References domain.ReferenceChecker
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	retail     *config.RetailConfigHolder
	repo       domain.Repository
	stores     domain.StoreRepository
	references domain.ReferenceChecker
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("group.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		retail:     p.Retail,
		repo:       p.Repo,
		stores:     p.Stores,
		references: p.References,
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// textField trims value and enforces the 255 character column limit.
func textField(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, len([]rune(value)) <= 255
}
