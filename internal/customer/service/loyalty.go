package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"go.uber.org/zap"
)

// Enroll opens a bronze program with no points for the customer.
func (s *Service) Enroll(ctx context.Context, customerID string) (domain.LoyaltyProgram, error) {
	id, err := s.parseID(customerID)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	if _, err := s.findCustomer(ctx, id); err != nil {
		return domain.LoyaltyProgram{}, err
	}

	existing, err := s.loyalty.FindByCustomer(ctx, s.db, id)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	if existing != nil {
		return domain.LoyaltyProgram{}, domain.ErrAlreadyEnrolled
	}

	now := s.clock.Now()
	program := domain.LoyaltyProgram{
		ID:         s.genID.Generate(),
		CustomerID: id,
		Points:     0,
		Tier:       domain.TierBronze,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.loyalty.Insert(ctx, s.db, &program); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.LoyaltyProgram{}, domain.ErrAlreadyEnrolled
		}
		return domain.LoyaltyProgram{}, err
	}
	return program, nil
}

func (s *Service) GetLoyalty(ctx context.Context, customerID string) (domain.LoyaltyProgram, error) {
	id, err := s.parseID(customerID)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	program, err := s.loyalty.FindByCustomer(ctx, s.db, id)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	if program == nil {
		return domain.LoyaltyProgram{}, s.missingProgram(ctx, customerID)
	}
	return *program, nil
}

// AddPoints credits amount to the balance with a single atomic increment, so
// concurrent accruals are never lost. The tier is left as is.
func (s *Service) AddPoints(ctx context.Context, customerID string, amount int64) (domain.LoyaltyProgram, error) {
	if amount < 0 {
		return domain.LoyaltyProgram{}, domain.ErrInvalidPoints
	}
	id, err := s.parseID(customerID)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}

	rows, err := s.loyalty.AddPoints(ctx, s.db, id, amount, s.clock.Now())
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	if rows == 0 {
		return domain.LoyaltyProgram{}, s.missingProgram(ctx, customerID)
	}

	program, err := s.GetLoyalty(ctx, customerID)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}

	s.metrics.RecordLoyaltyPoints(ctx, string(program.Tier), amount)
	s.log.Debug("loyalty points added",
		zap.String("customer_id", id.String()),
		zap.Int64("amount", amount),
		zap.Int64("points", program.Points),
	)
	return program, nil
}

func (s *Service) SetTier(ctx context.Context, customerID string, tier string) (domain.LoyaltyProgram, error) {
	t := domain.LoyaltyTier(strings.ToUpper(strings.TrimSpace(tier)))
	if !t.Valid() {
		return domain.LoyaltyProgram{}, domain.ErrInvalidTier
	}
	id, err := s.parseID(customerID)
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}

	rows, err := s.loyalty.SetTier(ctx, s.db, id, t, s.clock.Now())
	if err != nil {
		return domain.LoyaltyProgram{}, err
	}
	if rows == 0 {
		return domain.LoyaltyProgram{}, s.missingProgram(ctx, customerID)
	}
	return s.GetLoyalty(ctx, customerID)
}

// missingProgram tells an unknown customer apart from one never enrolled.
func (s *Service) missingProgram(ctx context.Context, customerID string) error {
	id, err := s.parseID(customerID)
	if err != nil {
		return err
	}
	if _, err := s.findCustomer(ctx, id); err != nil {
		return err
	}
	return domain.ErrNotEnrolled
}
