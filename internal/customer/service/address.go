package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/varejo/internal/customer/domain"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"gorm.io/gorm"
)

var addressDependents = []db.Relation{
	{Table: "customer_addresses", Column: "address_id", Policy: db.Cascade},
	{Table: "group_addresses", Column: "address_id", Policy: db.Cascade},
	{Table: "stores", Column: "address_id", Policy: db.Cascade, Children: groupdomain.StoreDependents},
}

// CreateAddress stores a new address linked to the customer.
func (s *Service) CreateAddress(ctx context.Context, customerID string, input domain.AddressInput) (domain.Address, error) {
	id, err := s.parseID(customerID)
	if err != nil {
		return domain.Address{}, err
	}
	address, err := buildAddress(input)
	if err != nil {
		return domain.Address{}, err
	}
	if _, err := s.findCustomer(ctx, id); err != nil {
		return domain.Address{}, err
	}

	now := s.clock.Now()
	address.ID = s.genID.Generate()
	address.CreatedAt = now
	address.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.addresses.Insert(ctx, tx, &address); err != nil {
			return err
		}
		return s.addresses.Attach(ctx, tx, id, address.ID)
	})
	if err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

func (s *Service) GetAddress(ctx context.Context, id string) (domain.Address, error) {
	addressID, err := s.parseID(id)
	if err != nil {
		return domain.Address{}, err
	}
	address, err := s.addresses.FindByID(ctx, s.db, addressID)
	if err != nil {
		return domain.Address{}, err
	}
	if address == nil {
		return domain.Address{}, domain.ErrNotFound
	}
	return *address, nil
}

func (s *Service) ListAddresses(ctx context.Context, customerID string) ([]domain.Address, error) {
	id, err := s.parseID(customerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	return s.addresses.ListByCustomer(ctx, s.db, id)
}

func (s *Service) UpdateAddress(ctx context.Context, id string, input domain.AddressInput) (domain.Address, error) {
	current, err := s.GetAddress(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}
	address, err := buildAddress(input)
	if err != nil {
		return domain.Address{}, err
	}

	address.ID = current.ID
	address.CreatedAt = current.CreatedAt
	address.UpdatedAt = s.clock.Now()
	if err := s.addresses.Update(ctx, s.db, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

func (s *Service) AttachAddress(ctx context.Context, customerID, addressID string) error {
	cid, err := s.parseID(customerID)
	if err != nil {
		return err
	}
	address, err := s.GetAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if _, err := s.findCustomer(ctx, cid); err != nil {
		return err
	}
	return s.addresses.Attach(ctx, s.db, cid, address.ID)
}

func (s *Service) DetachAddress(ctx context.Context, customerID, addressID string) error {
	cid, err := s.parseID(customerID)
	if err != nil {
		return err
	}
	aid, err := s.parseID(addressID)
	if err != nil {
		return err
	}
	rows, err := s.addresses.Detach(ctx, s.db, cid, aid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAddress removes the address from every customer and group and deletes
// the stores located there.
func (s *Service) DeleteAddress(ctx context.Context, id string) error {
	addressID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{addressID.Int64()}, addressDependents...); err != nil {
			return err
		}
		rows, err := s.addresses.Delete(ctx, tx, addressID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func buildAddress(input domain.AddressInput) (domain.Address, error) {
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		return domain.Address{}, domain.ErrInvalidAddress
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		return domain.Address{}, domain.ErrInvalidAddress
	}

	address := domain.Address{
		Name:         strings.TrimSpace(input.Name),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		ZipCode:      strings.TrimSpace(input.ZipCode),
		Street:       strings.TrimSpace(input.Street),
		Number:       strings.TrimSpace(input.Number),
		Complement:   strings.TrimSpace(input.Complement),
		Neighborhood: strings.TrimSpace(input.Neighborhood),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		Country:      strings.TrimSpace(input.Country),
		Details:      strings.TrimSpace(input.Details),
		Main:         input.Main,
	}
	for _, v := range []string{
		address.Name, address.ZipCode, address.Street, address.Number, address.Complement,
		address.Neighborhood, address.City, address.State, address.Country,
	} {
		if len([]rune(v)) > 255 {
			return domain.Address{}, domain.ErrInvalidAddress
		}
	}
	return address, nil
}
