package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateStore opens a store under the group at an existing address.
func (s *Service) CreateStore(ctx context.Context, groupID string, input domain.StoreInput) (domain.Store, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return domain.Store{}, err
	}

	store := domain.Store{GroupID: group.ID, Status: true}
	if err := s.applyStore(ctx, &store, input); err != nil {
		return domain.Store{}, err
	}

	now := s.clock.Now()
	store.ID = s.genID.Generate()
	store.CreatedAt = now
	store.UpdatedAt = now
	if err := s.stores.Insert(ctx, s.db, &store); err != nil {
		return domain.Store{}, err
	}

	s.log.Debug("store created",
		zap.String("store_id", store.ID.String()),
		zap.String("group_id", store.GroupID.String()),
	)
	return store, nil
}

func (s *Service) GetStore(ctx context.Context, id string) (domain.Store, error) {
	storeID, err := s.parseID(id)
	if err != nil {
		return domain.Store{}, err
	}
	store, err := s.stores.FindByID(ctx, s.db, storeID)
	if err != nil {
		return domain.Store{}, err
	}
	if store == nil {
		return domain.Store{}, domain.ErrNotFound
	}
	if store.ContactIDs, err = s.stores.ContactIDs(ctx, s.db, store.ID); err != nil {
		return domain.Store{}, err
	}
	return *store, nil
}

func (s *Service) ListStores(ctx context.Context, groupID string) ([]domain.Store, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.stores.ListByGroup(ctx, s.db, group.ID)
}

func (s *Service) UpdateStore(ctx context.Context, id string, input domain.StoreInput) (domain.Store, error) {
	store, err := s.GetStore(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}
	if err := s.applyStore(ctx, &store, input); err != nil {
		return domain.Store{}, err
	}

	store.UpdatedAt = s.clock.Now()
	if err := s.stores.Update(ctx, s.db, &store); err != nil {
		return domain.Store{}, err
	}
	return store, nil
}

func (s *Service) DeleteStore(ctx context.Context, id string) error {
	storeID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{storeID.Int64()}, domain.StoreDependents...); err != nil {
			return err
		}
		rows, err := s.stores.Delete(ctx, tx, storeID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ReplaceStoreContacts sets the full list of contacts linked to the store.
func (s *Service) ReplaceStoreContacts(ctx context.Context, id string, contactIDs []string) (domain.Store, error) {
	store, err := s.GetStore(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}

	seen := make(map[snowflake.ID]struct{}, len(contactIDs))
	ids := make([]snowflake.ID, 0, len(contactIDs))
	for _, raw := range contactIDs {
		cid, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || cid == 0 {
			return domain.Store{}, domain.ErrInvalidContacts
		}
		if _, ok := seen[cid]; ok {
			continue
		}
		seen[cid] = struct{}{}
		ids = append(ids, cid)
	}
	if len(ids) > 0 {
		count, err := s.references.CountContacts(ctx, s.db, ids)
		if err != nil {
			return domain.Store{}, err
		}
		if count != int64(len(ids)) {
			return domain.Store{}, domain.ErrInvalidContacts
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.stores.ReplaceContacts(ctx, tx, store.ID, ids)
	})
	if err != nil {
		return domain.Store{}, err
	}
	store.ContactIDs = ids
	return store, nil
}

func (s *Service) applyStore(ctx context.Context, st *domain.Store, input domain.StoreInput) error {
	name, ok := textField(input.Name)
	if !ok || name == "" {
		return domain.ErrInvalidName
	}
	cnpj, ok := textField(input.CNPJ)
	if !ok {
		return domain.ErrInvalidField
	}
	phone, ok := textField(input.Phone)
	if !ok {
		return domain.ErrInvalidField
	}
	addressID, err := s.resolveAddress(ctx, input.AddressID)
	if err != nil {
		return err
	}

	if input.Status != nil {
		st.Status = *input.Status
	}
	st.Name = name
	st.CNPJ = cnpj
	st.Phone = phone
	st.AddressID = addressID
	return nil
}
