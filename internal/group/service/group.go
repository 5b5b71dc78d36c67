package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreateGroup(ctx context.Context, input domain.GroupInput) (domain.Group, error) {
	group := domain.Group{Status: true}
	if err := s.applyGroup(ctx, &group, input); err != nil {
		return domain.Group{}, err
	}

	now := s.clock.Now()
	group.ID = s.genID.Generate()
	group.CreatedAt = now
	group.UpdatedAt = now
	if err := s.repo.Insert(ctx, s.db, &group); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Group{}, domain.ErrDuplicateEmail
		}
		return domain.Group{}, err
	}

	s.log.Debug("group created",
		zap.String("group_id", group.ID.String()),
		zap.String("owner_id", group.OwnerID.String()),
	)
	return group, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (domain.Group, error) {
	groupID, err := s.parseID(id)
	if err != nil {
		return domain.Group{}, err
	}
	group, err := s.repo.FindByID(ctx, s.db, groupID)
	if err != nil {
		return domain.Group{}, err
	}
	if group == nil {
		return domain.Group{}, domain.ErrNotFound
	}
	if group.AddressIDs, err = s.repo.AddressIDs(ctx, s.db, group.ID); err != nil {
		return domain.Group{}, err
	}
	return *group, nil
}

func (s *Service) ListGroups(ctx context.Context, req domain.ListGroupRequest) (domain.ListGroupResponse, error) {
	filter := domain.ListGroupFilter{}
	if raw := strings.TrimSpace(req.OwnerID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListGroupResponse{}, domain.ErrInvalidOwner
		}
		filter.OwnerID = id.Int64()
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListGroupResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListGroupResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(g *domain.Group) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: g.ID.String()})
		return token
	})

	groups := make([]domain.Group, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		groups = append(groups, *item)
	}
	return domain.ListGroupResponse{PageInfo: pageInfo, Groups: groups}, nil
}

func (s *Service) UpdateGroup(ctx context.Context, id string, input domain.GroupInput) (domain.Group, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return domain.Group{}, err
	}
	if err := s.applyGroup(ctx, &group, input); err != nil {
		return domain.Group{}, err
	}

	group.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &group); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Group{}, domain.ErrDuplicateEmail
		}
		return domain.Group{}, err
	}
	return group, nil
}

// DeleteGroup removes the group along with its stores and address links.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	groupID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{groupID.Int64()}, domain.GroupDependents...); err != nil {
			return err
		}
		rows, err := s.repo.Delete(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Service) AttachAddress(ctx context.Context, groupID, addressID string) (domain.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return domain.Group{}, err
	}
	aid, err := s.resolveAddress(ctx, addressID)
	if err != nil {
		return domain.Group{}, err
	}
	if err := s.repo.AttachAddress(ctx, s.db, group.ID, aid); err != nil {
		return domain.Group{}, err
	}
	return s.GetGroup(ctx, groupID)
}

func (s *Service) DetachAddress(ctx context.Context, groupID, addressID string) error {
	gid, err := s.parseID(groupID)
	if err != nil {
		return err
	}
	aid, err := s.parseID(addressID)
	if err != nil {
		return err
	}
	rows, err := s.repo.DetachAddress(ctx, s.db, gid, aid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) applyGroup(ctx context.Context, g *domain.Group, input domain.GroupInput) error {
	email, err := customerdomain.NormalizeEmail(input.Email)
	if err != nil {
		return domain.ErrInvalidEmail
	}
	name, ok := textField(input.Name)
	if !ok || name == "" {
		return domain.ErrInvalidName
	}

	shortName, ok1 := textField(input.ShortName)
	fullName, ok2 := textField(input.FullName)
	cnpj, ok3 := textField(input.CNPJ)
	phone, ok4 := textField(input.Phone)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.ErrInvalidField
	}

	ownerID, err := snowflake.ParseString(strings.TrimSpace(input.OwnerID))
	if err != nil || ownerID == 0 {
		return domain.ErrInvalidOwner
	}
	found, err := s.references.CustomerExists(ctx, s.db, ownerID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrInvalidOwner
	}

	if input.Status != nil {
		g.Status = *input.Status
	}
	g.Email = email
	g.Name = name
	g.ShortName = shortName
	g.FullName = fullName
	g.CNPJ = cnpj
	g.Phone = phone
	g.OwnerID = ownerID
	return nil
}

func (s *Service) resolveAddress(ctx context.Context, raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidAddress
	}
	found, err := s.references.AddressExists(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.ErrInvalidAddress
	}
	return id, nil
}
