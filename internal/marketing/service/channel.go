package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"gorm.io/gorm"
)

// channel holds the fields shared by contacts and social media profiles.
type channel struct {
	kind     string
	value    string
	isActive bool
}

func parseChannel(input domain.ChannelInput, current channel) (channel, error) {
	out := current
	if raw := strings.TrimSpace(input.Type); raw != "" {
		out.kind = strings.ToUpper(raw)
	}
	out.value = strings.TrimSpace(input.Value)
	if out.value == "" || len([]rune(out.value)) > 255 {
		return channel{}, domain.ErrInvalidValue
	}
	if input.IsActive != nil {
		out.isActive = *input.IsActive
	}
	return out, nil
}

func (s *Service) CreateContact(ctx context.Context, input domain.ChannelInput) (domain.Contact, error) {
	ch, err := parseChannel(input, channel{kind: string(domain.ContactOther), isActive: true})
	if err != nil {
		return domain.Contact{}, err
	}
	if !domain.ContactType(ch.kind).Valid() {
		return domain.Contact{}, domain.ErrInvalidType
	}

	now := s.clock.Now()
	contact := domain.Contact{
		ID:        s.genID.Generate(),
		Type:      domain.ContactType(ch.kind),
		Value:     ch.value,
		IsActive:  ch.isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contacts.Create(ctx, &contact); err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

func (s *Service) GetContact(ctx context.Context, id string) (domain.Contact, error) {
	contactID, err := s.parseID(id)
	if err != nil {
		return domain.Contact{}, err
	}
	item, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return domain.Contact{}, err
	}
	if item == nil {
		return domain.Contact{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListContacts(ctx context.Context, activeOnly bool) ([]domain.Contact, error) {
	items, err := s.contacts.Find(ctx, &domain.Contact{IsActive: activeOnly},
		option.WithSortBy(option.SortBy{Column: "id", Desc: true}),
		option.WithLimit(s.retail.Get().Pagination.MaxPageSize),
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) UpdateContact(ctx context.Context, id string, input domain.ChannelInput) (domain.Contact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return domain.Contact{}, err
	}
	ch, err := parseChannel(input, channel{kind: string(contact.Type), isActive: contact.IsActive})
	if err != nil {
		return domain.Contact{}, err
	}
	if !domain.ContactType(ch.kind).Valid() {
		return domain.Contact{}, domain.ErrInvalidType
	}

	contact.Type = domain.ContactType(ch.kind)
	contact.Value = ch.value
	contact.IsActive = ch.isActive
	contact.UpdatedAt = s.clock.Now()
	if _, err := s.contacts.Update(ctx, contact.ID, map[string]any{
		"type":       contact.Type,
		"value":      contact.Value,
		"is_active":  contact.IsActive,
		"updated_at": contact.UpdatedAt,
	}); err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

// DeleteContact unlinks the contact from every store before removing it.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	contactID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{contactID.Int64()}, db.Relation{
			Table: "store_contacts", Column: "contact_id", Policy: db.Cascade,
		}); err != nil {
			return err
		}
		rows, err := s.contacts.WithTrx(tx).Delete(ctx, contactID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Service) CreateSocialMedia(ctx context.Context, input domain.ChannelInput) (domain.SocialMedia, error) {
	ch, err := parseChannel(input, channel{kind: string(domain.SocialOther), isActive: true})
	if err != nil {
		return domain.SocialMedia{}, err
	}
	if !domain.SocialMediaType(ch.kind).Valid() {
		return domain.SocialMedia{}, domain.ErrInvalidType
	}

	now := s.clock.Now()
	profile := domain.SocialMedia{
		ID:        s.genID.Generate(),
		Type:      domain.SocialMediaType(ch.kind),
		Value:     ch.value,
		IsActive:  ch.isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.socialMedia.Create(ctx, &profile); err != nil {
		return domain.SocialMedia{}, err
	}
	return profile, nil
}

func (s *Service) GetSocialMedia(ctx context.Context, id string) (domain.SocialMedia, error) {
	profileID, err := s.parseID(id)
	if err != nil {
		return domain.SocialMedia{}, err
	}
	item, err := s.socialMedia.FindByID(ctx, profileID)
	if err != nil {
		return domain.SocialMedia{}, err
	}
	if item == nil {
		return domain.SocialMedia{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListSocialMedia(ctx context.Context, activeOnly bool) ([]domain.SocialMedia, error) {
	items, err := s.socialMedia.Find(ctx, &domain.SocialMedia{IsActive: activeOnly},
		option.WithSortBy(option.SortBy{Column: "id", Desc: true}),
		option.WithLimit(s.retail.Get().Pagination.MaxPageSize),
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SocialMedia, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) UpdateSocialMedia(ctx context.Context, id string, input domain.ChannelInput) (domain.SocialMedia, error) {
	profile, err := s.GetSocialMedia(ctx, id)
	if err != nil {
		return domain.SocialMedia{}, err
	}
	ch, err := parseChannel(input, channel{kind: string(profile.Type), isActive: profile.IsActive})
	if err != nil {
		return domain.SocialMedia{}, err
	}
	if !domain.SocialMediaType(ch.kind).Valid() {
		return domain.SocialMedia{}, domain.ErrInvalidType
	}

	profile.Type = domain.SocialMediaType(ch.kind)
	profile.Value = ch.value
	profile.IsActive = ch.isActive
	profile.UpdatedAt = s.clock.Now()
	if _, err := s.socialMedia.Update(ctx, profile.ID, map[string]any{
		"type":       profile.Type,
		"value":      profile.Value,
		"is_active":  profile.IsActive,
		"updated_at": profile.UpdatedAt,
	}); err != nil {
		return domain.SocialMedia{}, err
	}
	return profile, nil
}

func (s *Service) DeleteSocialMedia(ctx context.Context, id string) error {
	profileID, err := s.parseID(id)
	if err != nil {
		return err
	}
	rows, err := s.socialMedia.Delete(ctx, profileID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
