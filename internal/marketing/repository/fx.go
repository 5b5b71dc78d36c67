package repository

import (
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/repository"
	"gorm.io/gorm"
)

func ProvideCampaigns(db *gorm.DB) repository.Repository[domain.Campaign] {
	return repository.ProvideStore[domain.Campaign](db)
}

func ProvideContacts(db *gorm.DB) repository.Repository[domain.Contact] {
	return repository.ProvideStore[domain.Contact](db)
}

func ProvideSocialMedia(db *gorm.DB) repository.Repository[domain.SocialMedia] {
	return repository.ProvideStore[domain.SocialMedia](db)
}
