package repository

import (
	"github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/pkg/repository"
	"gorm.io/gorm"
)

func ProvideCategories(db *gorm.DB) repository.Repository[domain.Category] {
	return repository.ProvideStore[domain.Category](db)
}

func ProvideBrands(db *gorm.DB) repository.Repository[domain.Brand] {
	return repository.ProvideStore[domain.Brand](db)
}
