package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type taxonomyQuery struct {
	Name    string `form:"name"`
	SortBy  string `form:"sort_by"`
	OrderBy string `form:"order_by"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req catalogdomain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCategories(c *gin.Context) {
	var query taxonomyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.ListCategories(c.Request.Context(), catalogdomain.ListCategoryRequest{
		Name:    strings.TrimSpace(query.Name),
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCategory(c *gin.Context) {
	resp, err := s.catalogSvc.GetCategory(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCategory(c *gin.Context) {
	var req catalogdomain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = param(c, "id")

	resp, err := s.catalogSvc.UpdateCategory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.catalogSvc.DeleteCategory(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateBrand(c *gin.Context) {
	var req catalogdomain.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateBrand(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListBrands(c *gin.Context) {
	var query taxonomyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.ListBrands(c.Request.Context(), catalogdomain.ListBrandRequest{
		Name:    strings.TrimSpace(query.Name),
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBrand(c *gin.Context) {
	resp, err := s.catalogSvc.GetBrand(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBrand(c *gin.Context) {
	var req catalogdomain.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = param(c, "id")

	resp, err := s.catalogSvc.UpdateBrand(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBrand(c *gin.Context) {
	if err := s.catalogSvc.DeleteBrand(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name       string `form:"name"`
		Status     string `form:"status"`
		BrandID    string `form:"brand_id"`
		CategoryID string `form:"category_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.ListProducts(c.Request.Context(), catalogdomain.ListProductRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		Name:       strings.TrimSpace(query.Name),
		Status:     strings.TrimSpace(query.Status),
		BrandID:    strings.TrimSpace(query.BrandID),
		CategoryID: strings.TrimSpace(query.CategoryID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProduct(c *gin.Context) {
	resp, err := s.catalogSvc.GetProduct(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req catalogdomain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = param(c, "id")

	resp, err := s.catalogSvc.UpdateProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.catalogSvc.DeleteProduct(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isCatalogValidationError(err error) bool {
	switch err {
	case catalogdomain.ErrInvalidID,
		catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidPrice,
		catalogdomain.ErrInvalidSKU,
		catalogdomain.ErrInvalidBarcode,
		catalogdomain.ErrInvalidStock,
		catalogdomain.ErrInvalidStatus,
		catalogdomain.ErrInvalidUnit,
		catalogdomain.ErrInvalidBrand,
		catalogdomain.ErrInvalidCategory:
		return true
	default:
		return false
	}
}
