package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	marketingdomain "github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

func (s *Server) CreateCampaign(c *gin.Context) {
	var req marketingdomain.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCampaigns(c *gin.Context) {
	active, err := activeOnly(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.marketingSvc.ListCampaigns(c.Request.Context(), active)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCampaign(c *gin.Context) {
	resp, err := s.marketingSvc.GetCampaign(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCampaign(c *gin.Context) {
	var req marketingdomain.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.UpdateCampaign(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCampaign(c *gin.Context) {
	if err := s.marketingSvc.DeleteCampaign(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateOffer(c *gin.Context) {
	var req marketingdomain.OfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.CreateOffer(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOffers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CampaignID string `form:"campaign_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.ListOffers(c.Request.Context(), marketingdomain.ListOfferRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		CampaignID: strings.TrimSpace(query.CampaignID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOffer(c *gin.Context) {
	resp, err := s.marketingSvc.GetOffer(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOffer(c *gin.Context) {
	var req marketingdomain.OfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.UpdateOffer(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReplaceOfferProducts(c *gin.Context) {
	var req struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.ReplaceOfferProducts(c.Request.Context(), param(c, "id"), req.ProductIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOffer(c *gin.Context) {
	if err := s.marketingSvc.DeleteOffer(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateCoupon(c *gin.Context) {
	var req marketingdomain.CouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCoupons(c *gin.Context) {
	var query struct {
		pagination.Pagination
		OfferID  string `form:"offer_id"`
		IsActive string `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isActive, err := parseOptionalBool(query.IsActive)
	if err != nil {
		AbortWithError(c, newValidationError("is_active", "invalid_is_active", "invalid is_active"))
		return
	}

	resp, err := s.marketingSvc.ListCoupons(c.Request.Context(), marketingdomain.ListCouponRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		OfferID:   strings.TrimSpace(query.OfferID),
		IsActive:  isActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCoupon(c *gin.Context) {
	resp, err := s.marketingSvc.GetCoupon(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCoupon(c *gin.Context) {
	var req marketingdomain.CouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.UpdateCoupon(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCoupon(c *gin.Context) {
	if err := s.marketingSvc.DeleteCoupon(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CheckCoupon(c *gin.Context) {
	resp, err := s.marketingSvc.CheckCoupon(c.Request.Context(), param(c, "code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RedeemCoupon(c *gin.Context) {
	resp, err := s.marketingSvc.RedeemCoupon(c.Request.Context(), param(c, "code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateContact(c *gin.Context) {
	var req marketingdomain.ChannelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.CreateContact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListContacts(c *gin.Context) {
	active, err := activeOnly(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.marketingSvc.ListContacts(c.Request.Context(), active)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetContact(c *gin.Context) {
	resp, err := s.marketingSvc.GetContact(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateContact(c *gin.Context) {
	var req marketingdomain.ChannelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.UpdateContact(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteContact(c *gin.Context) {
	if err := s.marketingSvc.DeleteContact(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateSocialMedia(c *gin.Context) {
	var req marketingdomain.ChannelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.CreateSocialMedia(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListSocialMedia(c *gin.Context) {
	active, err := activeOnly(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.marketingSvc.ListSocialMedia(c.Request.Context(), active)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSocialMedia(c *gin.Context) {
	resp, err := s.marketingSvc.GetSocialMedia(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSocialMedia(c *gin.Context) {
	var req marketingdomain.ChannelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marketingSvc.UpdateSocialMedia(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSocialMedia(c *gin.Context) {
	if err := s.marketingSvc.DeleteSocialMedia(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isMarketingValidationError(err error) bool {
	switch err {
	case marketingdomain.ErrInvalidID,
		marketingdomain.ErrInvalidName,
		marketingdomain.ErrInvalidPeriod,
		marketingdomain.ErrInvalidBudget,
		marketingdomain.ErrInvalidCampaign,
		marketingdomain.ErrInvalidOfferType,
		marketingdomain.ErrInvalidDiscountValue,
		marketingdomain.ErrInvalidMinPurchase,
		marketingdomain.ErrInvalidProducts,
		marketingdomain.ErrInvalidCode,
		marketingdomain.ErrInvalidOffer,
		marketingdomain.ErrInvalidMaxUsages,
		marketingdomain.ErrInvalidValidity,
		marketingdomain.ErrInvalidType,
		marketingdomain.ErrInvalidValue:
		return true
	default:
		return false
	}
}
