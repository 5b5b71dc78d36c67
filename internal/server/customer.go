package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name  string `form:"name"`
		Email string `form:"email"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Email:     strings.TrimSpace(query.Email),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = param(c, "id")

	resp, err := s.customerSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ReplaceCustomerDocument(c *gin.Context) {
	var req customerdomain.DocumentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.ReplaceDocument(c.Request.Context(), customerdomain.ReplaceDocumentRequest{
		CustomerID:    param(c, "id"),
		DocumentInput: req,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateCustomerAddress(c *gin.Context) {
	var req customerdomain.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.addressSvc.CreateAddress(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCustomerAddresses(c *gin.Context) {
	resp, err := s.addressSvc.ListAddresses(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AttachCustomerAddress(c *gin.Context) {
	if err := s.addressSvc.AttachAddress(c.Request.Context(), param(c, "id"), param(c, "address_id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DetachCustomerAddress(c *gin.Context) {
	if err := s.addressSvc.DetachAddress(c.Request.Context(), param(c, "id"), param(c, "address_id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetAddress(c *gin.Context) {
	resp, err := s.addressSvc.GetAddress(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAddress(c *gin.Context) {
	var req customerdomain.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.addressSvc.UpdateAddress(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAddress(c *gin.Context) {
	if err := s.addressSvc.DeleteAddress(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetLoyalty(c *gin.Context) {
	resp, err := s.loyaltySvc.GetLoyalty(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) EnrollLoyalty(c *gin.Context) {
	resp, err := s.loyaltySvc.Enroll(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) AddLoyaltyPoints(c *gin.Context) {
	var req struct {
		Points *int64 `json:"points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Points == nil {
		AbortWithError(c, newValidationError("points", "invalid_points", "points is required"))
		return
	}

	resp, err := s.loyaltySvc.AddPoints(c.Request.Context(), param(c, "id"), *req.Points)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetLoyaltyTier(c *gin.Context) {
	var req struct {
		Tier string `json:"tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.loyaltySvc.SetTier(c.Request.Context(), param(c, "id"), req.Tier)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrInvalidID,
		customerdomain.ErrInvalidEmail,
		customerdomain.ErrInvalidFirstName,
		customerdomain.ErrInvalidLastName,
		customerdomain.ErrInvalidPhone,
		customerdomain.ErrInvalidBirthDate,
		customerdomain.ErrInvalidGender,
		customerdomain.ErrInvalidDocumentType,
		customerdomain.ErrInvalidDocumentNumber,
		customerdomain.ErrInvalidAddress,
		customerdomain.ErrInvalidPoints,
		customerdomain.ErrInvalidTier:
		return true
	default:
		return false
	}
}
