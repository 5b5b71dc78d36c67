package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	salesdomain "github.com/smallbiznis/varejo/internal/sales/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req salesdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status     string `form:"status"`
		CustomerID string `form:"customer_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesSvc.List(c.Request.Context(), salesdomain.ListOrderRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		Status:     strings.TrimSpace(query.Status),
		CustomerID: strings.TrimSpace(query.CustomerID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrder(c *gin.Context) {
	resp, err := s.salesSvc.Get(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesSvc.UpdateStatus(c.Request.Context(), param(c, "id"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.salesSvc.Delete(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetOrderReceipt(c *gin.Context) {
	id := param(c, "id")
	reader, err := s.salesSvc.Receipt(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="pedido-%s.pdf"`, id))
	c.Status(http.StatusOK)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		_ = c.Error(err)
	}
}

func isSalesValidationError(err error) bool {
	switch err {
	case salesdomain.ErrInvalidID,
		salesdomain.ErrInvalidCustomer,
		salesdomain.ErrInvalidExternalID,
		salesdomain.ErrInvalidAmount,
		salesdomain.ErrInvalidDiscount,
		salesdomain.ErrInvalidStatus,
		salesdomain.ErrInvalidQuantity,
		salesdomain.ErrInvalidPrice,
		salesdomain.ErrInvalidProduct:
		return true
	default:
		return false
	}
}
